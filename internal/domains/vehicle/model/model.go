package model

import (
	"rental/shared/failure"
)

// Type discriminates the catalog a vehicle lives in.
type Type string

const (
	TypeCar  Type = "car"
	TypeBike Type = "bike"
)

const (
	CacheOpGet    = "get"
	CacheOpGetAll = "gets"
	CacheOpCount  = "count"
)

var (
	ErrUnknownType        = failure.BadRequestFromString("vehicleType must be one of car bike")
	ErrVehicleNotFound    = failure.NotFound("vehicle not found")
	ErrVehicleUnavailable = failure.Conflict("vehicle is not available")
	// ErrAvailabilityManaged rejects catalog writes to availability, which only bookings change.
	ErrAvailabilityManaged = failure.Conflict("availability is managed by bookings")
)

func ParseType(value string) (Type, error) {
	switch Type(value) {
	case TypeCar, TypeBike:
		return Type(value), nil
	default:
		return "", ErrUnknownType
	}
}

// CacheKey returns the cache prefix of this vehicle type for the given operation, e.g. car:gets.
func (t Type) CacheKey(op string) string {
	return string(t) + ":" + op
}

// Ref is a typed reference to a car or a bike. The ID alone is ambiguous
// because each type has its own table.
type Ref struct {
	Type Type   `json:"type"`
	ID   string `json:"id"`
}

func NewRef(vehicleType, id string) (Ref, error) {
	parsed, err := ParseType(vehicleType)
	if err != nil {
		return Ref{}, err
	}

	if id == "" {
		return Ref{}, failure.BadRequestFromString("vehicleId is required")
	}

	return Ref{Type: parsed, ID: id}, nil
}

func (r Ref) String() string {
	return string(r.Type) + "/" + r.ID
}

// Vehicle is the part of a car or bike the booking lifecycle cares about.
type Vehicle struct {
	Ref          Ref
	Name         string
	Image        string
	Availability bool
}

func (v Vehicle) Exists() bool {
	return v.Ref.ID != ""
}
