package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	bModel "rental/internal/domains/booking/model"
	"rental/shared/failure"
	"rental/shared/model"
	"time"
)

const (
	TableName  = "inspections"
	EntityName = "inspection"

	FieldID                = "id"
	FieldBookingID         = "booking_id"
	FieldStatus            = "status"
	FieldDetectedDamages   = "detected_damages"
	FieldOverallAssessment = "overall_assessment"
	FieldConfirmedDamages  = "confirmed_damages"
	FieldTotalRepairCost   = "total_repair_cost"
	FieldReviewNotes       = "review_notes"
	FieldReviewedBy        = "reviewed_by"
	FieldReviewedAt        = "reviewed_at"

	PhotoAngleMain = "main"
)

type Type string

const (
	TypePreRental  Type = "pre-rental"
	TypePostRental Type = "post-rental"
)

// Status only moves forward: pending, analyzed, reviewed.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAnalyzed Status = "analyzed"
	StatusReviewed Status = "reviewed"
)

var (
	ErrInspectionNotFound = failure.NotFound("damage report not found")
	ErrAlreadyReviewed    = failure.Conflict("damage report has already been reviewed")
	ErrNotPending         = failure.Conflict("only pending damage reports can be analyzed")
	ErrNoPendingPenalty   = failure.Conflict("booking has no pending penalty")
	ErrNotAwaitingReturn  = failure.Conflict("booking is not awaiting return")
)

// SlotField is the booking column that links an inspection of this type.
func (t Type) SlotField() string {
	if t == TypePostRental {
		return bModel.FieldPostRentalInspectionID
	}

	return bModel.FieldPreRentalInspectionID
}

// Slot returns the inspection already linked to booking for this type, if any.
func (t Type) Slot(booking bModel.Booking) *string {
	if t == TypePostRental {
		return booking.PostRentalInspectionID
	}

	return booking.PreRentalInspectionID
}

func (t Type) SlotFilledError() error {
	return failure.BadRequestFromString(fmt.Sprintf("booking already has a %s inspection", t))
}

type Damage struct {
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	RepairCost  *float64 `json:"repairCost,omitempty"`
}

// Damages is stored as a jsonb array.
type Damages []Damage

// Value encodes as text; lib/pq would send a []byte as bytea.
func (d Damages) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode damages: %w", err)
	}

	return string(raw), nil
}

func (d *Damages) Scan(src any) error {
	var raw []byte

	switch value := src.(type) {
	case nil:
		*d = Damages{}

		return nil
	case []byte:
		raw = value
	case string:
		raw = []byte(value)
	default:
		return fmt.Errorf("cannot scan %T into damages", src)
	}

	return json.Unmarshal(raw, d)
}

type Inspection struct {
	ID                string     `db:"id"`
	BookingID         string     `db:"booking_id"`
	Type              Type       `db:"inspection_type"`
	PhotoURL          string     `db:"photo_url"`
	PhotoAngle        string     `db:"photo_angle"`
	DetectedDamages   Damages    `db:"detected_damages"`
	OverallAssessment string     `db:"overall_assessment"`
	ConfirmedDamages  Damages    `db:"confirmed_damages"`
	TotalRepairCost   float64    `db:"total_repair_cost"`
	ReviewNotes       string     `db:"review_notes"`
	ReviewedBy        *string    `db:"reviewed_by"`
	ReviewedAt        *time.Time `db:"reviewed_at"`
	Status            Status     `db:"status"`
	model.Metadata
}

func (i Inspection) Exists() bool {
	return i.ID != ""
}
