package model

import (
	"crypto/rand"
	"math/big"
	"rental/shared/constant"
	"rental/shared/failure"
	"rental/shared/timezone"
	"strconv"
	"strings"
	"time"
)

type Status string

const (
	StatusConfirmed     Status = "confirmed"
	StatusActive        Status = "active"
	StatusPendingReturn Status = "pending_return"
	StatusReturned      Status = "returned"
	StatusCompleted     Status = "completed"
	StatusCancelled     Status = "cancelled"
)

type Penalty string

const (
	PenaltyNone    Penalty = "none"
	PenaltyPending Penalty = "pending"
	PenaltyPaid    Penalty = "paid"
)

var (
	ErrInvalidTransition = failure.BadRequestFromString("invalid status transition")
	ErrBookingNotFound   = failure.NotFound("booking not found")
	ErrInvalidSchedule   = failure.BadRequestFromString("pickup must be before dropoff")
	ErrNotCancellable    = failure.Conflict("only confirmed bookings can be cancelled")
)

const (
	codePrefix       = "BK"
	codeSuffixLength = 5
	codeAlphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Holds reports whether a booking in this state keeps its vehicle out of the pool.
func (s Status) Holds(penalty Penalty) bool {
	switch s {
	case StatusConfirmed, StatusActive, StatusPendingReturn:
		return true
	case StatusReturned:
		return penalty != PenaltyPaid
	default:
		return false
	}
}

// CheckTransition applies the direct transition rules. Staff and admins may
// only activate a confirmed booking; customers may only hand back an active one.
// Every other path (returned, completed, cancelled) is a side effect of
// inspection review, penalty settlement or cancellation.
func CheckTransition(current, requested Status, privileged bool) error {
	if privileged {
		if requested == StatusActive && current == StatusConfirmed {
			return nil
		}

		return ErrInvalidTransition
	}

	if requested == StatusPendingReturn && current == StatusActive {
		return nil
	}

	return ErrInvalidTransition
}

// NewCode returns a human readable booking code: BK, the unix millis of now
// and five random base36 characters.
func NewCode(now time.Time) string {
	var suffix strings.Builder

	limit := big.NewInt(int64(len(codeAlphabet)))

	for range codeSuffixLength {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			n = big.NewInt(now.UnixNano() % limit.Int64())
		}

		suffix.WriteByte(codeAlphabet[n.Int64()])
	}

	return codePrefix + strconv.FormatInt(now.UnixMilli(), 10) + suffix.String()
}

// Schedule combines the date and clock parts of a booking request in the
// application timezone.
func Schedule(date, clock string) (time.Time, error) {
	at, err := timezone.Parse(constant.DateOnlyFormat+" "+constant.TimeOnlyFormat, date+" "+clock)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("invalid date or time format")
	}

	return at, nil
}
