package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"rental/config"
	"rental/infras/kafka"
	"rental/infras/otel"
	"rental/internal/domains/booking/model"
	vService "rental/internal/domains/vehicle/service"
	"rental/shared/constant"
	"rental/shared/metrics"
	"rental/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

// Changed is published on the booking events topic, keyed by booking id.
type Changed struct {
	BookingID     string    `json:"bookingId"`
	Code          string    `json:"code"`
	CustomerID    string    `json:"customerId"`
	VehicleType   string    `json:"vehicleType"`
	VehicleID     string    `json:"vehicleId"`
	From          string    `json:"from,omitempty"`
	To            string    `json:"to"`
	PenaltyStatus string    `json:"penaltyStatus"`
	PenaltyAmount float64   `json:"penaltyAmount"`
	Actor         string    `json:"actor"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewChanged(from model.Status, booking model.Booking, actor string, at time.Time) Changed {
	return Changed{
		BookingID:     booking.ID,
		Code:          booking.Code,
		CustomerID:    booking.CustomerID,
		VehicleType:   string(booking.VehicleType),
		VehicleID:     booking.VehicleID,
		From:          string(from),
		To:            string(booking.Status),
		PenaltyStatus: string(booking.PenaltyStatus),
		PenaltyAmount: booking.PenaltyAmount,
		Actor:         actor,
		OccurredAt:    at,
	}
}

// Publisher runs the follow-ups of a committed booking change. It never
// fails the caller: the change is already durable.
type Publisher interface {
	Committed(ctx context.Context, from model.Status, booking model.Booking)
}

type publisherImpl struct {
	client    kafka.Client
	inventory vService.Inventory
	topic     string
	otel      otel.Otel
}

func New(client kafka.Client, inventory vService.Inventory, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client:    client,
		inventory: inventory,
		topic:     cfg.Kafka.Topics.BookingEvents,
		otel:      otel,
	}
}

func (p *publisherImpl) Committed(ctx context.Context, from model.Status, booking model.Booking) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Committed")
	defer scope.End()

	metrics.RecordTransition(string(from), string(booking.Status))

	p.inventory.Invalidate(ctx, booking.Vehicle())

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err := p.client.SendMessages(ctx, p.topic, kafka.Message{
		Key:   booking.ID,
		Value: NewChanged(from, booking, actor, timezone.Now()),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking", booking.ID).Str("status", string(booking.Status)).Msg("failed to publish booking event")
	}
}
