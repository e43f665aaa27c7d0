package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/event"
)

type userStore interface {
	FindByID(ctx context.Context, id domain.UserID) (domain.User, error)
}

type tripStore interface {
	FindByID(ctx context.Context, id domain.TripID) (domain.Trip, error)
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, phone, message string) error
}

// Notifier sends booking confirmations over the channels each user opted
// into. Delivery failures are logged, never propagated: a lost email must not
// fail the booking that triggered it.
type Notifier struct {
	users  userStore
	trips  tripStore
	mailer mailer
	sms    smsSender
	logger *slog.Logger
}

type NotifierDeps struct {
	UserRepo  userStore
	TripRepo  tripStore
	Mailer    mailer
	SMSSender smsSender
	Logger    *slog.Logger
}

func NewNotifier(deps NotifierDeps) *Notifier {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		users:  deps.UserRepo,
		trips:  deps.TripRepo,
		mailer: deps.Mailer,
		sms:    deps.SMSSender,
		logger: logger,
	}
}

// Register subscribes the notifier to the events it reacts to.
func (n *Notifier) Register(bus *event.Bus) {
	bus.Subscribe(domain.EventTripBooked, n.onTripBooked)
}

func (n *Notifier) onTripBooked(ctx context.Context, ev domain.Event) {
	booked, ok := ev.(domain.TripBooked)
	if !ok {
		return
	}
	userID, err := domain.ParseUserID(booked.UserID)
	if err != nil {
		n.logger.Warn("booking notification skipped", "error", err)
		return
	}
	user, err := n.users.FindByID(ctx, userID)
	if err != nil {
		n.logger.Warn("booking notification skipped", "user_id", booked.UserID, "error", err)
		return
	}
	tripID, err := domain.ParseTripID(booked.TripID)
	if err != nil {
		n.logger.Warn("booking notification skipped", "error", err)
		return
	}
	trip, err := n.trips.FindByID(ctx, tripID)
	if err != nil {
		n.logger.Warn("booking notification skipped", "trip_id", booked.TripID, "error", err)
		return
	}

	prefs := user.Preferences().Notifications()
	if prefs.Email && n.mailer != nil {
		subject := fmt.Sprintf("Booking confirmed: %s", trip.Title())
		body := fmt.Sprintf(
			"Hi %s,\n\nYour spot on %q (%s, %s) is confirmed. %d spot(s) remain.\n",
			user.FirstName(), trip.Title(), trip.Location().Format(), trip.Dates().Start().Format("2006-01-02"), booked.SpotsLeft,
		)
		if err := n.mailer.SendEmail(user.Email().String(), subject, body); err != nil {
			n.logger.Error("booking email failed", "user_id", booked.UserID, "trip_id", booked.TripID, "error", err)
		}
	}
	if prefs.SMS && n.sms != nil && user.Phone() != nil {
		msg := fmt.Sprintf("Booking confirmed: %s, %s", trip.Title(), trip.Dates().Start().Format("2006-01-02"))
		if err := n.sms.SendSMS(ctx, user.Phone().String(), msg); err != nil {
			n.logger.Error("booking sms failed", "user_id", booked.UserID, "trip_id", booked.TripID, "error", err)
		}
	}
}
