package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-trip-booking/internal/domain"
)

// seedDemoData fills the in-memory backend with a browsable catalogue and a
// demo admin account (admin@example.com / administrator1). Only used when
// SEED_DEMO_DATA is enabled on the memory backend.
func seedDemoData(ctx context.Context, trips domain.TripRepository, users domain.UserRepository, logger *slog.Logger) {
	seedAdmin(ctx, users, logger)

	type offer struct {
		title, description string
		city, country      string
		daysFromNow, days  int
		price              float64
		spots              int
		rating             float64
		tags               []string
	}
	offers := []offer{
		{
			title: "Surf week on the Atlantic coast", description: "Seven days of surfing, seafood and sunsets near Ericeira.",
			city: "Lisbon", country: "Portugal", daysFromNow: 30, days: 7, price: 499, spots: 8, rating: 4.7,
			tags: []string{"surf", "beach"},
		},
		{
			title: "Alpine hiking traverse", description: "Hut-to-hut trekking across the Bernese Oberland.",
			city: "Interlaken", country: "Switzerland", daysFromNow: 45, days: 5, price: 890, spots: 6, rating: 4.9,
			tags: []string{"hiking", "mountains"},
		},
		{
			title: "Kyoto temples and tea houses", description: "A slow week through gardens, markets and machiya alleys.",
			city: "Kyoto", country: "Japan", daysFromNow: 60, days: 8, price: 1450, spots: 10, rating: 4.8,
			tags: []string{"culture", "food"},
		},
	}

	for _, o := range offers {
		loc, err := domain.NewLocation(o.city, o.country, nil)
		if err != nil {
			logger.Warn("seed trip skipped", "title", o.title, "err", err)
			continue
		}
		start := time.Now().UTC().AddDate(0, 0, o.daysFromNow).Truncate(24 * time.Hour)
		dates, err := domain.NewDateRange(start, start.AddDate(0, 0, o.days))
		if err != nil {
			logger.Warn("seed trip skipped", "title", o.title, "err", err)
			continue
		}
		price, err := domain.NewPrice(o.price, "EUR")
		if err != nil {
			logger.Warn("seed trip skipped", "title", o.title, "err", err)
			continue
		}
		t, err := domain.NewTrip(domain.NewTripParams{
			Title:           o.title,
			Description:     o.description,
			Location:        loc,
			Dates:           dates,
			Price:           price,
			MaxParticipants: o.spots,
			Rating:          o.rating,
			Tags:            o.tags,
		})
		if err != nil {
			logger.Warn("seed trip skipped", "title", o.title, "err", err)
			continue
		}
		if t, _, err = t.Publish(); err != nil {
			logger.Warn("seed trip skipped", "title", o.title, "err", err)
			continue
		}
		if err := trips.Save(ctx, t); err != nil {
			logger.Warn("seed trip not saved", "title", o.title, "err", err)
		}
	}
	logger.Info("demo catalogue seeded", "trips", len(offers))
}

func seedAdmin(ctx context.Context, users domain.UserRepository, logger *slog.Logger) {
	email, err := domain.NewEmail("admin@example.com")
	if err != nil {
		logger.Warn("seed admin skipped", "err", err)
		return
	}
	password, err := domain.NewPassword("administrator1")
	if err != nil {
		logger.Warn("seed admin skipped", "err", err)
		return
	}
	u, err := domain.NewUser("admin", email, password, "Demo", "Admin")
	if err != nil {
		logger.Warn("seed admin skipped", "err", err)
		return
	}
	// Role promotion happens through the persistence form; the constructor
	// only creates regular users.
	snap := u.Snapshot()
	snap.Role = domain.RoleAdmin
	admin, err := domain.UserFromSnapshot(snap)
	if err != nil {
		logger.Warn("seed admin skipped", "err", err)
		return
	}
	if err := users.Save(ctx, admin); err != nil {
		logger.Warn("seed admin not saved", "err", err)
		return
	}
	logger.Info("demo admin seeded", "email", "admin@example.com")
}
