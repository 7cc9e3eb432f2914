// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"otusite/internal/auth"
	"otusite/internal/models"
	"otusite/internal/store"
)

// SeedOptions controls what Seed writes.
type SeedOptions struct {
	AdminUsername string
	AdminPassword string
	// SampleContent fills empty collections with demo rows.
	SampleContent bool
}

// Seed creates the bootstrap admin account and the stats row. Every step
// is safe to repeat: an existing admin keeps its password, and sample
// content is only written into empty tables.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin password: %w", err)
	}

	created, err := store.NewAdminStore(db).Ensure(ctx, opts.AdminUsername, hash)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		slog.Info("default admin user created", "username", opts.AdminUsername)
	}

	if _, err := store.NewStatsStore(db).Get(ctx); err != nil {
		return fmt.Errorf("seed stats: %w", err)
	}

	if opts.SampleContent {
		if err := seedSamples(ctx, db); err != nil {
			return err
		}
	}
	return nil
}

func seedSamples(ctx context.Context, db *sql.DB) error {
	steps := []struct {
		table string
		fill  func() error
	}{
		{"testimonials", func() error {
			s := store.NewTestimonialStore(db)
			for _, f := range sampleTestimonials {
				if _, err := s.Create(ctx, f); err != nil {
					return err
				}
			}
			return nil
		}},
		{"modules", func() error {
			s := store.NewModuleStore(db)
			for _, f := range sampleModules {
				if _, err := s.Create(ctx, f); err != nil {
					return err
				}
			}
			return nil
		}},
		{"glossary_terms", func() error {
			s := store.NewGlossaryTermStore(db)
			for _, f := range sampleGlossary {
				if _, err := s.Create(ctx, f); err != nil {
					return err
				}
			}
			return nil
		}},
		{"stocks", func() error {
			s := store.NewStockStore(db)
			for _, f := range sampleStocks {
				if _, err := s.Create(ctx, f); err != nil {
					return err
				}
			}
			return nil
		}},
	}

	for _, step := range steps {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+step.table).Scan(&count); err != nil {
			return fmt.Errorf("seed check %s: %w", step.table, err)
		}
		if count > 0 {
			continue
		}
		if err := step.fill(); err != nil {
			return fmt.Errorf("seed %s: %w", step.table, err)
		}
		slog.Info("sample content seeded", "table", step.table)
	}
	return nil
}

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }
func rating(n int) *int      { return &n }

var sampleTestimonials = []models.TestimonialFields{
	{Name: str("Marcus T."), Testimonial: str("First month in the group and my SPY calls paid for the year."), Profit: str("+$4,820"), Rating: rating(5)},
	{Name: str("Priya K."), Testimonial: str("The risk management module changed how I size every position."), Profit: str("+$1,940"), Rating: rating(5)},
	{Name: str("Dan R."), Testimonial: str("Clear entries, clear exits. No guessing."), Profit: str("+$2,310"), Rating: rating(4)},
}

var sampleModules = []models.ModuleFields{
	{Title: str("Options Basics"), Content: str("Calls, puts, strikes and expirations.")},
	{Title: str("Reading the Greeks"), Content: str("Delta, gamma, theta and vega in practice.")},
	{Title: str("Risk Management"), Content: str("Position sizing and when to cut a loser.")},
}

var sampleGlossary = []models.GlossaryTermFields{
	{Term: str("Call Option"), Definition: str("The right to buy the underlying at the strike price before expiration.")},
	{Term: str("Put Option"), Definition: str("The right to sell the underlying at the strike price before expiration.")},
	{Term: str("Theta"), Definition: str("The rate at which an option loses value as time passes.")},
	{Term: str("Implied Volatility"), Definition: str("The market's forecast of the underlying's movement, priced into the option.")},
}

var sampleStocks = []models.StockFields{
	{Symbol: str("SPY"), Name: str("SPDR S&P 500 ETF"), Price: num(512.34), Change: num(2.15), ChangePercent: num(0.42)},
	{Symbol: str("TSLA"), Name: str("Tesla Inc."), Price: num(248.50), Change: num(-3.20), ChangePercent: num(-1.27)},
	{Symbol: str("NVDA"), Name: str("NVIDIA Corp."), Price: num(875.10), Change: num(12.40), ChangePercent: num(1.44)},
}
