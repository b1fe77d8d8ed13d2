package service

import (
	"fmt"
	"time"

	"github.com/abgdnv/bgrs/internal/inventory/store"
)

const day = 24 * time.Hour

// sample describes a demonstration record. A zero shelfLife means no expiry.
type sample struct {
	name        string
	description string
	category    string
	quantity    int
	price       float64
	shelfLife   time.Duration
	note        string
}

var samples = []sample{
	{"Potion de Soin Ultime", "Restores a full health bar", "Potion", 3, 49.99, 90 * day, "Keep away from light"},
	{"Duct tape", "Fixes almost everything", "", 12, 4.50, 0, ""},
	{"Sterile gauze pads", "10x10 cm, individually wrapped", "Dressing", 40, 0.35, 365 * day, ""},
	{"Saline solution", "0.9% NaCl, 500 ml bottle", "Solution", 10, 2.10, 180 * day, "Store below 25C"},
	{"Adhesive bandages", "Assorted sizes", "Dressing", 100, 0.05, 0, ""},
	{"Antiseptic wipes", "Alcohol-free", "Antiseptic", 200, 0.08, 730 * day, ""},
}

// GenerateSamples adds the demonstration records and returns them in the order they were added.
// Expiry dates are relative to the current time.
func (s *Service) GenerateSamples() ([]store.Record, error) {
	now := s.now().Truncate(time.Second)
	created := make([]store.Record, 0, len(samples))
	for _, sm := range samples {
		fields := store.Fields{
			Name:        sm.name,
			Description: sm.description,
			Category:    sm.category,
			Quantity:    sm.quantity,
			UnitPrice:   sm.price,
			Note:        sm.note,
		}
		if sm.shelfLife > 0 {
			fields.ExpiresAt = now.Add(sm.shelfLife)
		}
		record, err := s.Add(fields)
		if err != nil {
			return created, fmt.Errorf("failed to generate sample %q: %w", sm.name, err)
		}
		created = append(created, record)
	}
	s.logger.Info("Sample records generated", "count", len(created))
	return created, nil
}
