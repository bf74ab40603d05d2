package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultMonthlyGoal    = 2000
	DefaultBoltCommission = 20
)

// Settings holds per-user preferences consumed by the fee and report engines.
type Settings struct {
	UserID                string          `json:"-"`
	FullName              string          `json:"fullName"`
	MonthlyGoal           decimal.Decimal `json:"monthlyGoal"`
	BoltCommission        decimal.Decimal `json:"boltCommission"`
	FuelCostPerKm         decimal.Decimal `json:"fuelCostPerKm"`
	CustomPlatforms       []string        `json:"customPlatforms"`
	CustomPickupLocations []string        `json:"customPickupLocations"`
	UpdatedAt             time.Time       `json:"updatedAt,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		MonthlyGoal:           decimal.NewFromInt(DefaultMonthlyGoal),
		BoltCommission:        decimal.NewFromInt(DefaultBoltCommission),
		FuelCostPerKm:         decimal.Zero,
		CustomPlatforms:       []string{},
		CustomPickupLocations: []string{},
	}
}
