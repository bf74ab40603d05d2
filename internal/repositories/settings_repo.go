package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	intconfig "ridetracker/internal/config"
	"ridetracker/internal/domain/models"
)

type SettingsRepository struct {
	DB *sql.DB
}

func (r SettingsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r SettingsRepository) GetSettings(ctx context.Context, userID string) (models.Settings, bool, error) {
	var s models.Settings
	var platforms, pickups sql.NullString
	err := r.db().QueryRowContext(ctx, `
		SELECT user_id, full_name, monthly_goal, bolt_commission, fuel_cost_per_km,
		       custom_platforms, custom_pickup_locations, updated_at
		FROM user_settings
		WHERE user_id = ?`, userID).Scan(
		&s.UserID, &s.FullName, &s.MonthlyGoal, &s.BoltCommission, &s.FuelCostPerKm,
		&platforms, &pickups, &s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		d := models.DefaultSettings()
		d.UserID = userID
		return d, false, nil
	}
	if err != nil {
		return models.Settings{}, false, err
	}

	if s.CustomPlatforms, err = decodeList(platforms); err != nil {
		return models.Settings{}, false, fmt.Errorf("custom_platforms: %w", err)
	}
	if s.CustomPickupLocations, err = decodeList(pickups); err != nil {
		return models.Settings{}, false, fmt.Errorf("custom_pickup_locations: %w", err)
	}
	return s, true, nil
}

func (r SettingsRepository) SaveSettings(ctx context.Context, s models.Settings) error {
	platforms, err := encodeList(s.CustomPlatforms)
	if err != nil {
		return err
	}
	pickups, err := encodeList(s.CustomPickupLocations)
	if err != nil {
		return err
	}
	_, err = r.db().ExecContext(ctx, `
		INSERT INTO user_settings (
			user_id, full_name, monthly_goal, bolt_commission, fuel_cost_per_km,
			custom_platforms, custom_pickup_locations, updated_at
		) VALUES (?,?,?,?,?,?,?,?)
		ON DUPLICATE KEY UPDATE
			full_name = VALUES(full_name),
			monthly_goal = VALUES(monthly_goal),
			bolt_commission = VALUES(bolt_commission),
			fuel_cost_per_km = VALUES(fuel_cost_per_km),
			custom_platforms = VALUES(custom_platforms),
			custom_pickup_locations = VALUES(custom_pickup_locations),
			updated_at = VALUES(updated_at)`,
		s.UserID, s.FullName, s.MonthlyGoal, s.BoltCommission, s.FuelCostPerKm,
		platforms, pickups, s.UpdatedAt.UTC(),
	)
	return err
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

func decodeList(raw sql.NullString) ([]string, error) {
	out := []string{}
	if !raw.Valid || raw.String == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return []string{}, err
	}
	return out, nil
}
