package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
	"ridetracker/internal/reports"
	"ridetracker/internal/repositories"
	"ridetracker/internal/utils"
	"ridetracker/internal/validator"

	"github.com/shopspring/decimal"
)

// SettingsPatch updates only the fields that are set.
type SettingsPatch struct {
	FullName       *string          `json:"fullName" validate:"omitempty,max=120"`
	MonthlyGoal    *decimal.Decimal `json:"monthlyGoal" validate:"omitempty,gte=0"`
	BoltCommission *decimal.Decimal `json:"boltCommission" validate:"omitempty,gte=0,lte=100"`
	FuelCostPerKm  *decimal.Decimal `json:"fuelCostPerKm" validate:"omitempty,gte=0"`
}

type NameInput struct {
	Name string `json:"name" validate:"notblank,identifier"`
}

// ListKind picks one of the two custom identifier lists in Settings.
type ListKind string

const (
	ListPlatforms       ListKind = "platforms"
	ListPickupLocations ListKind = "pickup_locations"
)

type SettingsService struct {
	Store     repositories.SettingsStore
	Now       func() time.Time
	RequestID string
}

// Get returns the stored settings, or defaults for a user with none.
func (s SettingsService) Get(ctx context.Context, userID string) (models.Settings, error) {
	st, _, err := s.Store.GetSettings(ctx, userID)
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	st.UserID = userID
	return st, nil
}

func (s SettingsService) Update(ctx context.Context, userID string, p SettingsPatch) (models.Settings, error) {
	if err := validator.Struct(p); err != nil {
		return models.Settings{}, err
	}
	st, err := s.Get(ctx, userID)
	if err != nil {
		return models.Settings{}, err
	}
	if p.FullName != nil {
		st.FullName = utils.NormalizeSpace(*p.FullName)
	}
	if p.MonthlyGoal != nil {
		st.MonthlyGoal = p.MonthlyGoal.Round(2)
	}
	if p.BoltCommission != nil {
		st.BoltCommission = *p.BoltCommission
	}
	if p.FuelCostPerKm != nil {
		st.FuelCostPerKm = *p.FuelCostPerKm
	}
	return s.save(ctx, st, "update")
}

// AddCustom appends a user-defined platform or pickup location. Names are
// stored normalized; built-ins and duplicates are rejected.
func (s SettingsService) AddCustom(ctx context.Context, userID string, kind ListKind, in NameInput) (models.Settings, error) {
	if err := validator.Struct(in); err != nil {
		return models.Settings{}, err
	}
	name := domain.NormalizeIdentifier(in.Name)
	if name == reports.PlatformAll {
		return models.Settings{}, domain.ValidationError{Field: "name", Msg: "is reserved"}
	}
	st, err := s.Get(ctx, userID)
	if err != nil {
		return models.Settings{}, err
	}

	list, builtIn, err := customList(&st, kind)
	if err != nil {
		return models.Settings{}, err
	}
	if builtIn(name) {
		return models.Settings{}, domain.ConflictError{Msg: fmt.Sprintf("%s is built in", name)}
	}
	for _, v := range *list {
		if strings.EqualFold(v, name) {
			return models.Settings{}, domain.ConflictError{Msg: fmt.Sprintf("%s already exists", name)}
		}
	}
	*list = append(*list, name)
	return s.save(ctx, st, "add_"+string(kind))
}

// RemoveCustom drops a user-defined entry. Trips that reference it keep
// their stored value.
func (s SettingsService) RemoveCustom(ctx context.Context, userID string, kind ListKind, name string) (models.Settings, error) {
	st, err := s.Get(ctx, userID)
	if err != nil {
		return models.Settings{}, err
	}
	list, _, err := customList(&st, kind)
	if err != nil {
		return models.Settings{}, err
	}

	key := domain.NormalizeIdentifier(name)
	kept := make([]string, 0, len(*list))
	for _, v := range *list {
		if domain.NormalizeIdentifier(v) != key {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(*list) {
		return models.Settings{}, domain.NotFoundError{Resource: key}
	}
	*list = kept
	return s.save(ctx, st, "remove_"+string(kind))
}

func (s SettingsService) save(ctx context.Context, st models.Settings, action string) (models.Settings, error) {
	st.UpdatedAt = nowOr(s.Now)
	if err := s.Store.SaveSettings(ctx, st); err != nil {
		utils.LogFailure(s.RequestID, "settings", action, err)
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	utils.LogEvent(s.RequestID, "settings", action, "user_id="+st.UserID)
	return st, nil
}

func customList(st *models.Settings, kind ListKind) (*[]string, func(string) bool, error) {
	switch kind {
	case ListPlatforms:
		return &st.CustomPlatforms, domain.IsBuiltInPlatform, nil
	case ListPickupLocations:
		return &st.CustomPickupLocations, domain.IsBuiltInPickupLocation, nil
	}
	return nil, nil, domain.ValidationError{Field: "kind", Msg: "unknown list"}
}
