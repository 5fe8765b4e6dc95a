package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taxxyapp/taxxy/internal/model"
)

// GetTaxProfile fetches the owner's tax profile, or nil if none was saved.
// A missing profile is not an error; classification simply proceeds without
// the grounding facts.
func (s *SQLiteStorage) GetTaxProfile(ctx context.Context, owner string) (*model.TaxProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}

	var p model.TaxProfile
	err := s.db.QueryRowContext(ctx, `
		SELECT owner, filing_status, state, business_type,
			has_home_office, home_office_square_feet,
			uses_vehicle_for_business, business_miles_percentage
		FROM tax_profiles
		WHERE owner = ?
	`, owner).Scan(
		&p.Owner, &p.FilingStatus, &p.State, &p.BusinessType,
		&p.HasHomeOffice, &p.HomeOfficeSquareFeet,
		&p.UsesVehicleForBusiness, &p.BusinessMilesPercentage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tax profile: %w", err)
	}

	return &p, nil
}

// SaveTaxProfile inserts or replaces the owner's tax profile.
func (s *SQLiteStorage) SaveTaxProfile(ctx context.Context, profile *model.TaxProfile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if profile == nil {
		return fmt.Errorf("%w: profile", ErrNilParameter)
	}
	if err := validateString(profile.Owner, "profile.Owner"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tax_profiles (
			owner, filing_status, state, business_type,
			has_home_office, home_office_square_feet,
			uses_vehicle_for_business, business_miles_percentage,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(owner) DO UPDATE SET
			filing_status = excluded.filing_status,
			state = excluded.state,
			business_type = excluded.business_type,
			has_home_office = excluded.has_home_office,
			home_office_square_feet = excluded.home_office_square_feet,
			uses_vehicle_for_business = excluded.uses_vehicle_for_business,
			business_miles_percentage = excluded.business_miles_percentage,
			updated_at = CURRENT_TIMESTAMP
	`,
		profile.Owner,
		profile.FilingStatus,
		profile.State,
		profile.BusinessType,
		profile.HasHomeOffice,
		profile.HomeOfficeSquareFeet,
		profile.UsesVehicleForBusiness,
		profile.BusinessMilesPercentage,
	)
	if err != nil {
		return fmt.Errorf("failed to save tax profile: %w", err)
	}

	return nil
}
