package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	"github.com/trashmob-eco/trashmob-api/internal/config"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/apperrors"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/auth"
)

// CreateDefaultData seeds the lookup tables and, when configured, a default
// site admin account. It is idempotent and safe to run on every startup.
func CreateDefaultData(ctx context.Context, db *gorm.DB, cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (lookup tables)...")

	var finalErr error

	if err := seedLookups(ctx, db); err != nil {
		lgr.Error().Err(err).Msg("Error seeding lookup tables")
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedDefaultAdmin(ctx, db, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error seeding default admin user")
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedLookups(ctx context.Context, db *gorm.DB) error {
	eventTypes := []models.EventType{
		{LookupModel: models.LookupModel{ID: 1, Name: "Park Cleanup", DisplayOrder: 1, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 2, Name: "School Cleanup", DisplayOrder: 2, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 3, Name: "Neighborhood Cleanup", DisplayOrder: 3, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 4, Name: "Beach Cleanup", DisplayOrder: 4, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 5, Name: "Highway Cleanup", DisplayOrder: 5, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 6, Name: "Waterway Cleanup", DisplayOrder: 6, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 7, Name: "Vandalism Cleanup", DisplayOrder: 7, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 8, Name: "Social Event", DisplayOrder: 8, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 9, Name: "Other", DisplayOrder: 99, IsActive: true}},
	}

	serviceTypes := []models.ServiceType{
		{LookupModel: models.LookupModel{ID: 1, Name: "Hauling", Description: "Collected trash is hauled away", DisplayOrder: 1, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 2, Name: "Disposal", Description: "Collected trash can be dropped off", DisplayOrder: 2, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 3, Name: "Supplies", Description: "Bags, grabbers and gloves are provided", DisplayOrder: 3, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 4, Name: "Starter Kits", Description: "Starter kits for new volunteers", DisplayOrder: 4, IsActive: true}},
	}

	partnerTypes := []models.PartnerType{
		{LookupModel: models.LookupModel{ID: 1, Name: "Government", DisplayOrder: 1, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 2, Name: "Business", DisplayOrder: 2, IsActive: true}},
	}

	newsletterCategories := []models.NewsletterCategory{
		{LookupModel: models.LookupModel{ID: 1, Name: "General", DisplayOrder: 1, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 2, Name: "Events", DisplayOrder: 2, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 3, Name: "Volunteers", DisplayOrder: 3, IsActive: true}},
		{LookupModel: models.LookupModel{ID: 4, Name: "Partners", DisplayOrder: 4, IsActive: true}},
	}

	// Existing rows keep any local edits; only missing rows are inserted.
	conflict := clause.OnConflict{DoNothing: true}

	if err := db.WithContext(ctx).Clauses(conflict).Create(&eventTypes).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Clauses(conflict).Create(&serviceTypes).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Clauses(conflict).Create(&partnerTypes).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Clauses(conflict).Create(&newsletterCategories).Error; err != nil {
		return err
	}

	return nil
}

// seedDefaultAdmin creates the bootstrap site admin when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no account with that email exists yet.
func seedDefaultAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, lgr zerolog.Logger) error {
	adminEmail := config.GetEnv("ADMIN_EMAIL", "")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "")
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	userRepo := repositories.NewUserRepository(db)

	_, err := userRepo.FindByEmail(ctx, adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		UserName:     config.GetEnv("ADMIN_USERNAME", "siteadmin"),
		Email:        adminEmail,
		PasswordHash: passwordHash,
		IsSiteAdmin:  true,
		MemberSince:  time.Now(),
	}
	if err := userRepo.Add(ctx, admin); err != nil {
		return err
	}

	lgr.Info().Str("email", adminEmail).Msg("Default site admin created")
	return nil
}
