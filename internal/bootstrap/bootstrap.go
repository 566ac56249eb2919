package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	appAuth "github.com/trashmob-eco/trashmob-api/internal/app/auth"
	appControllers "github.com/trashmob-eco/trashmob-api/internal/app/controllers"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	appRepos "github.com/trashmob-eco/trashmob-api/internal/app/repositories"
	appRoutes "github.com/trashmob-eco/trashmob-api/internal/app/routes"
	appServices "github.com/trashmob-eco/trashmob-api/internal/app/services"
	"github.com/trashmob-eco/trashmob-api/internal/config"
	"github.com/trashmob-eco/trashmob-api/internal/db"
	appMiddleware "github.com/trashmob-eco/trashmob-api/internal/middleware"
	pkgAuth "github.com/trashmob-eco/trashmob-api/internal/pkg/auth"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/email"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/filestorage"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/helpers"
	"github.com/trashmob-eco/trashmob-api/internal/pkg/logger"
	"github.com/trashmob-eco/trashmob-api/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	EventService        appServices.EventService
	TeamService         appServices.TeamService
	TeamMemberService   appServices.TeamMemberService
	TeamAdoptionService appServices.TeamAdoptionService
	PartnerService      appServices.PartnerService
	WaiverService       appServices.WaiverService
	AreaService         appServices.AreaService
	OutreachService     appServices.OutreachService

	EventPhotoService   appServices.PhotoService[models.EventPhoto, *models.EventPhoto]
	TeamPhotoService    appServices.PhotoService[models.TeamPhoto, *models.TeamPhoto]
	PartnerPhotoService appServices.PhotoService[models.PartnerPhoto, *models.PartnerPhoto]

	Controllers    *appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	EmailService   email.EmailService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, migrates the schema and seeds
// default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*gorm.DB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	if err := database.WithContext(ctx).AutoMigrate(models.AllModels()...); err != nil {
		lgr.Error().Err(err).Msg("Failed to migrate database schema")
		return nil, err
	}

	if err := seed.CreateDefaultData(ctx, database, cfg, lgr); err != nil {
		// Seeding failures are logged but do not keep the API from starting.
		lgr.Warn().Err(err).Msg("Default data seeding reported errors")
	}

	lgr.Info().Msg("Database connected and migrated")
	return database, nil
}

// BuildDependencies initializes application repositories, services,
// controllers and middleware.
func BuildDependencies(cfg *config.Config, database *gorm.DB, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepos.NewRepositories(database)

	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.BaseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, err
	}

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	authzService := appAuth.NewAuthorizationService(repos.Users, repos.Events, repos.TeamMembers, repos.Partners)

	authService := appServices.NewAuthService(repos.Users, jwtService, emailService, lgr)
	eventService := appServices.NewEventService(repos.Events, repos.UnitOfWork, authzService, lgr)
	teamService := appServices.NewTeamService(repos.Teams, repos.TeamMembers, repos.UnitOfWork, authzService, lgr)
	teamMemberService := appServices.NewTeamMemberService(repos.Teams, repos.TeamMembers, repos.Users, repos.UnitOfWork, authzService, lgr)
	adoptionService := appServices.NewTeamAdoptionService(repos.TeamAdoptions, repos.Areas, repos.Events, authzService, lgr)
	partnerService := appServices.NewPartnerService(repos.Partners, repos.Events, repos.Users, authzService, lgr)
	waiverService := appServices.NewWaiverService(repos.Waivers, repos.Partners, repos.UnitOfWork, authzService, lgr)
	areaService := appServices.NewAreaService(repos.Areas, repos.UnitOfWork, authzService, lgr)
	outreachService := appServices.NewOutreachService(repos.Outreach, repos.Users, repos.UnitOfWork, emailService, authzService, lgr)

	eventPhotoService := appServices.NewPhotoService[models.EventPhoto](
		repos.EventPhotos, repos.PhotoAudit, repos.UnitOfWork, fileStorage, authzService, lgr,
		func(ownerID, actorID uuid.UUID, now time.Time) *models.EventPhoto {
			photo := &models.EventPhoto{EventID: ownerID}
			photo.StampCreate(actorID, now)
			return photo
		},
		"event_id", "events",
	)
	teamPhotoService := appServices.NewPhotoService[models.TeamPhoto](
		repos.TeamPhotos, repos.PhotoAudit, repos.UnitOfWork, fileStorage, authzService, lgr,
		func(ownerID, actorID uuid.UUID, now time.Time) *models.TeamPhoto {
			photo := &models.TeamPhoto{TeamID: ownerID}
			photo.StampCreate(actorID, now)
			return photo
		},
		"team_id", "teams",
	)
	partnerPhotoService := appServices.NewPhotoService[models.PartnerPhoto](
		repos.PartnerPhotos, repos.PhotoAudit, repos.UnitOfWork, fileStorage, authzService, lgr,
		func(ownerID, actorID uuid.UUID, now time.Time) *models.PartnerPhoto {
			photo := &models.PartnerPhoto{PartnerID: ownerID}
			photo.StampCreate(actorID, now)
			return photo
		},
		"partner_id", "partners",
	)

	authMiddleware := appMiddleware.NewAuthMiddleware(jwtService)

	controllers := &appRoutes.Controllers{
		Auth:          appControllers.NewAuthController(authService),
		Event:         appControllers.NewEventController(eventService),
		Team:          appControllers.NewTeamController(teamService),
		TeamMember:    appControllers.NewTeamMemberController(teamMemberService),
		Adoption:      appControllers.NewAdoptionController(adoptionService),
		Partner:       appControllers.NewPartnerController(partnerService),
		Waiver:        appControllers.NewWaiverController(waiverService),
		Area:          appControllers.NewAreaController(areaService),
		Outreach:      appControllers.NewOutreachController(outreachService),
		EventPhotos:   appControllers.NewPhotoController(eventPhotoService),
		TeamPhotos:    appControllers.NewPhotoController(teamPhotoService),
		PartnerPhotos: appControllers.NewPhotoController(partnerPhotoService),
	}

	return &Dependencies{
		AuthService:         authService,
		EventService:        eventService,
		TeamService:         teamService,
		TeamMemberService:   teamMemberService,
		TeamAdoptionService: adoptionService,
		PartnerService:      partnerService,
		WaiverService:       waiverService,
		AreaService:         areaService,
		OutreachService:     outreachService,
		EventPhotoService:   eventPhotoService,
		TeamPhotoService:    teamPhotoService,
		PartnerPhotoService: partnerPhotoService,
		Controllers:         controllers,
		AuthMiddleware:      authMiddleware,
		Repos:               repos,
		JWTService:          jwtService,
		AuthzService:        authzService,
		EmailService:        emailService,
		FileStorage:         fileStorage,
		Logger:              lgr,
	}, nil
}

// SetupRouter configures the gin engine with all application routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "release", "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.Default()

	// Uploaded photos are served straight from local storage.
	router.Static("/uploads", cfg.Server.StoragePath)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	lgr.Info().Str("mode", cfg.Server.Mode).Msg("Router configured")
	return router
}
