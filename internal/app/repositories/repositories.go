package repositories

import (
	"gorm.io/gorm"

	"github.com/trashmob-eco/trashmob-api/internal/app/models"
)

// Repositories bundles every repository plus the unit of work for injection
// into the service layer.
type Repositories struct {
	DB *gorm.DB

	UnitOfWork *UnitOfWork

	Users         *UserRepository
	Events        *EventRepository
	Teams         *TeamRepository
	TeamMembers   *TeamMemberRepository
	TeamAdoptions *TeamAdoptionRepository
	Partners      *PartnerRepository
	Waivers       *WaiverRepository
	Areas         *AreaRepository
	Outreach      *OutreachRepository

	EventPhotos   *PhotoRepository[models.EventPhoto]
	TeamPhotos    *PhotoRepository[models.TeamPhoto]
	PartnerPhotos *PhotoRepository[models.PartnerPhoto]
	PhotoAudit    *PhotoAuditRepository

	EventTypes           *LookupRepository[models.EventType]
	ServiceTypes         *LookupRepository[models.ServiceType]
	PartnerTypes         *LookupRepository[models.PartnerType]
	NewsletterCategories *LookupRepository[models.NewsletterCategory]
}

// NewRepositories wires all repositories to one database handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:         db,
		UnitOfWork: NewUnitOfWork(db),

		Users:         NewUserRepository(db),
		Events:        NewEventRepository(db),
		Teams:         NewTeamRepository(db),
		TeamMembers:   NewTeamMemberRepository(db),
		TeamAdoptions: NewTeamAdoptionRepository(db),
		Partners:      NewPartnerRepository(db),
		Waivers:       NewWaiverRepository(db),
		Areas:         NewAreaRepository(db),
		Outreach:      NewOutreachRepository(db),

		EventPhotos:   NewPhotoRepository[models.EventPhoto](db),
		TeamPhotos:    NewPhotoRepository[models.TeamPhoto](db),
		PartnerPhotos: NewPhotoRepository[models.PartnerPhoto](db),
		PhotoAudit:    NewPhotoAuditRepository(db),

		EventTypes:           NewLookupRepository[models.EventType](db),
		ServiceTypes:         NewLookupRepository[models.ServiceType](db),
		PartnerTypes:         NewLookupRepository[models.PartnerType](db),
		NewsletterCategories: NewLookupRepository[models.NewsletterCategory](db),
	}
}
