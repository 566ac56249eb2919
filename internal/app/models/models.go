package models

// AllModels returns every entity type registered for schema migration, in
// dependency order.
func AllModels() []interface{} {
	return []interface{}{
		// Lookup tables
		&EventType{},
		&ServiceType{},
		&PartnerType{},
		&NewsletterCategory{},

		// Users
		&User{},
		&UserNotificationPreference{},

		// Events
		&Event{},
		&EventAttendee{},
		&EventHistory{},
		&EventSummary{},
		&EventPhoto{},

		// Teams
		&Team{},
		&TeamMember{},
		&TeamJoinRequest{},
		&TeamAdoption{},
		&TeamAdoptionEvent{},
		&TeamPhoto{},

		// Partners
		&Partner{},
		&PartnerLocation{},
		&PartnerLocationService{},
		&PartnerAdmin{},
		&EventPartnerLocationService{},
		&PartnerPhoto{},

		// Waivers
		&Waiver{},
		&WaiverVersion{},
		&UserWaiver{},
		&CommunityWaiver{},

		// Photo moderation
		&PhotoFlag{},
		&PhotoModerationLog{},

		// Adoptable areas
		&AdoptableArea{},
		&AreaGenerationBatch{},
		&StagedAdoptableArea{},

		// Outreach
		&EmailInviteBatch{},
		&EmailInvite{},
		&Newsletter{},
		&ProspectOutreachEmail{},
	}
}
