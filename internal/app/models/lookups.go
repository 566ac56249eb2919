package models

// Lookup tables are configuration data: seeded at startup, read-mostly, never
// deleted through the API.

// EventType categorizes an event (park cleanup, school cleanup, ...)
type EventType struct {
	LookupModel
}

// TableName returns the table name for EventType.
func (EventType) TableName() string {
	return "event_types"
}

// ServiceType categorizes a service a partner location can offer
// (hauling, disposal, supplies, starter kits).
type ServiceType struct {
	LookupModel
}

// TableName returns the table name for ServiceType.
func (ServiceType) TableName() string {
	return "service_types"
}

// PartnerType categorizes a partner organization (government or business).
type PartnerType struct {
	LookupModel
}

// TableName returns the table name for PartnerType.
func (PartnerType) TableName() string {
	return "partner_types"
}

// NewsletterCategory groups newsletters for subscription filtering.
type NewsletterCategory struct {
	LookupModel
}

// TableName returns the table name for NewsletterCategory.
func (NewsletterCategory) TableName() string {
	return "newsletter_categories"
}
