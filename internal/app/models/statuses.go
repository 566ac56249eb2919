package models

import "fmt"

// Status values are closed types with explicit transition predicates so an
// invalid state can only be produced by bypassing the boundary parsers.

// EventStatus is the integer-backed lifecycle state of an event.
type EventStatus int

const (
	EventStatusActive   EventStatus = 1
	EventStatusFull     EventStatus = 2
	EventStatusCanceled EventStatus = 3
	EventStatusComplete EventStatus = 4
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusActive, EventStatusFull, EventStatusCanceled, EventStatusComplete:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Active and Full interchange as capacity changes; Canceled and Complete are
// terminal.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventStatusActive:
		return next == EventStatusFull || next == EventStatusCanceled || next == EventStatusComplete
	case EventStatusFull:
		return next == EventStatusActive || next == EventStatusCanceled || next == EventStatusComplete
	default:
		return false
	}
}

func (s EventStatus) String() string {
	switch s {
	case EventStatusActive:
		return "Active"
	case EventStatusFull:
		return "Full"
	case EventStatusCanceled:
		return "Canceled"
	case EventStatusComplete:
		return "Complete"
	}
	return fmt.Sprintf("EventStatus(%d)", int(s))
}

// PartnerStatus is the integer-backed state of a partner organization.
type PartnerStatus int

const (
	PartnerStatusActive   PartnerStatus = 1
	PartnerStatusInactive PartnerStatus = 2
)

// Valid reports whether s is a known partner status.
func (s PartnerStatus) Valid() bool {
	return s == PartnerStatusActive || s == PartnerStatusInactive
}

// ModerationStatus is the review state of an uploaded photo.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "Pending"
	ModerationApproved ModerationStatus = "Approved"
	ModerationRejected ModerationStatus = "Rejected"
)

// Valid reports whether s is a known moderation status.
func (s ModerationStatus) Valid() bool {
	return s == ModerationPending || s == ModerationApproved || s == ModerationRejected
}

// CanTransitionTo reports whether a moderation decision may move the photo
// from s to next. Decisions are made once; approved and rejected are terminal.
func (s ModerationStatus) CanTransitionTo(next ModerationStatus) bool {
	return s == ModerationPending && (next == ModerationApproved || next == ModerationRejected)
}

// AdoptionStatus is the state of a team's area-adoption application.
type AdoptionStatus string

const (
	AdoptionPending  AdoptionStatus = "Pending"
	AdoptionApproved AdoptionStatus = "Approved"
	AdoptionRejected AdoptionStatus = "Rejected"
	AdoptionRevoked  AdoptionStatus = "Revoked"
)

// Valid reports whether s is a known adoption status.
func (s AdoptionStatus) Valid() bool {
	switch s {
	case AdoptionPending, AdoptionApproved, AdoptionRejected, AdoptionRevoked:
		return true
	}
	return false
}

// CanTransitionTo reports whether the adoption workflow allows moving from s
// to next. Pending resolves to Approved or Rejected; only an approved
// adoption can be revoked.
func (s AdoptionStatus) CanTransitionTo(next AdoptionStatus) bool {
	switch s {
	case AdoptionPending:
		return next == AdoptionApproved || next == AdoptionRejected
	case AdoptionApproved:
		return next == AdoptionRevoked
	default:
		return false
	}
}

// ReviewStatus is the state of a staged adoptable area awaiting promotion.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "Pending"
	ReviewApproved ReviewStatus = "Approved"
	ReviewRejected ReviewStatus = "Rejected"
)

// Valid reports whether s is a known review status.
func (s ReviewStatus) Valid() bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

// CanTransitionTo reports whether a staged area may move from s to next.
func (s ReviewStatus) CanTransitionTo(next ReviewStatus) bool {
	return s == ReviewPending && (next == ReviewApproved || next == ReviewRejected)
}

// JoinRequestStatus is the state of a request to join a team.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "Pending"
	JoinRequestApproved JoinRequestStatus = "Approved"
	JoinRequestRejected JoinRequestStatus = "Rejected"
)

// CanTransitionTo reports whether a join request may move from s to next.
func (s JoinRequestStatus) CanTransitionTo(next JoinRequestStatus) bool {
	return s == JoinRequestPending && (next == JoinRequestApproved || next == JoinRequestRejected)
}

// ServiceRequestStatus is the state of an event's request for partner
// services at a location.
type ServiceRequestStatus string

const (
	ServiceRequestRequested ServiceRequestStatus = "Requested"
	ServiceRequestAccepted  ServiceRequestStatus = "Accepted"
	ServiceRequestDeclined  ServiceRequestStatus = "Declined"
)

// CanTransitionTo reports whether a service request may move from s to next.
func (s ServiceRequestStatus) CanTransitionTo(next ServiceRequestStatus) bool {
	return s == ServiceRequestRequested && (next == ServiceRequestAccepted || next == ServiceRequestDeclined)
}

// InviteStatus is the delivery state of an email invite.
type InviteStatus string

const (
	InvitePending  InviteStatus = "Pending"
	InviteSent     InviteStatus = "Sent"
	InviteAccepted InviteStatus = "Accepted"
	InviteBounced  InviteStatus = "Bounced"
)

// CanTransitionTo reports whether an invite may move from s to next.
func (s InviteStatus) CanTransitionTo(next InviteStatus) bool {
	switch s {
	case InvitePending:
		return next == InviteSent
	case InviteSent:
		return next == InviteAccepted || next == InviteBounced
	default:
		return false
	}
}

// NewsletterStatus is the publication state of a newsletter.
type NewsletterStatus string

const (
	NewsletterDraft     NewsletterStatus = "Draft"
	NewsletterScheduled NewsletterStatus = "Scheduled"
	NewsletterSent      NewsletterStatus = "Sent"
)

// CanTransitionTo reports whether a newsletter may move from s to next.
func (s NewsletterStatus) CanTransitionTo(next NewsletterStatus) bool {
	switch s {
	case NewsletterDraft:
		return next == NewsletterScheduled || next == NewsletterSent
	case NewsletterScheduled:
		return next == NewsletterDraft || next == NewsletterSent
	default:
		return false
	}
}

// ProspectStatus is the outreach state of a prospect contact.
type ProspectStatus string

const (
	ProspectNew       ProspectStatus = "New"
	ProspectContacted ProspectStatus = "Contacted"
	ProspectResponded ProspectStatus = "Responded"
	ProspectClosed    ProspectStatus = "Closed"
)

// Valid reports whether s is a known prospect status.
func (s ProspectStatus) Valid() bool {
	switch s {
	case ProspectNew, ProspectContacted, ProspectResponded, ProspectClosed:
		return true
	}
	return false
}
