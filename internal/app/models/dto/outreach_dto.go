package dto

// CreateInviteBatchRequest creates and sends a batch of email invites.
type CreateInviteBatchRequest struct {
	Emails        []string `json:"emails" binding:"required,min=1,dive,email"`
	CustomMessage string   `json:"customMessage" binding:"max=2048"`
}

// NewsletterRequest creates or edits a draft newsletter.
type NewsletterRequest struct {
	Title      string `json:"title" binding:"required,max=256"`
	Body       string `json:"body" binding:"required"`
	CategoryID int    `json:"categoryId" binding:"required"`
}

// ProspectRequest records or updates a prospective partner contact.
type ProspectRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Name         string `json:"name" binding:"max=128"`
	Organization string `json:"organization" binding:"max=128"`
	Notes        string `json:"notes" binding:"max=2048"`
}
