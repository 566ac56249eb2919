package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/trashmob-eco/trashmob-api/internal/app/controllers"
	"github.com/trashmob-eco/trashmob-api/internal/app/models"
	"github.com/trashmob-eco/trashmob-api/internal/middleware"
)

// Controllers bundles every HTTP controller the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	Event         *controllers.EventController
	Team          *controllers.TeamController
	TeamMember    *controllers.TeamMemberController
	Adoption      *controllers.AdoptionController
	Partner       *controllers.PartnerController
	Waiver        *controllers.WaiverController
	Area          *controllers.AreaController
	Outreach      *controllers.OutreachController
	EventPhotos   *controllers.PhotoController[models.EventPhoto, *models.EventPhoto]
	TeamPhotos    *controllers.PhotoController[models.TeamPhoto, *models.TeamPhoto]
	PartnerPhotos *controllers.PhotoController[models.PartnerPhoto, *models.PartnerPhoto]
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
		auth.GET("/username-available", c.Auth.CheckUserName)
	}

	events := v1.Group("/events")
	{
		events.GET("", c.Event.GetActiveEvents)
		events.GET("/:id", c.Event.GetEvent)
		events.GET("/:id/attendees", c.Event.GetAttendees)
		events.GET("/:id/history", c.Event.GetEventHistory)
		events.GET("/:id/summary", c.Event.GetSummary)
		events.GET("/:id/photos", c.EventPhotos.GetPhotos)
		events.GET("/:id/services", c.Partner.GetEventServiceRequests)
	}

	teams := v1.Group("/teams")
	{
		teams.GET("", c.Team.GetPublicTeams)
		teams.GET("/name-available", c.Team.CheckTeamName)
		teams.GET("/:id", c.Team.GetTeam)
		teams.GET("/:id/members", c.TeamMember.GetMembers)
		teams.GET("/:id/adoptions", c.Adoption.GetTeamAdoptions)
		teams.GET("/:id/photos", c.TeamPhotos.GetPhotos)
	}

	partners := v1.Group("/partners")
	{
		partners.GET("", c.Partner.GetActivePartners)
		partners.GET("/:id", c.Partner.GetPartner)
		partners.GET("/:id/locations", c.Partner.GetLocations)
		partners.GET("/:id/photos", c.PartnerPhotos.GetPhotos)
	}

	v1.GET("/partner-locations/:locationId/services", c.Partner.GetLocationServices)

	areas := v1.Group("/areas")
	{
		areas.GET("", c.Area.GetActiveAreas)
		areas.GET("/:id", c.Area.GetArea)
	}

	v1.GET("/adoptions/:id", c.Adoption.GetAdoption)
	v1.GET("/adoptions/:id/events", c.Adoption.GetCleanupEvents)

	// Newsletter engagement tracking is hit from email clients, so it
	// stays unauthenticated.
	v1.POST("/newsletters/:id/opens", c.Outreach.RecordNewsletterOpen)
	v1.POST("/newsletters/:id/clicks", c.Outreach.RecordNewsletterClick)
	v1.POST("/invites/:id/accept", c.Outreach.AcceptInvite)
	v1.POST("/invites/:id/bounce", c.Outreach.RecordInviteBounce)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/profile", c.Auth.GetProfile)
		authenticated.PUT("/profile", c.Auth.UpdateProfile)
		authenticated.GET("/profile/events", c.Event.GetMyEvents)
		authenticated.GET("/profile/waivers", c.Waiver.GetMyWaivers)

		authenticated.POST("/events", c.Event.CreateEvent)
		authenticated.PUT("/events/:id", c.Event.UpdateEvent)
		authenticated.POST("/events/:id/cancel", c.Event.CancelEvent)
		authenticated.POST("/events/:id/complete", c.Event.CompleteEvent)
		authenticated.PUT("/events/:id/summary", c.Event.SubmitSummary)
		authenticated.POST("/events/:id/attendees", c.Event.RegisterAttendee)
		authenticated.DELETE("/events/:id/attendees", c.Event.CancelRegistration)
		authenticated.POST("/events/:id/photos", c.EventPhotos.AddPhoto)
		authenticated.POST("/events/:id/services", c.Partner.RequestService)
		authenticated.POST("/events/:id/services/:locationId/:serviceTypeId/accept", c.Partner.AcceptServiceRequest)
		authenticated.POST("/events/:id/services/:locationId/:serviceTypeId/decline", c.Partner.DeclineServiceRequest)

		authenticated.POST("/teams", c.Team.CreateTeam)
		authenticated.PUT("/teams/:id", c.Team.UpdateTeam)
		authenticated.DELETE("/teams/:id", c.Team.DeleteTeam)
		authenticated.POST("/teams/:id/members/:userId", c.TeamMember.AddMember)
		authenticated.DELETE("/teams/:id/members/:userId", c.TeamMember.RemoveMember)
		authenticated.POST("/teams/:id/members/:userId/promote", c.TeamMember.PromoteToLead)
		authenticated.POST("/teams/:id/members/:userId/demote", c.TeamMember.DemoteFromLead)
		authenticated.POST("/teams/:id/join-requests", c.TeamMember.RequestToJoin)
		authenticated.GET("/teams/:id/join-requests", c.TeamMember.GetPendingJoinRequests)
		authenticated.POST("/join-requests/:requestId/approve", c.TeamMember.ApproveJoinRequest)
		authenticated.POST("/join-requests/:requestId/reject", c.TeamMember.RejectJoinRequest)
		authenticated.POST("/teams/:id/adoptions", c.Adoption.Apply)
		authenticated.POST("/teams/:id/photos", c.TeamPhotos.AddPhoto)
		authenticated.POST("/adoptions/:id/events/:eventId", c.Adoption.RecordCleanupEvent)

		authenticated.PUT("/partners/:id", c.Partner.UpdatePartner)
		authenticated.POST("/partners/:id/deactivate", c.Partner.DeactivatePartner)
		authenticated.POST("/partners/:id/locations", c.Partner.AddLocation)
		authenticated.PUT("/partner-locations/:locationId", c.Partner.UpdateLocation)
		authenticated.POST("/partner-locations/:locationId/services", c.Partner.AddLocationService)
		authenticated.DELETE("/partner-locations/:locationId/services/:serviceTypeId", c.Partner.RemoveLocationService)
		authenticated.GET("/partner-locations/:locationId/service-requests", c.Partner.GetLocationServiceRequests)
		authenticated.POST("/partners/:id/admins/:userId", c.Partner.AddAdmin)
		authenticated.DELETE("/partners/:id/admins/:userId", c.Partner.RemoveAdmin)
		authenticated.POST("/partners/:id/photos", c.PartnerPhotos.AddPhoto)
		authenticated.POST("/partners/:id/waivers", c.Waiver.RequireWaiverForPartner)
		authenticated.GET("/partners/:id/waivers", c.Waiver.GetPartnerWaivers)

		authenticated.GET("/waivers/:id", c.Waiver.GetWaiver)
		authenticated.GET("/waivers/:id/active-version", c.Waiver.GetActiveVersion)
		authenticated.POST("/waivers/:id/accept", c.Waiver.Accept)
		authenticated.GET("/waivers/:id/compliance", c.Waiver.GetCompliance)

		authenticated.POST("/invites", c.Outreach.CreateInviteBatch)
		authenticated.GET("/invites/batches/:id", c.Outreach.GetInviteBatch)

		// Photo viewing and flagging per owning entity
		authenticated.GET("/event-photos/:photoId", c.EventPhotos.GetPhoto)
		authenticated.POST("/event-photos/:photoId/flag", c.EventPhotos.Flag)
		authenticated.GET("/event-photos/:photoId/log", c.EventPhotos.GetModerationLog)
		authenticated.GET("/team-photos/:photoId", c.TeamPhotos.GetPhoto)
		authenticated.POST("/team-photos/:photoId/flag", c.TeamPhotos.Flag)
		authenticated.GET("/team-photos/:photoId/log", c.TeamPhotos.GetModerationLog)
		authenticated.GET("/partner-photos/:photoId", c.PartnerPhotos.GetPhoto)
		authenticated.POST("/partner-photos/:photoId/flag", c.PartnerPhotos.Flag)
		authenticated.GET("/partner-photos/:photoId/log", c.PartnerPhotos.GetModerationLog)
	}

	// --- Site admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.SiteAdminRequired())
	{
		admin.POST("/partners", c.Partner.CreatePartner)

		admin.GET("/adoptions/pending", c.Adoption.GetPendingAdoptions)
		admin.POST("/adoptions/:id/approve", c.Adoption.Approve)
		admin.POST("/adoptions/:id/reject", c.Adoption.Reject)
		admin.POST("/adoptions/:id/revoke", c.Adoption.Revoke)

		admin.POST("/waivers", c.Waiver.CreateWaiver)
		admin.POST("/waivers/:id/versions", c.Waiver.PublishVersion)

		admin.POST("/areas/batches", c.Area.CreateBatch)
		admin.POST("/areas/batches/:id/staged", c.Area.StageAreas)
		admin.GET("/areas/staged/pending", c.Area.GetPendingStagedAreas)
		admin.POST("/areas/staged/:stagedId/promote", c.Area.PromoteStagedArea)
		admin.POST("/areas/staged/:stagedId/reject", c.Area.RejectStagedArea)
		admin.POST("/areas/:id/deactivate", c.Area.DeactivateArea)

		admin.POST("/newsletters", c.Outreach.CreateNewsletter)
		admin.PUT("/newsletters/:id", c.Outreach.UpdateNewsletter)
		admin.POST("/newsletters/:id/schedule", c.Outreach.ScheduleNewsletter)
		admin.POST("/newsletters/:id/send", c.Outreach.SendNewsletter)
		admin.GET("/newsletters", c.Outreach.GetNewsletters)

		admin.POST("/prospects", c.Outreach.AddProspect)
		admin.GET("/prospects", c.Outreach.GetProspects)
		admin.POST("/prospects/:id/contacted", c.Outreach.MarkProspectContacted)
		admin.PUT("/prospects/:id/status", c.Outreach.UpdateProspectStatus)

		admin.GET("/event-photos/pending", c.EventPhotos.GetPendingQueue)
		admin.GET("/event-photos/flagged", c.EventPhotos.GetFlaggedQueue)
		admin.POST("/event-photos/:photoId/approve", c.EventPhotos.Approve)
		admin.POST("/event-photos/:photoId/reject", c.EventPhotos.Reject)
		admin.DELETE("/event-photos/:photoId", c.EventPhotos.HardDelete)
		admin.GET("/team-photos/pending", c.TeamPhotos.GetPendingQueue)
		admin.GET("/team-photos/flagged", c.TeamPhotos.GetFlaggedQueue)
		admin.POST("/team-photos/:photoId/approve", c.TeamPhotos.Approve)
		admin.POST("/team-photos/:photoId/reject", c.TeamPhotos.Reject)
		admin.DELETE("/team-photos/:photoId", c.TeamPhotos.HardDelete)
		admin.GET("/partner-photos/pending", c.PartnerPhotos.GetPendingQueue)
		admin.GET("/partner-photos/flagged", c.PartnerPhotos.GetFlaggedQueue)
		admin.POST("/partner-photos/:photoId/approve", c.PartnerPhotos.Approve)
		admin.POST("/partner-photos/:photoId/reject", c.PartnerPhotos.Reject)
		admin.DELETE("/partner-photos/:photoId", c.PartnerPhotos.HardDelete)
	}
}
