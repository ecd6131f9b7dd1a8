package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tourapp/internal/config"
	h "tourapp/internal/http/handlers"
	"tourapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Konten publik (frontend sebelum login)
		api.GET("/sections", h.GetSections)
		api.GET("/settings", h.GetSettings)

		// Semua di bawah ini butuh token
		authed := api.Group("")
		authed.Use(middleware.Auth(h.JWTSecret()))
		{
			authed.GET("/auth/me", h.Me)

			// Travelers (list khusus admin, didaftarkan di group admin)
			travelers := authed.Group("/travelers")
			travelers.GET("/:id", h.GetTravelerByID)
			travelers.PUT("/:id", h.UpdateTraveler)

			// Vehicles
			vehicles := authed.Group("/vehicles")
			vehicles.GET("", h.GetVehicles)
			vehicles.GET("/:id", h.GetVehicleByID)
			vehicles.GET("/:id/occupants", h.GetVehicleOccupants)
			vehicles.GET("/:id/manifest", h.GetVehicleManifestPDF)
			vehicles.PUT("/:id/location", h.UpdateVehicleLocation)

			// Itinerary
			authed.GET("/itinerary", h.GetItinerary)

			// Check-ins
			checkins := authed.Group("/checkins")
			checkins.GET("/sessions", h.GetCheckinSessions)
			checkins.GET("", h.GetCheckins)
			checkins.GET("/recap", h.GetCheckinRecap)

			// Posts & journals
			posts := authed.Group("/posts")
			posts.GET("", h.GetPosts)
			posts.POST("", h.CreatePost)
			posts.PUT("/:id", h.UpdatePost)
			posts.DELETE("/:id", h.DeletePost)

			journals := authed.Group("/journals")
			journals.GET("", h.GetJournals)
			journals.GET("/:id", h.GetJournalByID)
			journals.POST("", h.CreateJournal)
			journals.PUT("/:id", h.UpdateJournal)
			journals.DELETE("/:id", h.DeleteJournal)

			// Hotels & rooming
			hotels := authed.Group("/hotels")
			hotels.GET("", h.GetHotels)
			hotels.GET("/:id", h.GetHotelByID)
			hotels.GET("/:id/rooms", h.GetHotelRooms)
			hotels.GET("/:id/rooming-list", h.GetHotelRoomingListPDF)

			// Allotments (read untuk semua yang login)
			authed.GET("/allotments", h.GetAllotments)

			// Announcements (sisi peserta)
			authed.GET("/announcements/poll", h.PollAnnouncements)
			authed.GET("/announcements/unread-count", h.GetUnreadCount)
			authed.POST("/announcements/:id/read", h.MarkAnnouncementRead)

			// Uploads
			authed.POST("/uploads", h.UploadMedia)
		}

		// Mutasi khusus admin
		admin := api.Group("")
		admin.Use(middleware.Auth(h.JWTSecret()), middleware.RequireRoles("admin"))
		{
			admin.POST("/admin/users", h.AdminCreateUser)
			admin.PUT("/admin/users/:id/role", h.AdminSetUserRole)
			admin.PUT("/admin/users/:id/password", h.AdminResetPassword)
			// alias panel admin lama
			admin.GET("/admin/users", h.GetTravelers)
			admin.PUT("/admin/users/:id", h.UpdateTraveler)
			admin.DELETE("/admin/users/:id", h.DeleteTraveler)

			admin.GET("/travelers", h.GetTravelers)
			admin.DELETE("/travelers/:id", h.DeleteTraveler)
			admin.PUT("/travelers/:id/vehicle", h.AssignTravelerVehicle)

			admin.POST("/vehicles", h.CreateVehicle)
			admin.PUT("/vehicles/:id", h.UpdateVehicle)
			admin.DELETE("/vehicles/:id", h.DeleteVehicle)

			admin.POST("/itinerary", h.CreateItineraryItem)
			admin.PUT("/itinerary/:id", h.UpdateItineraryItem)
			admin.DELETE("/itinerary/:id", h.DeleteItineraryItem)

			admin.POST("/checkins/sessions", h.CreateCheckinSession)
			admin.PUT("/checkins/sessions/:id", h.UpdateCheckinSession)
			admin.DELETE("/checkins/sessions/:id", h.DeleteCheckinSession)
			admin.POST("/checkins", h.UpsertCheckin)

			admin.PUT("/posts/:id/approve", h.ApprovePost)
			admin.PUT("/posts/:id/reject", h.RejectPost)

			admin.POST("/hotels", h.CreateHotel)
			admin.PUT("/hotels/:id", h.UpdateHotel)
			admin.DELETE("/hotels/:id", h.DeleteHotel)
			admin.POST("/hotels/:id/rooms", h.CreateHotelRoom)
			admin.PUT("/rooms/:id", h.UpdateRoom)
			admin.DELETE("/rooms/:id", h.DeleteRoom)

			admin.POST("/allotments", h.UpsertAllotment)
			admin.DELETE("/allotments/:id", h.DeleteAllotment)

			admin.PUT("/settings", h.UpdateSettings)

			admin.GET("/announcements", h.GetAnnouncements)
			admin.GET("/announcements/:id", h.GetAnnouncementByID)
			admin.POST("/announcements", h.CreateAnnouncement)
			admin.PUT("/announcements/:id", h.UpdateAnnouncement)
			admin.DELETE("/announcements/:id", h.DeleteAnnouncement)

			admin.POST("/sections", h.CreateSection)
			admin.PUT("/sections/:id", h.UpdateSection)
			admin.DELETE("/sections/:id", h.DeleteSection)
		}
	}

	h.SetRouter(r)
	return r
}
