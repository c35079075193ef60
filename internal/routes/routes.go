package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/navalha-app/navalha-api/internal/audit"
	"github.com/navalha-app/navalha-api/internal/cache"
	"github.com/navalha-app/navalha-api/internal/config"
	"github.com/navalha-app/navalha-api/internal/handlers"
	infraRepo "github.com/navalha-app/navalha-api/internal/infra/repository"
	"github.com/navalha-app/navalha-api/internal/middleware"
	"github.com/navalha-app/navalha-api/internal/notify"
	ucAppointment "github.com/navalha-app/navalha-api/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleCache := cache.New(cfg.RedisURL, log)
	scheduleRepo := infraRepo.NewScheduleGormRepository(db, scheduleCache)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	notifyDispatcher := notify.NewDispatcher(db, log)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(scheduleRepo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
		notifyDispatcher,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		scheduleRepo,
		auditDispatcher,
		notifyDispatcher,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		scheduleRepo,
		auditDispatcher,
		notifyDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
		notifyDispatcher,
	)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(
		scheduleRepo,
	)

	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		scheduleRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db, scheduleCache)
	workScheduleHandler := handlers.NewWorkScheduleHandler(db, scheduleCache)
	timeBlockHandler := handlers.NewTimeBlockHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		rescheduleUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	notificationHandler := handlers.NewNotificationHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, createAppointmentUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/business-hours", businessHoursHandler.Get)
			secured.PUT("/me/business-hours", businessHoursHandler.Update)

			secured.GET("/me/work-schedules", workScheduleHandler.Get)
			secured.PUT("/me/work-schedules", workScheduleHandler.Update)

			secured.GET("/me/time-blocks", timeBlockHandler.List)
			secured.POST("/me/time-blocks", timeBlockHandler.Create)
			secured.DELETE("/me/time-blocks/:id", timeBlockHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/availability", availabilityHandler.Get)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Cancel)

			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
