package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perfectlysalon/admin-api/internal/clock"
	"github.com/perfectlysalon/admin-api/internal/config"
	domain "github.com/perfectlysalon/admin-api/internal/domain/appointment"
	"github.com/perfectlysalon/admin-api/internal/events"
	"github.com/perfectlysalon/admin-api/internal/handlers"
	infraRepo "github.com/perfectlysalon/admin-api/internal/infra/repository"
	"github.com/perfectlysalon/admin-api/internal/mailer"
	"github.com/perfectlysalon/admin-api/internal/middleware"
	"github.com/perfectlysalon/admin-api/internal/notify"
	ucAccount "github.com/perfectlysalon/admin-api/internal/usecase/account"
	ucAppointment "github.com/perfectlysalon/admin-api/internal/usecase/appointment"
	"github.com/perfectlysalon/admin-api/internal/verification"
)

// RegisterRoutes wires the full API surface and returns the no-show
// sweeper for main to run.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	bus *events.Bus,
	sender mailer.EmailSender,
	clk clock.Clock,
	log *slog.Logger,
) *ucAppointment.Sweeper {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	accountRepo := infraRepo.NewAccountGormRepository(db)

	gate := domain.NewMutationGate()

	notifyWriter := notify.NewWriter(db, bus)
	notifier := notify.NewDispatcher(notifyWriter, log)

	codes := verification.New(db, sender, clk, cfg.CodeTTL, log)
	accounts := ucAccount.NewService(accountRepo, codes)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createUC := ucAppointment.NewCreateBooking(appointmentRepo, bus, clk)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, gate, notifier, bus)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, gate, notifier, bus)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, gate, notifier, bus, log)
	setProductsUC := ucAppointment.NewSetAppointmentProducts(appointmentRepo, bus)
	listUC := ucAppointment.NewListAppointments(appointmentRepo)

	sweeper := ucAppointment.NewSweeper(
		appointmentRepo,
		notifier,
		bus,
		clk,
		log,
		cfg.SweepInterval,
		cfg.SweepInitialDelay,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(accounts, codes, cfg)
	clientHandler := handlers.NewClientHandler(accounts)
	catalogHandler := handlers.NewCatalogHandler(db, bus)
	inventoryHandler := handlers.NewInventoryHandler(db, bus)
	announcementHandler := handlers.NewAnnouncementHandler(db, bus, clk)
	notificationHandler := handlers.NewNotificationHandler(db)
	reportHandler := handlers.NewReportHandler(db, clk)
	dashboardHandler := handlers.NewDashboardHandler(db, clk)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createUC,
		confirmUC,
		cancelUC,
		completeUC,
		setProductsUC,
		listUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH (public)
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/login/verify", authHandler.LoginVerify)
		api.POST("/auth/send-code", authHandler.SendCode)
		api.POST("/auth/verify-code", authHandler.VerifyCode)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/announcements", announcementHandler.List)

			secured.GET("/categories", catalogHandler.ListCategories)
			secured.GET("/services", catalogHandler.ListServices)
			secured.GET("/addons", catalogHandler.ListAddons)

			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.PATCH("/notifications/read-all", notificationHandler.MarkAllRead)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/dashboard", dashboardHandler.Summary)

				admin.GET("/clients", clientHandler.List)
				admin.POST("/clients", clientHandler.Create)
				admin.PATCH("/clients/:id/block", clientHandler.SetBlocked)

				admin.POST("/categories", catalogHandler.CreateCategory)
				admin.PATCH("/categories/:id", catalogHandler.UpdateCategory)

				admin.POST("/services", catalogHandler.CreateService)
				admin.PATCH("/services/:id", catalogHandler.UpdateService)
				admin.PATCH("/services/:id/price", catalogHandler.ChangePrice)
				admin.DELETE("/services/:id", catalogHandler.RemoveService)

				admin.POST("/addons", catalogHandler.CreateAddon)
				admin.PATCH("/addons/:id", catalogHandler.UpdateAddon)
				admin.DELETE("/addons/:id", catalogHandler.RemoveAddon)

				admin.GET("/inventory", inventoryHandler.List)
				admin.GET("/inventory/low-stock", inventoryHandler.LowStock)
				admin.POST("/inventory", inventoryHandler.Create)
				admin.PATCH("/inventory/:id", inventoryHandler.Update)
				admin.DELETE("/inventory/:id", inventoryHandler.Delete)

				// ------------------------------
				// APPOINTMENTS
				// ------------------------------
				admin.POST("/appointments", appointmentHandler.Create)
				admin.GET("/appointments", appointmentHandler.List)
				admin.GET("/appointments/slots", appointmentHandler.Slots)
				admin.GET("/appointments/:id", appointmentHandler.Get)
				admin.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
				admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
				admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
				admin.PUT("/appointments/:id/products", appointmentHandler.SetProducts)
				admin.GET("/appointments/:id/products", appointmentHandler.GetProducts)

				admin.POST("/announcements", announcementHandler.Create)
				admin.DELETE("/announcements/:id", announcementHandler.Delete)

				admin.GET("/reports/summary", reportHandler.Summary)
				admin.GET("/reports/export", reportHandler.ExportCSV)
			}
		}
	}

	return sweeper
}
