package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	"github.com/BruksfildServices01/service-booking/internal/auth"
	"github.com/BruksfildServices01/service-booking/internal/config"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/handlers"
	"github.com/BruksfildServices01/service-booking/internal/middleware"
	"github.com/BruksfildServices01/service-booking/internal/notify"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
	"github.com/BruksfildServices01/service-booking/internal/usecase/account"
	ucBooking "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/service-booking/internal/usecase/catalog"
	"github.com/BruksfildServices01/service-booking/internal/usecase/deletion"
	"github.com/BruksfildServices01/service-booking/internal/usecase/inbox"
	"github.com/BruksfildServices01/service-booking/internal/usecase/moderation"
	"github.com/BruksfildServices01/service-booking/internal/usecase/review"
	"github.com/BruksfildServices01/service-booking/internal/usecase/schedule"
	"github.com/BruksfildServices01/service-booking/internal/validators"
)

// Deps are the process-wide singletons the API is built from.
type Deps struct {
	Config   *config.Config
	Store    domain.Repository
	Locker   domain.SlotLocker
	Notifier domain.Notifier
	Archiver domain.Archiver
	Audit    *audit.Dispatcher
	Clock    timezone.Clock
	Location *time.Location
	Log      *zap.Logger
}

type UseCases struct {
	Tokens *auth.Tokens

	Register *account.Register
	Login    *account.Login
	Profile  *account.Profile

	CreateService *catalog.CreateService
	ListServices  *catalog.ListServices
	UpdateService *schedule.UpdateService

	CreateBooking *ucBooking.CreateBooking
	CancelBooking *ucBooking.CancelBooking
	HideBooking   *ucBooking.HideBooking
	ListBookings  *ucBooking.ListBookings

	DeleteService *deletion.DeleteService
	DeleteUser    *deletion.DeleteUser
	Sweep         *deletion.Sweep

	CreateReview *review.CreateReview
	ListReviews  *review.ListReviews

	Inbox *inbox.Inbox

	ModerateUser  *moderation.ModerateUser
	AdminOverview *moderation.AdminOverview
}

func BuildUseCases(d Deps) *UseCases {
	cfg := d.Config
	templates := notify.NewTemplates(cfg.AppURL, d.Location)
	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour, d.Clock)
	purger := ucBooking.NewPurger(d.Store, d.Archiver, d.Log)

	// ======================================================
	// ACCOUNTS
	// ======================================================
	register := account.NewRegister(d.Store, tokens, d.Audit)
	if cfg.IsProduction() {
		register.CheckEmailDomain = validators.IsEmailDomainValid
	}

	// ======================================================
	// BOOKINGS
	// ======================================================
	createBooking := ucBooking.NewCreateBooking(d.Store, d.Locker, d.Notifier, templates, d.Audit, d.Clock, d.Log)
	createBooking.AllowSelfBooking = cfg.AllowSelfBooking

	// ======================================================
	// CASCADES
	// ======================================================
	updateService := schedule.NewUpdateService(d.Store, d.Notifier, templates, d.Audit, d.Clock, d.Location, d.Log)
	deleteService := deletion.NewDeleteService(d.Store, d.Notifier, templates, d.Audit, d.Clock, d.Log)
	if cfg.NotifyConcurrency > 0 {
		updateService.Concurrency = cfg.NotifyConcurrency
		deleteService.Concurrency = cfg.NotifyConcurrency
	}

	return &UseCases{
		Tokens: tokens,

		Register: register,
		Login:    account.NewLogin(d.Store, tokens, d.Log),
		Profile:  account.NewProfile(d.Store),

		CreateService: catalog.NewCreateService(d.Store, d.Audit),
		ListServices:  catalog.NewListServices(d.Store, d.Store),
		UpdateService: updateService,

		CreateBooking: createBooking,
		CancelBooking: ucBooking.NewCancelBooking(d.Store, d.Notifier, templates, d.Audit, d.Clock),
		HideBooking:   ucBooking.NewHideBooking(d.Store, purger, d.Audit),
		ListBookings:  ucBooking.NewListBookings(d.Store, d.Clock),

		DeleteService: deleteService,
		DeleteUser:    deletion.NewDeleteUser(d.Store, deleteService, purger, d.Audit, d.Log),
		Sweep:         deletion.NewSweep(d.Store, purger, d.Log),

		CreateReview: review.NewCreateReview(d.Store, purger, d.Audit),
		ListReviews:  review.NewListReviews(d.Store, d.Store),

		Inbox: inbox.New(d.Store),

		ModerateUser:  moderation.NewModerateUser(d.Store, d.Notifier, templates, d.Audit, d.Clock, d.Log),
		AdminOverview: moderation.NewAdminOverview(d.Store),
	}
}

func RegisterRoutes(r *gin.Engine, d Deps, uc *UseCases) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.NewRateLimiter(d.Config.RateLimitPerMin, d.Log).Middleware())

	authn := middleware.NewAuthenticator(uc.Tokens, d.Store, d.Log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(uc.Register, uc.Login, d.Log)
	meHandler := handlers.NewMeHandler(uc.Profile, uc.DeleteUser, uc.ListBookings, d.Log)
	serviceHandler := handlers.NewServiceHandler(uc.CreateService, uc.ListServices, uc.UpdateService, uc.DeleteService, d.Log)
	bookingHandler := handlers.NewBookingHandler(uc.CreateBooking, uc.CancelBooking, uc.HideBooking, uc.ListBookings, d.Location, d.Log)
	reviewHandler := handlers.NewReviewHandler(uc.CreateReview, uc.ListReviews, d.Log)
	notificationHandler := handlers.NewNotificationHandler(uc.Inbox, d.Log)
	adminHandler := handlers.NewAdminHandler(uc.AdminOverview, uc.ModerateUser, uc.DeleteUser, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.Store, d.Location, d.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/services", authn.OptionalAuth(), serviceHandler.Discover)
		api.GET("/services/:id/reviews", reviewHandler.ListForService)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(authn.RequireAuth())
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.DELETE("/me", meHandler.DeleteMe)
			secured.GET("/me/dashboard", meHandler.Dashboard)

			secured.GET("/me/services", serviceHandler.Mine)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/me/bookings", bookingHandler.Mine)
			secured.GET("/me/bookings/incoming", bookingHandler.Incoming)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.DELETE("/bookings/:id", bookingHandler.Hide)

			secured.POST("/reviews", reviewHandler.Create)

			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/read", notificationHandler.MarkAllRead)
			secured.DELETE("/me/notifications/:id", notificationHandler.Delete)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/all-data", adminHandler.AllData)
				admin.POST("/users/:id/actions", adminHandler.UserAction)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)
				admin.DELETE("/services/:id", serviceHandler.Delete)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
