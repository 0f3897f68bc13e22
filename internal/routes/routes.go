package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/cache"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	subDomain "github.com/BruksfildServices01/barber-booking/internal/domain/subscription"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barber-booking/internal/usecase/booking"
	ucCatalog "github.com/BruksfildServices01/barber-booking/internal/usecase/catalog"
	ucOnboarding "github.com/BruksfildServices01/barber-booking/internal/usecase/onboarding"
	ucSubscription "github.com/BruksfildServices01/barber-booking/internal/usecase/subscription"
)

// Deps são as dependências de infraestrutura montadas no main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Cache   cache.Store
	Gateway subDomain.Gateway
	Audit   audit.Recorder
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)
	onboardingRepo := infraRepo.NewOnboardingGormRepository(d.DB)
	subscriptionRepo := infraRepo.NewSubscriptionGormRepository(d.DB)
	principalLoader := infraRepo.NewPrincipalGormLoader(d.DB)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	onboardingUC := ucOnboarding.NewOnboarding(onboardingRepo, d.Audit)
	servicesUC := ucCatalog.NewServices(catalogRepo, d.Audit)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, d.Cache, d.Audit)
	listShopBookingsUC := ucBooking.NewListBarbershopBookings(bookingRepo, d.Cache)
	listUserBookingsUC := ucBooking.NewListUserBookings(bookingRepo, d.Cache)
	listCustomersUC := ucBooking.NewListCustomers(bookingRepo)
	getHoursUC := ucBooking.NewGetHours(bookingRepo)
	saveHoursUC := ucBooking.NewSaveHours(bookingRepo, d.Audit)

	statusUC := ucSubscription.NewGetStatus(subscriptionRepo)
	checkoutUC := ucSubscription.NewCreateCheckout(subscriptionRepo, d.Gateway, d.Audit, cfg.AppURL)
	cancelUC := ucSubscription.NewCancel(subscriptionRepo, d.Gateway, d.Audit)
	awaitUC := ucSubscription.NewAwaitActivation(subscriptionRepo, cfg.CheckoutPollAttempts, cfg.CheckoutPollInterval)
	plansUC := ucSubscription.NewPlans(subscriptionRepo, d.Gateway)
	webhookUC := ucSubscription.NewHandleWebhook(subscriptionRepo, d.Gateway, d.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, tokens)
	meHandler := handlers.NewMeHandler(onboardingUC)
	barbershopHandler := handlers.NewBarbershopHandler(onboardingUC)
	publicHandler := handlers.NewPublicHandler(onboardingUC, servicesUC, availabilityUC, createBookingUC)
	serviceHandler := handlers.NewServiceHandler(servicesUC)
	hoursHandler := handlers.NewHoursHandler(getHoursUC, saveHoursUC)
	bookingHandler := handlers.NewBookingHandler(listShopBookingsUC, listUserBookingsUC, listCustomersUC)
	subscriptionHandler := handlers.NewSubscriptionHandler(checkoutUC, cancelUC, statusUC, awaitUC, plansUC, webhookUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

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
			publicAPI.GET("/barbershops/:id", publicHandler.GetBarbershop)
			publicAPI.GET("/barbershops/:id/availability", publicHandler.Availability)
		}

		api.GET("/barbershops", barbershopHandler.List)
		api.GET("/plans/active", subscriptionHandler.ActivePlan)

		// Stripe assina o corpo; sem autenticação
		api.POST("/subscriptions/webhook", subscriptionHandler.Webhook)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		authAPI.Use(limiter.Middleware())
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
		}

		authRequired := middleware.AuthMiddleware(tokens, principalLoader)

		// ------------------------------
		// 👤 CLIENTE
		// ------------------------------
		api.POST("/barbershops/:id/bookings", limiter.Middleware(), authRequired, publicHandler.CreateBooking)

		me := api.Group("/me")
		me.Use(authRequired)
		{
			me.GET("", meHandler.GetMe)
			me.GET("/bookings", bookingHandler.ListMine)

			me.POST("/barber", barbershopHandler.SetAsBarber)
			me.DELETE("/barber", barbershopHandler.SetAsClient)

			// ------------------------------
			// ✂️ BARBEIRO
			// ------------------------------
			barber := me.Group("")
			barber.Use(middleware.RequireBarber())
			{
				// perfil e assinatura ficam acessíveis sem assinatura ativa
				barber.GET("/subscription", subscriptionHandler.Status)
				barber.GET("/subscription/await", subscriptionHandler.Await)
				barber.POST("/subscription/checkout", subscriptionHandler.Checkout)
				barber.POST("/subscription/cancel", subscriptionHandler.Cancel)

				barber.GET("/barbershop", barbershopHandler.GetMeBarbershop)
				barber.PATCH("/barbershop", barbershopHandler.UpdateMeBarbershop)

				dashboard := barber.Group("")
				dashboard.Use(middleware.RequireActiveSubscription(statusUC))
				{
					dashboard.GET("/barbershop/bookings", bookingHandler.ListBarbershop)

					dashboard.GET("/customers", bookingHandler.ListCustomers)

					dashboard.GET("/services", serviceHandler.List)
					dashboard.POST("/services", serviceHandler.Create)
					dashboard.PUT("/services/:id", serviceHandler.Update)
					dashboard.DELETE("/services/:id", serviceHandler.Delete)

					dashboard.GET("/hours", hoursHandler.Get)
					dashboard.PUT("/hours", hoursHandler.Update)

					dashboard.GET("/audit-logs", auditLogsHandler.List)
				}
			}
		}
	}
}
