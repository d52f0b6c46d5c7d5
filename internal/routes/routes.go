package routes

import (
	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/ciadabeleza/salon-scheduler/internal/audit"
	"github.com/ciadabeleza/salon-scheduler/internal/config"
	"github.com/ciadabeleza/salon-scheduler/internal/domain/role"
	"github.com/ciadabeleza/salon-scheduler/internal/feed"
	"github.com/ciadabeleza/salon-scheduler/internal/handlers"
	"github.com/ciadabeleza/salon-scheduler/internal/infra/repository"
	"github.com/ciadabeleza/salon-scheduler/internal/middleware"
	"github.com/ciadabeleza/salon-scheduler/internal/notification"
	"github.com/ciadabeleza/salon-scheduler/internal/observability/metrics"
	"github.com/ciadabeleza/salon-scheduler/internal/timezone"
	ucAppointment "github.com/ciadabeleza/salon-scheduler/internal/usecase/appointment"
)

// RegisterRoutes monta todo o grafo da aplicação e devolve o notifier, que o
// main roda em sua própria goroutine.
func RegisterRoutes(r *gin.Engine, database *gorm.DB, cfg *config.Config) *notification.Notifier {

	// ====== Observabilidade ======
	registry := prometheus.NewRegistry()
	feedMetrics := metrics.NewFeedMetrics(registry)
	pushMetrics := metrics.NewPushMetrics(registry)

	// ====== Infra ======
	repo := repository.NewAppointmentGormRepository(database)
	hub := feed.New(repo.ListAll, feedMetrics)
	repo.SetPublisher(hub)

	auditDispatcher := audit.NewDispatcher(audit.New(database))

	var pushOptions *webpush.Options
	if cfg.VAPIDPrivateKey != "" {
		pushOptions = &webpush.Options{
			Subscriber:      cfg.VAPIDSubject,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             60,
		}
	}
	notifier := notification.NewNotifier(
		database,
		repo,
		hub,
		pushOptions,
		timezone.Location(cfg.Timezone),
		pushMetrics,
	)

	// ====== Use cases ======
	createUC := ucAppointment.NewCreateAppointment(repo, auditDispatcher, cfg.Timezone)
	acceptUC := ucAppointment.NewAcceptAppointment(repo, auditDispatcher, cfg.Timezone)
	startUC := ucAppointment.NewStartAppointment(repo, auditDispatcher, cfg.Timezone)
	finishUC := ucAppointment.NewFinishAppointment(repo, auditDispatcher, cfg.Timezone)
	cancelUC := ucAppointment.NewCancelAppointment(repo, auditDispatcher, cfg.Timezone)
	deleteUC := ucAppointment.NewDeleteAppointment(repo, auditDispatcher)
	listUC := ucAppointment.NewListUpcoming(repo, cfg.Timezone)
	dashboardUC := ucAppointment.NewDashboard(repo, cfg.Timezone)

	// ====== Handlers ======
	throttle := handlers.NewLoginThrottle(cfg.RedisURL)
	authHandler := handlers.NewAuthHandler(database, cfg, throttle)
	meHandler := handlers.NewMeHandler(database)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC, acceptUC, startUC, finishUC, cancelUC,
		deleteUC, listUC, dashboardUC,
	)
	publicHandler := handlers.NewPublicHandler(database, createUC)
	clientHandler := handlers.NewClientHandler(database, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(database, auditDispatcher)
	professionalHandler := handlers.NewProfessionalHandler(database, auditDispatcher)
	notificationHandler := handlers.NewNotificationHandler(database, cfg.Timezone)
	subscriptionHandler := handlers.NewSubscriptionHandler(database, cfg)
	feedHandler := handlers.NewFeedHandler(hub)

	// ====== Rotas abertas ======
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/login-profissional", authHandler.LoginProfessional)
	}

	// Formulário público de agendamento, limitado por IP.
	public := r.Group("/public", middleware.RateLimiter(rate.Limit(1), 5))
	{
		public.GET("/servicos", publicHandler.ListServices)
		public.GET("/profissionais", publicHandler.ListProfessionals)
		public.POST("/agendamentos", publicHandler.Book)
	}

	// ====== Rotas autenticadas ======
	api := r.Group("/", middleware.AuthMiddleware(cfg))
	{
		api.GET("/me", meHandler.Me)
		api.GET("/feed", feedHandler.Stream)

		push := api.Group("/push")
		{
			push.GET("/chave-publica", subscriptionHandler.VAPIDKey)
			push.POST("/inscricao", subscriptionHandler.Register)
			push.DELETE("/inscricao", subscriptionHandler.Unregister)
		}

		notif := api.Group("/notificacoes")
		{
			notif.GET("", notificationHandler.List)
			notif.GET("/nao-lidas", notificationHandler.UnreadCount)
			notif.PATCH("/:id/lida", notificationHandler.MarkRead)
			notif.POST("/lidas", notificationHandler.MarkAllRead)
		}

		// Agenda do profissional.
		professional := api.Group("/", middleware.RequireRole(role.Professional))
		{
			professional.GET("/agenda", appointmentHandler.ListUpcoming)
		}

		// Transições de status: profissional na própria agenda, admin em
		// qualquer uma.
		transitions := api.Group("/agendamentos",
			middleware.RequireRole(role.Professional, role.Admin))
		{
			transitions.PATCH("/:id/aceitar", appointmentHandler.Accept)
			transitions.PATCH("/:id/iniciar", appointmentHandler.Start)
			transitions.PATCH("/:id/finalizar", appointmentHandler.Finish)
			transitions.PATCH("/:id/cancelar", appointmentHandler.Cancel)
		}

		// Recepção e admin.
		desk := api.Group("/", middleware.RequireRole(role.Reception, role.Admin))
		{
			desk.POST("/agendamentos", appointmentHandler.Create)
			desk.GET("/dashboard", appointmentHandler.Dashboard)

			desk.GET("/clientes", clientHandler.List)
			desk.POST("/clientes", clientHandler.Create)
			desk.PUT("/clientes/:id", clientHandler.Update)
			desk.DELETE("/clientes/:id", clientHandler.Delete)
		}

		// Somente admin.
		admin := api.Group("/", middleware.RequireRole(role.Admin))
		{
			admin.DELETE("/agendamentos/:id", appointmentHandler.Delete)

			admin.GET("/servicos", serviceHandler.List)
			admin.POST("/servicos", serviceHandler.Create)
			admin.PUT("/servicos/:id", serviceHandler.Update)
			admin.DELETE("/servicos/:id", serviceHandler.Delete)

			admin.GET("/profissionais", professionalHandler.List)
			admin.POST("/profissionais", professionalHandler.Create)
			admin.PUT("/profissionais/:id", professionalHandler.Update)
			admin.PATCH("/profissionais/:id/desativar", professionalHandler.Deactivate)
		}
	}

	return notifier
}
