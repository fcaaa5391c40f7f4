package server

import (
	"context"
	"net/http"
	"time"

	"ecospot/internal/auth"
	"ecospot/internal/config"
	"ecospot/internal/email"
	"ecospot/internal/reservation"
	"ecospot/internal/rewards"
	"ecospot/internal/spot"
	"ecospot/internal/user"
	"ecospot/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service, ledgerStore rewards.Store) *Server {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
	)

	userRepo := user.NewRepository(db)
	spotRepo := spot.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	reservationRepo := reservation.NewRepository(db)

	spotService := spot.NewService(spotRepo)
	reservationService := reservation.NewService(reservationRepo, spotRepo, walletRepo, userRepo, emailService)
	rewardsService := rewards.NewService(
		reservationService,
		walletRepo,
		rewards.NewLedger(ledgerStore),
		rewards.DefaultCatalog(),
		userRepo,
		emailService,
	)

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	spotHandler := spot.NewHandler(spotService)
	walletHandler := wallet.NewHandler(db)
	reservationHandler := reservation.NewHandler(reservationService)
	rewardsHandler := rewards.NewHandler(rewardsService)

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/spots", spotHandler.ListSpots)
		protected.GET("/spots/:spotID/windows", spotHandler.ListWindows)

		protected.POST("/windows/:windowID/reserve", reservationHandler.Reserve)
		protected.GET("/reservations", reservationHandler.GetMyReservations)
		protected.DELETE("/reservations/:id", reservationHandler.Cancel)

		protected.GET("/wallet", walletHandler.GetBalance)
		protected.POST("/wallet/topup", walletHandler.TopUp)
		protected.GET("/wallet/transactions", walletHandler.ListTransactions)

		protected.GET("/rewards/summary", rewardsHandler.GetSummary)
		protected.GET("/rewards/catalog", rewardsHandler.GetCatalog)
		protected.GET("/rewards/history", rewardsHandler.GetHistory)
		protected.POST("/rewards/convert", rewardsHandler.Convert)
		protected.POST("/rewards/redeem", rewardsHandler.Redeem)
	}

	adminMiddleware := auth.RequireRole("admin")
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/spots", spotHandler.CreateSpot)
		admin.GET("/spots", spotHandler.ListSpots)
		admin.POST("/spots/:spotID/windows", spotHandler.CreateWindow)
		admin.GET("/spots/:spotID/windows", spotHandler.ListWindows)
		admin.GET("/spots/:spotID/reservations", reservationHandler.GetBySpot)
		admin.GET("/windows/:windowID/reservations", reservationHandler.GetByWindow)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
