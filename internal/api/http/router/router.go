package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/dtroode/lottery-server/internal/api/http/handler"
	"github.com/dtroode/lottery-server/internal/api/http/middleware"
	"github.com/dtroode/lottery-server/internal/api/http/session"
	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/model"
)

// Config contains session cookie and CORS parameters.
type Config struct {
	SessionSecret  string
	SessionMaxAge  int
	SecureCookies  bool
	AllowedOrigins []string
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Router wires handlers and middleware into a gin engine.
type Router struct {
	authService    handler.AuthService
	lotteryService handler.LotteryService
	adminService   handler.AdminService
	metrics        http.Handler
	health         []HealthCheck
	contextManager model.ContextManager
	logger         *logger.Logger
	cfg            Config
}

// New creates a new Router. A nil metrics handler disables GET /metrics.
func New(
	authService handler.AuthService,
	lotteryService handler.LotteryService,
	adminService handler.AdminService,
	metrics http.Handler,
	contextManager model.ContextManager,
	logger *logger.Logger,
	cfg Config,
	health ...HealthCheck,
) *Router {
	return &Router{
		authService:    authService,
		lotteryService: lotteryService,
		adminService:   adminService,
		metrics:        metrics,
		health:         health,
		contextManager: contextManager,
		logger:         logger,
		cfg:            cfg,
	}
}

// Register builds the engine with every route and middleware.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.NewLogging(r.logger).Handle, middleware.Origin)

	if len(r.cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = r.cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		corsConfig.MaxAge = 12 * time.Hour
		engine.Use(cors.New(corsConfig))
	}

	store := cookie.NewStore([]byte(r.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   r.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   r.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	engine.Use(sessions.Sessions(session.CookieName, store))

	engine.GET("/healthz", r.healthz)
	if r.metrics != nil {
		engine.GET("/metrics", gin.WrapH(r.metrics))
	}

	authenticate := middleware.NewAuthenticate(r.authService, r.contextManager, r.logger)
	r.registerAuthRoutes(engine, authenticate)
	r.registerLotteryRoutes(engine, authenticate)
	r.registerAdminRoutes(engine, authenticate)

	return engine
}

func (r *Router) registerAuthRoutes(engine *gin.Engine, authenticate *middleware.Authenticate) {
	h := handler.NewAuth(r.authService, r.logger)

	engine.POST("/register", authenticate.Optional, h.Register)
	engine.GET("/setup-2fa", h.Setup2FA)
	engine.POST("/login", h.Login)
	engine.POST("/reset", h.Reset)
	engine.POST("/logout", authenticate.Required, h.Logout)

	account := engine.Group("/account", authenticate.Required)
	account.GET("", h.Account)
	account.POST("/password", h.ChangePassword)
}

func (r *Router) registerLotteryRoutes(engine *gin.Engine, authenticate *middleware.Authenticate) {
	h := handler.NewLottery(r.lotteryService, r.logger)

	lottery := engine.Group("/lottery", authenticate.Required)
	lottery.POST("/draws", h.SubmitDraw)
	lottery.GET("/draws", h.PlayableDraws)
	lottery.GET("/results", h.PlayedDraws)
	lottery.DELETE("/results", h.ClearPlayed)

	rounds := engine.Group("/admin/rounds", authenticate.Required)
	rounds.POST("", h.OpenRound)
	rounds.GET("/current", h.RevealMaster)
	rounds.POST("/current/close", h.CloseRound)
}

func (r *Router) registerAdminRoutes(engine *gin.Engine, authenticate *middleware.Authenticate) {
	h := handler.NewAdmin(r.adminService, r.logger)

	admin := engine.Group("/admin", authenticate.Required)
	admin.GET("/users", h.Participants)
	admin.GET("/activity", h.Activity)
	admin.GET("/security-events", h.SecurityEvents)
	admin.POST("/security-events/archive", h.ArchiveSecurityEvents)
	admin.GET("/security-events/archives", h.SecurityArchives)
}

func (r *Router) healthz(c *gin.Context) {
	for _, check := range r.health {
		if err := check(c.Request.Context()); err != nil {
			r.logger.Error("router: health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
