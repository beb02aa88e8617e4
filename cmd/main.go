package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/dtroode/lottery-server/internal/api/http/context"
	"github.com/dtroode/lottery-server/internal/api/http/router"
	httpServer "github.com/dtroode/lottery-server/internal/api/http/server"
	"github.com/dtroode/lottery-server/internal/audit"
	"github.com/dtroode/lottery-server/internal/config"
	"github.com/dtroode/lottery-server/internal/cryptox"
	"github.com/dtroode/lottery-server/internal/logger"
	"github.com/dtroode/lottery-server/internal/metrics"
	"github.com/dtroode/lottery-server/internal/model"
	"github.com/dtroode/lottery-server/internal/repository/memory"
	"github.com/dtroode/lottery-server/internal/repository/postgres"
	"github.com/dtroode/lottery-server/internal/server"
	"github.com/dtroode/lottery-server/internal/service"
	storage "github.com/dtroode/lottery-server/internal/storage/minio"
	redisstore "github.com/dtroode/lottery-server/internal/storage/redis"
	"github.com/dtroode/lottery-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const (
	shutdownTimeout = 10 * time.Second
	tcpKeepAlive    = 30 * time.Second
)

// stores groups the persistence backends selected by configuration.
type stores struct {
	users       model.UserStore
	draws       model.DrawStore
	enrollments model.EnrollmentStore
	events      model.SecurityEventStore
	tx          model.Transactor
	health      []router.HealthCheck
	close       func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	securityLog := logger.NewRotating(logger.RotatingFile{
		Path:       cfg.Audit.LogFile,
		MaxSizeMB:  cfg.Audit.MaxSizeMB,
		MaxBackups: cfg.Audit.MaxBackups,
		MaxAgeDays: cfg.Audit.MaxAgeDays,
		Compress:   cfg.Audit.Compress,
	})
	defer securityLog.Close()

	logger := logger.New(cfg.LogLevel)
	gin.SetMode(cfg.HTTP.GinMode)

	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.close()

	suite, err := cryptox.New(
		cryptox.WithBcryptCost(cfg.Crypto.BcryptCost),
		cryptox.WithRSABits(cfg.Crypto.RSABits),
		cryptox.WithIssuer(cfg.Crypto.TOTPIssuer),
	)
	if err != nil {
		logger.Fatal("failed to initialize crypto", "error", err)
	}

	lockouts, lockoutHealth, err := openLockoutStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize lockout store", "error", err)
	}
	if lockoutHealth != nil {
		st.health = append(st.health, lockoutHealth)
	}

	archive, err := openArchiveStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize archive storage", "error", err)
	}

	m := metrics.New()
	publisher := audit.NewPublisher(logger, audit.NewFileSink(securityLog), st.events)
	access := service.NewAccess(publisher, logger)

	authService := service.NewAuth(st.users, st.enrollments, lockouts, publisher, suite, token.NewJWT(cfg.JWT.Secret), m, logger, service.AuthConfig{
		MaxAttempts:      cfg.Auth.MaxAttempts,
		LockoutThreshold: cfg.Auth.LockoutThreshold,
	})
	lotteryService := service.NewLottery(st.draws, st.users, st.tx, suite, suite, access, m, logger)
	adminService := service.NewAdmin(st.users, st.events, archive, access, logger)

	if cfg.Admin.Password != "" {
		bootstrapAdmin(ctx, logger, authService, cfg.Admin)
	}

	r := router.New(authService, lotteryService, adminService, m.Handler(), httpctx.NewManager(), logger, router.Config{
		SessionSecret:  cfg.HTTP.SessionSecret,
		SessionMaxAge:  cfg.HTTP.SessionMaxAge,
		SecureCookies:  cfg.HTTP.SecureCookies,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, st.health...)

	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	listener := server.NewTCPListener(tcpKeepAlive)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(listener); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Database.Driver {
	case "memory":
		db := memory.NewDB()
		return &stores{
			users:       memory.NewUserStore(db),
			draws:       memory.NewDrawStore(db),
			enrollments: memory.NewEnrollmentStore(db),
			events:      memory.NewSecurityEventStore(db),
			tx:          db,
			close:       func() error { return nil },
		}, nil
	case "postgres":
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN, postgres.WithLockTimeout(cfg.Database.LockTimeout))
		if err != nil {
			return nil, err
		}
		return &stores{
			users:       postgres.NewUserRepository(db),
			draws:       postgres.NewDrawRepository(db),
			enrollments: postgres.NewEnrollmentRepository(db),
			events:      postgres.NewSecurityEventRepository(db),
			tx:          db,
			health:      []router.HealthCheck{db.Ping},
			close:       db.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func openLockoutStore(ctx context.Context, cfg *config.Config) (model.LockoutStore, router.HealthCheck, error) {
	if !cfg.Redis.Enabled {
		return memory.NewLockoutStore(cfg.Auth.LockoutWindow), nil, nil
	}

	client, err := redisstore.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	return redisstore.NewLockoutStore(client.Client, cfg.Auth.LockoutWindow), client.Health, nil
}

// openArchiveStorage returns nil when object storage is disabled.
func openArchiveStorage(ctx context.Context, cfg *config.Config) (model.ArchiveStorage, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
}

func bootstrapAdmin(ctx context.Context, logger *logger.Logger, authService *service.Auth, admin config.Admin) {
	created, reg, err := authService.EnsureAdmin(ctx, model.RegistrationParams{
		Email:     admin.Email,
		Password:  admin.Password,
		Firstname: admin.Firstname,
		Lastname:  admin.Lastname,
		Phone:     admin.Phone,
		DOB:       admin.DOB,
		Postcode:  admin.Postcode,
	})
	if err != nil {
		logger.Fatal("failed to bootstrap admin", "error", err)
	}
	if created {
		logger.Info("bootstrap admin created, open /setup-2fa?token=<enrollment_token> once to enroll 2FA",
			"email", reg.User.Email,
			"enrollment_token", reg.EnrollmentToken)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
