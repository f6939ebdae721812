package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/honkaku-tattoo/backend/internal/client"
	"github.com/honkaku-tattoo/backend/internal/config"
	"github.com/honkaku-tattoo/backend/internal/db"
	"github.com/honkaku-tattoo/backend/internal/handler"
	"github.com/honkaku-tattoo/backend/internal/ratelimit"
	"github.com/honkaku-tattoo/backend/internal/service"
	"github.com/honkaku-tattoo/backend/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	store := &db.Postgres{Pool: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatalf("ensure schema: %v", err)
	}

	authSvc := service.NewAuthService(store, cfg.Auth.CookieDomain)
	seeded, err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	if err != nil {
		logger.Fatalf("bootstrap admin: %v", err)
	}
	if seeded {
		logger.WithField("email", cfg.Auth.AdminEmail).Info("admin user synced")
	} else {
		logger.Info("admin bootstrap skipped: ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	var notifier service.BookingNotifier
	if cfg.Email.ResendAPIKey != "" {
		notifier = client.NewEmailClient(cfg.Email.ResendAPIKey, cfg.Email.From)
	}

	artistSvc := service.NewArtistService(store)
	blogSvc := service.NewBlogService(store)
	gallerySvc := service.NewGalleryService(store)
	bookingSvc := service.NewBookingService(store, notifier, logger)

	storageSvc, err := buildStorage(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	limiter := ratelimit.New()
	defer limiter.Stop()

	go sweepExpiredSessions(ctx, store, logger)

	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	registerRoutes(router, cfg, limiter, authSvc, artistSvc, blogSvc, gallerySvc, bookingSvc, storageSvc)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("shutdown: %v", err)
	}
}

func registerRoutes(
	router *gin.Engine,
	cfg config.Config,
	limiter *ratelimit.Limiter,
	authSvc *service.AuthService,
	artistSvc *service.ArtistService,
	blogSvc *service.BlogService,
	gallerySvc *service.GalleryService,
	bookingSvc *service.BookingService,
	storageSvc storage.Service,
) {
	router.Use(handler.CORSMiddleware(cfg.Server.AllowedOrigins))

	authHandler := handler.NewAuthHandler(authSvc)
	artistHandler := handler.NewArtistHandler(artistSvc)
	blogHandler := handler.NewBlogHandler(blogSvc)
	galleryHandler := handler.NewGalleryHandler(gallerySvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	uploadHandler := handler.NewUploadHandler(storageSvc)

	api := router.Group("/api/v1")
	{
		api.GET("/health", handler.Ping)

		api.GET("/artists", artistHandler.ListPublic)
		api.GET("/artists/:slug", artistHandler.GetBySlug)
		api.GET("/gallery", galleryHandler.List)
		api.GET("/blog", blogHandler.ListPublic)
		api.GET("/blog/:slug", blogHandler.GetBySlug)

		// The limiter runs before any auth or database work.
		api.POST("/auth/login",
			handler.RateLimit(limiter, "login", cfg.RateLimit.Login), authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.POST("/bookings",
			handler.RateLimit(limiter, "booking", cfg.RateLimit.Booking), bookingHandler.Submit)
		api.POST("/uploads/booking-reference",
			handler.RateLimit(limiter, "upload-api", cfg.RateLimit.Upload), uploadHandler.BookingReference)

		// Registered outside the admin group so the limiter runs before
		// the session lookup; each folder keeps its own budget.
		api.POST("/admin/uploads/:folder",
			handler.RateLimitUploadFolder(limiter, cfg.RateLimit.Upload),
			handler.RequireSession(authSvc),
			uploadHandler.AdminUpload)
	}

	admin := api.Group("", handler.RequireSession(authSvc))
	{
		admin.GET("/auth/me", authHandler.Me)

		admin.GET("/admin/artists", artistHandler.ListAdmin)
		admin.POST("/admin/artists", artistHandler.Create)
		admin.PUT("/admin/artists/:id", artistHandler.Update)
		admin.DELETE("/admin/artists/:id", artistHandler.Delete)

		admin.GET("/admin/blog", blogHandler.ListAdmin)
		admin.POST("/admin/blog", blogHandler.Create)
		admin.PUT("/admin/blog/:id", blogHandler.Update)
		admin.DELETE("/admin/blog/:id", blogHandler.Delete)

		admin.GET("/admin/gallery", galleryHandler.List)
		admin.POST("/admin/gallery", galleryHandler.Create)
		admin.PUT("/admin/gallery/:id", galleryHandler.Update)
		admin.DELETE("/admin/gallery/:id", galleryHandler.Delete)

		admin.GET("/admin/bookings", bookingHandler.ListAdmin)
		admin.PUT("/admin/bookings/:id/status", bookingHandler.UpdateStatus)
	}
}

func buildStorage(ctx context.Context, cfg config.StorageConfig, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Bucket == "" {
		logger.Warn("storage bucket not configured, image uploads disabled")
		return nil, nil
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = &cfg.Endpoint
			o.UsePathStyle = true
		}
	})

	return storage.NewS3Service(s3Client, cfg.Bucket, cfg.Region, cfg.PublicBaseURL), nil
}

// sweepExpiredSessions deletes inert session rows hourly. Lookups
// already filter on expiry, so a failed sweep is only logged.
func sweepExpiredSessions(ctx context.Context, store *db.Postgres, logger *logrus.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			removed, err := store.DeleteExpiredSessions(ctx, time.Now())
			if err != nil {
				logger.Warnf("session sweep: %v", err)
				continue
			}
			if removed > 0 {
				logger.WithField("removed", removed).Debug("expired sessions purged")
			}
		case <-ctx.Done():
			return
		}
	}
}
