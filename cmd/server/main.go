package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"Sightings/internal/api/middleware"
	"Sightings/internal/api/routes"
	"Sightings/internal/auth"
	"Sightings/internal/blobstore/gcs"
	"Sightings/internal/blobstore/local"
	"Sightings/internal/config"
	"Sightings/internal/core/blobs"
	"Sightings/internal/core/comments"
	"Sightings/internal/core/moderation"
	"Sightings/internal/core/posts"
	"Sightings/internal/core/users"
	firestoreRepo "Sightings/internal/db/firestore"
	"Sightings/internal/db/memory"
	"Sightings/internal/db/migrations"
	mongoRepo "Sightings/internal/db/mongo"
	postgresRepo "Sightings/internal/db/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	blobStore, images, err := openBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return err
	}
	authMiddleware := middleware.NewAuthMiddleware(verifier)

	// Initialize services
	postService := posts.NewPostService(repos.posts, blobStore, posts.WithOrphanCleanup(cfg.CleanupOrphanedUploads))
	commentService := comments.NewCommentService(repos.comments)
	moderationService := moderation.NewModerationService(repos.moderation)
	sessions := moderation.NewSessions(repos.profiles, slog.Default())

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(routes.CORSMiddleware(cfg.CORSAllowedOrigins))

	// Rate limiting per client IP
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	r.Use(rateLimiter.Middleware)

	routes.RegisterHealthRoutes(r)
	routes.RegisterPostRoutes(r, postService, authMiddleware)
	routes.RegisterCommentRoutes(r, commentService, authMiddleware)
	routes.RegisterModerationRoutes(r, moderationService, sessions, authMiddleware)
	if images != nil {
		routes.RegisterImageRoutes(r, images)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("sightings server starting",
			"port", cfg.Port,
			"store", cfg.StoreBackend,
			"blobs", cfg.BlobBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type repositories struct {
	posts      posts.Repository
	comments   comments.Repository
	moderation moderation.Repository
	profiles   users.ProfileRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.StoreBackend {
	case config.StoreFirestore:
		client, err := firestoreRepo.NewClient(ctx, cfg.FirestoreProjectID, cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, err
		}
		slog.Info("connected to firestore", "project", cfg.FirestoreProjectID)
		return &repositories{
			posts:      firestoreRepo.NewPostRepository(client),
			comments:   firestoreRepo.NewCommentRepository(client),
			moderation: firestoreRepo.NewModerationRepository(client),
			profiles:   firestoreRepo.NewProfileRepository(client),
			close:      func() { _ = client.Close() },
		}, nil

	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := migrations.Up(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		slog.Info("connected to postgres, migrations completed")
		return &repositories{
			posts:      postgresRepo.NewPostRepository(db),
			comments:   postgresRepo.NewCommentRepository(db),
			moderation: postgresRepo.NewModerationRepository(db),
			profiles:   postgresRepo.NewProfileRepository(db),
			close:      func() { _ = db.Close() },
		}, nil

	case config.StoreMongo:
		client, db, err := mongoRepo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		slog.Info("connected to mongo", "db", cfg.MongoDB)
		return &repositories{
			posts:      mongoRepo.NewPostRepository(db),
			comments:   mongoRepo.NewCommentRepository(db),
			moderation: mongoRepo.NewModerationRepository(db),
			profiles:   mongoRepo.NewProfileRepository(db),
			close:      func() { _ = client.Disconnect(context.Background()) },
		}, nil

	default:
		slog.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			posts:      store.Posts(),
			comments:   store.Comments(),
			moderation: store.Moderation(),
			profiles:   store.Profiles(),
			close:      func() {},
		}, nil
	}
}

// openBlobStore returns the image store and, for the local backend, the handler serving it
func openBlobStore(ctx context.Context, cfg *config.Config) (blobs.Store, http.Handler, error) {
	if cfg.BlobBackend == config.BlobGCS {
		client, err := gcs.NewClient(ctx, cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return gcs.NewStore(client, cfg.GCSBucket, gcs.URLMode(cfg.GCSURLMode)), nil, nil
	}

	store, err := local.NewStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Handler(), nil
}

// newVerifier prefers the identity provider's JWKS when both auth modes are configured
func newVerifier(ctx context.Context, cfg *config.Config) (auth.Verifier, error) {
	if cfg.AuthJWKSURL != "" {
		return auth.NewJWKSVerifier(ctx, cfg.AuthJWKSURL, cfg.AuthIssuer, cfg.AuthAudience)
	}
	return auth.NewHMACVerifier(cfg.AuthHMACSecret, cfg.AuthIssuer, cfg.AuthAudience)
}
