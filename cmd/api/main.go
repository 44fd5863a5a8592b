package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"ethiowork-backend/internal/auth"
	"ethiowork-backend/internal/blob"
	"ethiowork-backend/internal/database"
	"ethiowork-backend/internal/mailer"
	"ethiowork-backend/internal/notify"
	"ethiowork-backend/internal/scheduler"
	"ethiowork-backend/internal/server"
	"ethiowork-backend/internal/service"
	"ethiowork-backend/internal/store"
	"ethiowork-backend/internal/store/gormstore"
	"ethiowork-backend/internal/store/memstore"
)

func main() {
	log := logrus.New()
	if os.Getenv("GIN_MODE") == "release" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	var (
		st       store.Store
		identity store.IdentityStore
		db       *database.DBInstance
	)
	switch os.Getenv("STORE_BACKEND") {
	case "memory":
		ms := memstore.New()
		st, identity = ms, ms
		log.Info("using in-memory store backend")
	default:
		var err error
		db, err = database.NewDBInstance(database.ConfigFromEnv())
		if err != nil {
			log.Fatalf("Database failed to initialize: %s", err)
		}
		gs := gormstore.New(db.DB, log)
		st, identity = gs, gs
	}

	dispatcher := notify.NewDispatcher(st, log)
	svc := service.New(st, dispatcher, log)

	var revocation auth.JwtRevocationStore
	if url := os.Getenv("REDIS_URL"); url != "" {
		opts, err := redis.ParseURL(url)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %s", err)
		}
		revocation = auth.NewRedisRevocationStore(redis.NewClient(opts))
	} else {
		revocation = auth.NewInMemoryRevocationStore()
	}

	var m mailer.Mailer
	if smtp, err := mailer.NewSMTPMailerFromEnv(); err == nil {
		m = smtp
	} else {
		log.WithField("reason", err.Error()).Warn("smtp not configured, reset mails go to the log")
		m = &mailer.LogMailer{Log: log}
	}

	var storage blob.Storage
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		gcs, err := blob.NewGCSStorage(context.Background(), bucket, 0)
		if err != nil {
			log.Fatalf("Cloud storage failed to initialize: %s", err)
		}
		storage = gcs
	} else {
		log.Warn("GCS_BUCKET not set, uploads are kept in memory")
		storage = blob.NewMemoryStorage(0)
	}

	srv := &server.MyServer{
		DB:         db,
		Service:    svc,
		Identity:   identity,
		Storage:    storage,
		Revocation: revocation,
		Mailer:     m,
		Log:        log,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweepMinutes, _ := strconv.Atoi(os.Getenv("EXPIRY_SWEEP_MINUTES"))
	if sweepMinutes <= 0 {
		sweepMinutes = 60
	}
	sched := scheduler.New(svc, log, sweepMinutes)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Scheduler failed to start: %s", err)
	}

	httpServer := srv.NewHTTPServer()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Info("shutting down")
		sched.Stop()
		if err := httpServer.Shutdown(context.Background()); err != nil {
			log.WithField("error", err.Error()).Error("server shutdown failed")
		}
		if db != nil {
			if err := db.Close(); err != nil {
				log.WithField("error", err.Error()).Error("database close failed")
			}
		}
	}()

	log.WithField("addr", httpServer.Addr).Info("server listening")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %s", err)
	}
}
