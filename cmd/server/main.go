package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apexmotors/dealership-api/internal/business/accounts"
	"github.com/apexmotors/dealership-api/internal/business/listing"
	"github.com/apexmotors/dealership-api/internal/business/sitesettings"
	"github.com/apexmotors/dealership-api/internal/platform/config"
	"github.com/apexmotors/dealership-api/internal/platform/firebase"
	apirouter "github.com/apexmotors/dealership-api/internal/platform/http"
	"github.com/apexmotors/dealership-api/internal/platform/logging"
	"github.com/apexmotors/dealership-api/internal/platform/metrics"
	"github.com/apexmotors/dealership-api/internal/platform/storage"
	"github.com/apexmotors/dealership-api/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logging.Sync()

	gin.SetMode(cfg.GinMode)

	clients, credsSource, err := firebase.New(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase init: %v", err)
	}
	defer clients.Close()

	deps := apirouter.Deps{
		Metrics: metrics.NewRegistry(),
		Config:  cfg,
	}

	// Services stay constructed either way; without Firebase they run in
	// not-configured mode and the public catalog serves sample data.
	var guard *listing.CapacityGuard
	var listingSvc *listing.Service
	var accountsSvc *accounts.Service
	var settingsSvc *sitesettings.Service

	if clients != nil {
		if err := firebase.Ping(ctx, clients.Firestore); err != nil {
			log.Fatalf("firestore ping: %v", err)
		}
		log.Printf("connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)

		carRepo := repository.NewCarRepository(clients.Firestore)
		userRepo := repository.NewUserRepository(clients.Firestore)
		settingsRepo := repository.NewSettingsRepository(clients.Firestore)
		contactRepo := repository.NewContactRepository(clients.Firestore)

		var uploader listing.Uploader
		if clients.Bucket != nil {
			uploader = storage.NewBucketUploader(clients.Bucket, clients.BucketName)
		} else {
			log.Printf("no STORAGE_BUCKET configured, image uploads disabled")
		}

		guard = listing.NewCapacityGuard(carRepo, cfg.FeaturedLimit)
		listingSvc = listing.NewService(carRepo, uploader, guard)
		accountsSvc = accounts.NewService(userRepo, clients.Auth)
		settingsSvc = sitesettings.NewService(settingsRepo)

		deps.Cars = carRepo
		deps.Contacts = contactRepo
		deps.Authn = clients.Auth
	} else {
		log.Printf("no FIREBASE_PROJECT_ID set, serving sample data in read-only mode")
		guard = listing.NewCapacityGuard(nil, cfg.FeaturedLimit)
		listingSvc = listing.NewService(nil, nil, guard)
		accountsSvc = accounts.NewService(nil, nil)
		settingsSvc = sitesettings.NewService(nil)
	}

	if err := settingsSvc.Start(ctx); err != nil {
		log.Fatalf("settings init: %v", err)
	}

	deps.Listing = listingSvc
	deps.Accounts = accountsSvc
	deps.Settings = settingsSvc

	router := apirouter.NewRouter(deps)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on :%s", cfg.Port)

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	log.Println("server exited")
}
