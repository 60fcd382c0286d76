package main

import (
	"context"
	"fmt"
	"log"

	"github.com/apexmotors/dealership-api/internal/business/catalog"
	"github.com/apexmotors/dealership-api/internal/platform/config"
	"github.com/apexmotors/dealership-api/internal/platform/firebase"
	"github.com/apexmotors/dealership-api/internal/repository"
	"github.com/apexmotors/dealership-api/pkg/model"
	"github.com/apexmotors/dealership-api/pkg/util"
	"github.com/joho/godotenv"
)

// Seeds an empty Firestore project with the bundled sample catalog and the
// default site settings, so a fresh deployment has something to show.
func main() {
	ctx := context.Background()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	clients, credsSource, err := firebase.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Firebase clients: %v", err)
	}
	if clients == nil {
		log.Fatal("FIREBASE_PROJECT_ID is not set, nothing to seed")
	}
	defer clients.Close()

	log.Printf("Connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)

	carRepo := repository.NewCarRepository(clients.Firestore)
	settingsRepo := repository.NewSettingsRepository(clients.Firestore)

	existing, err := carRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list cars: %v", err)
	}

	seeded := 0
	skipped := 0
	for _, car := range catalog.SampleCars() {
		if hasSlug(existing, util.CarSlug(car.Make, car.Model)) {
			skipped++
			continue
		}
		car.ID = ""
		if _, err := carRepo.Create(ctx, car); err != nil {
			log.Fatalf("Failed to create %s %s: %v", car.Make, car.Model, err)
		}
		seeded++
	}
	fmt.Printf("✓ Cars seeded: %d created, %d already present\n", seeded, skipped)

	if err := settingsRepo.Seed(ctx, catalog.DefaultSettings()); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}
	fmt.Println("✓ Site settings seeded (existing document left untouched)")
}

func hasSlug(cars []model.Car, slug string) bool {
	for _, c := range cars {
		if util.CarSlug(c.Make, c.Model) == slug {
			return true
		}
	}
	return false
}
