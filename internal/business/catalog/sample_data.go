package catalog

import (
	"time"

	"github.com/apexmotors/dealership-api/pkg/model"
)

var sampleSeededAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// SampleCars returns the bundled fallback catalog served on public read
// paths when no remote store is configured.
func SampleCars() []model.Car {
	return []model.Car{
		{
			ID: "sample-porsche-911", Make: "Porsche", Model: "911 Carrera S", Year: 2023,
			Price: 189500, Mileage: 4200, FuelType: model.FuelGasoline, Transmission: "8-speed PDK",
			Status: model.StatusAvailable, Category: "luxury", Featured: true,
			Images:      []string{"/samples/porsche-911-1.jpg", "/samples/porsche-911-2.jpg"},
			Description: "One-owner Carrera S with sport chrono package and full service history.",
			Specs: model.Specs{
				TopSpeed: 308, Power: 450, Acceleration: 3.5,
				ExteriorColor: "GT Silver", InteriorColor: "Black", Drivetrain: "RWD",
				Engine: "3.0L twin-turbo flat-six", Seats: 4,
			},
			CreatedAt: sampleSeededAt, UpdatedAt: sampleSeededAt,
		},
		{
			ID: "sample-audi-rs6", Make: "Audi", Model: "RS6 Avant", Year: 2022,
			Price: 132000, Mileage: 18500, FuelType: model.FuelGasoline, Transmission: "8-speed tiptronic",
			Status: model.StatusAvailable, Category: "premium", Featured: true,
			Images:      []string{"/samples/audi-rs6-1.jpg"},
			Description: "Nardo grey RS6 with dynamic package plus and ceramic brakes.",
			Specs: model.Specs{
				TopSpeed: 305, Power: 600, Acceleration: 3.6,
				ExteriorColor: "Nardo Grey", InteriorColor: "Black/Red", Drivetrain: "AWD",
				Engine: "4.0L twin-turbo V8", Seats: 5,
			},
			CreatedAt: sampleSeededAt, UpdatedAt: sampleSeededAt,
		},
		{
			ID: "sample-tesla-model-s", Make: "Tesla", Model: "Model S Plaid", Year: 2023,
			Price: 109900, Mileage: 9800, FuelType: model.FuelElectric, Transmission: "Single-speed",
			Status: model.StatusReserved, Category: "premium",
			Images:      []string{"/samples/tesla-s-1.jpg"},
			Description: "Plaid with 21-inch arachnid wheels and full self-driving package.",
			Specs: model.Specs{
				TopSpeed: 322, Power: 1020, Acceleration: 2.1,
				ExteriorColor: "Midnight Silver", InteriorColor: "Cream", Drivetrain: "AWD",
				Engine: "Tri-motor electric", Seats: 5,
			},
			CreatedAt: sampleSeededAt, UpdatedAt: sampleSeededAt,
		},
		{
			ID: "sample-range-rover", Make: "Land Rover", Model: "Range Rover Autobiography", Year: 2023,
			Price: 165000, Mileage: 12000, FuelType: model.FuelHybrid, Transmission: "8-speed automatic",
			Status: model.StatusAvailable, Category: "suv", Featured: true,
			Images:      []string{"/samples/range-rover-1.jpg", "/samples/range-rover-2.jpg"},
			Description: "Long-wheelbase Autobiography with executive class rear seating.",
			Specs: model.Specs{
				TopSpeed: 242, Power: 510, Acceleration: 5.5,
				ExteriorColor: "Santorini Black", InteriorColor: "Ivory", Drivetrain: "AWD",
				Engine: "3.0L inline-six PHEV", Seats: 5,
			},
			CreatedAt: sampleSeededAt, UpdatedAt: sampleSeededAt,
		},
		{
			ID: "sample-bmw-m5", Make: "BMW", Model: "M5 Competition", Year: 2021,
			Price: 98500, Mileage: 27400, FuelType: model.FuelGasoline, Transmission: "8-speed M Steptronic",
			Status: model.StatusSold, Category: "premium",
			Images:      []string{"/samples/bmw-m5-1.jpg"},
			Description: "Competition package, carbon roof, recently serviced at main dealer.",
			Specs: model.Specs{
				TopSpeed: 305, Power: 625, Acceleration: 3.3,
				ExteriorColor: "Marina Bay Blue", InteriorColor: "Silverstone", Drivetrain: "AWD",
				Engine: "4.4L twin-turbo V8", Seats: 5,
			},
			CreatedAt: sampleSeededAt, UpdatedAt: sampleSeededAt,
		},
		{
			ID: "sample-mercedes-g63", Make: "Mercedes-Benz", Model: "G 63 AMG", Year: 2022,
			Price: 215000, Mileage: 15600, FuelType: model.FuelGasoline, Transmission: "9-speed automatic",
			Status: model.StatusAvailable, Category: "suv",
			Images:      []string{"/samples/mercedes-g63-1.jpg"},
			Description: "G 63 with night package and 22-inch cross-spoke forged wheels.",
			Specs: model.Specs{
				TopSpeed: 240, Power: 585, Acceleration: 4.5,
				ExteriorColor: "Obsidian Black", InteriorColor: "Macchiato", Drivetrain: "AWD",
				Engine: "4.0L twin-turbo V8", Seats: 5,
			},
			CreatedAt: sampleSeededAt, UpdatedAt: sampleSeededAt,
		},
	}
}

// DefaultSettings is the one-time seed for the settings/site document.
func DefaultSettings() model.SiteSettings {
	return model.SiteSettings{
		Seo: model.SeoSettings{
			Title:       "Apex Motors | Luxury & Performance Cars",
			Description: "Hand-picked luxury, premium and SUV vehicles with full history.",
			Keywords:    "luxury cars, premium cars, suv, dealership",
		},
		Homepage: model.HomepageSettings{
			HeroTitle:        "Drive something extraordinary",
			HeroSubtitle:     "Curated performance and luxury vehicles, ready today.",
			ShowFeatured:     true,
			ShowCategories:   true,
			ShowTestimonials: true,
		},
		Emails: model.EmailSettings{
			ContactRecipient: "info@apexmotors.example",
			SalesRecipient:   "sales@apexmotors.example",
		},
	}
}
