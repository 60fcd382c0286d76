package model

import "time"

// Car status values.
const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
)

// Recognized fuel types.
const (
	FuelGasoline = "Gasoline"
	FuelDiesel   = "Diesel"
	FuelElectric = "Electric"
	FuelHybrid   = "Hybrid"
)

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// PreviewID marks a transient, unsaved car rendered from form state.
const PreviewID = "preview"

// Specs holds the optional technical data sheet of a car.
type Specs struct {
	TopSpeed      float64 `json:"topSpeed,omitempty" firestore:"topSpeed,omitempty"`
	Power         float64 `json:"power,omitempty" firestore:"power,omitempty"`
	Acceleration  float64 `json:"acceleration,omitempty" firestore:"acceleration,omitempty"`
	ExteriorColor string  `json:"exteriorColor,omitempty" firestore:"exteriorColor,omitempty"`
	InteriorColor string  `json:"interiorColor,omitempty" firestore:"interiorColor,omitempty"`
	Drivetrain    string  `json:"drivetrain,omitempty" firestore:"drivetrain,omitempty"`
	Engine        string  `json:"engine,omitempty" firestore:"engine,omitempty"`
	Seats         int     `json:"seats,omitempty" firestore:"seats,omitempty"`
}

// Car is the core document stored in the `cars` collection.
// Images is ordered; the element at index 0 is the hero/primary image.
type Car struct {
	ID                string    `json:"id,omitempty" firestore:"-"`
	Make              string    `json:"make" firestore:"make"`
	Model             string    `json:"model" firestore:"model"`
	Year              int       `json:"year" firestore:"year"`
	Price             float64   `json:"price" firestore:"price"`
	Mileage           int       `json:"mileage" firestore:"mileage"`
	FuelType          string    `json:"fuelType" firestore:"fuelType"`
	Transmission      string    `json:"transmission" firestore:"transmission"`
	Status            string    `json:"status" firestore:"status"`
	Category          string    `json:"category,omitempty" firestore:"category,omitempty"`
	Featured          bool      `json:"featured,omitempty" firestore:"featured"`
	ShowFinancedPrice bool      `json:"showFinancedPrice,omitempty" firestore:"showFinancedPrice,omitempty"`
	Images            []string  `json:"images" firestore:"images"`
	Description       string    `json:"description,omitempty" firestore:"description,omitempty"`
	Specs             Specs     `json:"specs,omitempty" firestore:"specs,omitempty"`
	ParallaxHeadline  string    `json:"parallaxHeadline,omitempty" firestore:"parallaxHeadline,omitempty"`
	ParallaxSubtext   string    `json:"parallaxSubtext,omitempty" firestore:"parallaxSubtext,omitempty"`
	CreatedAt         time.Time `json:"createdAt,omitempty" firestore:"createdAt,serverTimestamp"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,serverTimestamp"`
}

// UserProfile is one document in the `users` collection, keyed by auth UID.
type UserProfile struct {
	UID         string    `json:"uid" firestore:"uid"`
	Email       string    `json:"email" firestore:"email"`
	Role        string    `json:"role" firestore:"role"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty" firestore:"createdAt,serverTimestamp"`
}

// SeoSettings is the `seo` sub-section of the site settings document.
type SeoSettings struct {
	Title       string `json:"title,omitempty" firestore:"title,omitempty"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	Keywords    string `json:"keywords,omitempty" firestore:"keywords,omitempty"`
	OgImage     string `json:"ogImage,omitempty" firestore:"ogImage,omitempty"`
}

// HomepageSettings is the `homepage` sub-section: hero copy and section toggles.
type HomepageSettings struct {
	HeroTitle        string `json:"heroTitle,omitempty" firestore:"heroTitle,omitempty"`
	HeroSubtitle     string `json:"heroSubtitle,omitempty" firestore:"heroSubtitle,omitempty"`
	ShowFeatured     bool   `json:"showFeatured" firestore:"showFeatured"`
	ShowCategories   bool   `json:"showCategories" firestore:"showCategories"`
	ShowTestimonials bool   `json:"showTestimonials" firestore:"showTestimonials"`
}

// EmailSettings is the `emails` sub-section: contact form routing.
type EmailSettings struct {
	ContactRecipient string `json:"contactRecipient,omitempty" firestore:"contactRecipient,omitempty"`
	SalesRecipient   string `json:"salesRecipient,omitempty" firestore:"salesRecipient,omitempty"`
}

// SiteSettings is the singleton configuration document at settings/site.
type SiteSettings struct {
	Seo      SeoSettings      `json:"seo" firestore:"seo"`
	Homepage HomepageSettings `json:"homepage" firestore:"homepage"`
	Emails   EmailSettings    `json:"emails" firestore:"emails"`
}

// ContactMessage is one submission from the public contact form.
type ContactMessage struct {
	ID        string    `json:"id,omitempty" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Message   string    `json:"message" firestore:"message"`
	Recipient string    `json:"recipient,omitempty" firestore:"recipient,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty" firestore:"createdAt,serverTimestamp"`
}
