package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/apexmotors/dealership-api/internal/business/accounts"
	"github.com/apexmotors/dealership-api/internal/business/listing"
	"github.com/apexmotors/dealership-api/internal/business/sitesettings"
	"github.com/apexmotors/dealership-api/internal/platform/config"
	"github.com/apexmotors/dealership-api/internal/platform/metrics"
	"github.com/apexmotors/dealership-api/pkg/model"
	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CarReader is the read-only catalog surface of the car repository. Nil when
// no remote store is configured; public handlers then serve sample data.
type CarReader interface {
	List(ctx context.Context) ([]model.Car, error)
	GetBySlug(ctx context.Context, slug string) (model.Car, error)
	ListFeatured(ctx context.Context) ([]model.Car, error)
}

// ContactStore persists contact form submissions.
type ContactStore interface {
	Add(ctx context.Context, msg model.ContactMessage) (string, error)
}

// TokenVerifier checks a Firebase ID token. *fbauth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

var _ TokenVerifier = (*fbauth.Client)(nil)

// Deps bundles everything the router needs.
type Deps struct {
	Cars     CarReader
	Listing  *listing.Service
	Accounts *accounts.Service
	Settings *sitesettings.Service
	Contacts ContactStore
	Authn    TokenVerifier
	Metrics  *metrics.Registry
	Config   config.Config
}

// Router wires HTTP handlers.
type Router struct {
	cars     CarReader
	listing  *listing.Service
	accounts *accounts.Service
	settings *sitesettings.Service
	contacts ContactStore
	authn    TokenVerifier
	metrics  *metrics.Registry
	origins  string

	// Verified-token → profile lookups are cached briefly so every admin
	// request does not re-read the users collection.
	profiles *cache.Cache
}

const profileCacheTTL = 5 * time.Minute

func NewRouter(deps Deps) *gin.Engine {
	r := &Router{
		cars:     deps.Cars,
		listing:  deps.Listing,
		accounts: deps.Accounts,
		settings: deps.Settings,
		contacts: deps.Contacts,
		authn:    deps.Authn,
		metrics:  deps.Metrics,
		origins:  deps.Config.AllowedOrigins,
		profiles: cache.New(profileCacheTTL, 10*time.Minute),
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), r.corsMiddleware())
	if r.metrics != nil {
		router.Use(metricsMiddleware(r.metrics))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/cars", r.listCars)
		api.GET("/cars/featured", r.listFeaturedCars)
		api.GET("/cars/:slug", r.getCarBySlug)
		api.GET("/cars/:slug/similar", r.similarCars)
		api.GET("/settings", r.getPublicSettings)
		api.POST("/contact",
			rateLimitMiddleware(deps.Config.ContactRatePerSec, deps.Config.ContactRateBurst),
			r.submitContact)
	}

	admin := router.Group("/api/admin")
	admin.Use(r.requireAuth())
	{
		admin.GET("/me", r.currentProfile)

		admin.GET("/cars", r.adminListCars)
		admin.DELETE("/cars/:id", r.deleteCar)
		admin.POST("/cars/:id/featured", r.toggleFeatured)

		admin.POST("/car-form", r.openForm)
		admin.GET("/car-form/:id", r.getForm)
		admin.DELETE("/car-form/:id", r.closeForm)
		admin.PUT("/car-form/:id/draft", r.updateDraft)
		admin.POST("/car-form/:id/images", r.addImages)
		admin.POST("/car-form/:id/images/reorder", r.reorderImage)
		admin.POST("/car-form/:id/images/promote", r.promoteImage)
		admin.POST("/car-form/:id/images/move", r.moveImage)
		admin.POST("/car-form/:id/images/remove", r.requestImageRemoval)
		admin.POST("/car-form/:id/images/remove/confirm", r.confirmImageRemoval)
		admin.POST("/car-form/:id/images/remove/cancel", r.cancelImageRemoval)
		admin.POST("/car-form/:id/preview", r.previewCar)
		admin.POST("/car-form/:id/save", r.saveForm)
		admin.POST("/car-form/:id/resume", r.resumeForm)

		admin.GET("/settings", r.getAdminSettings)
		admin.PUT("/settings/:section", r.updateSettingsSection)

		adminOnly := admin.Group("")
		adminOnly.Use(r.requireAdmin())
		{
			adminOnly.GET("/users", r.listUsers)
			adminOnly.PUT("/users/:uid", r.updateUser)
			adminOnly.DELETE("/users/:uid", r.deleteUser)
		}
	}

	return router
}

func (r *Router) corsMiddleware() gin.HandlerFunc {
	origins := strings.Split(r.origins, ",")
	trimmed := make([]string, 0, len(origins))
	for _, o := range origins {
		if t := strings.TrimSpace(o); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := "*"
		for _, o := range trimmed {
			if o == "*" || o == origin {
				allowed = origin
				break
			}
		}
		c.Header("Access-Control-Allow-Origin", allowed)
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}
