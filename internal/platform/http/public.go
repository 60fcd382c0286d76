package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/apexmotors/dealership-api/internal/business/accounts"
	"github.com/apexmotors/dealership-api/internal/business/catalog"
	"github.com/apexmotors/dealership-api/internal/business/listing"
	"github.com/apexmotors/dealership-api/internal/business/sitesettings"
	"github.com/apexmotors/dealership-api/internal/platform/logging"
	"github.com/apexmotors/dealership-api/internal/repository"
	"github.com/apexmotors/dealership-api/pkg/model"
	"github.com/apexmotors/dealership-api/pkg/util"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses. Capacity rejections and
// validation failures are expected business outcomes, not server errors.
func (r *Router) respondError(c *gin.Context, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, listing.ErrFeaturedLimit):
		if r.metrics != nil {
			r.metrics.FeaturedRejections.Inc()
		}
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("featured car limit reached (max %d)", r.listing.Guard().Limit()),
		})
	case errors.Is(err, listing.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "form session not found or expired"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, listing.ErrNotConfigured),
		errors.Is(err, accounts.ErrNotConfigured),
		errors.Is(err, sitesettings.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "remote store is not configured"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// publicCatalog loads the catalog, falling back to the bundled sample data
// when no remote store is configured.
func (r *Router) publicCatalog(c *gin.Context) ([]model.Car, error) {
	if r.cars == nil {
		return catalog.SampleCars(), nil
	}
	return r.cars.List(c.Request.Context())
}

func (r *Router) listCars(c *gin.Context) {
	cars, err := r.publicCatalog(c)
	if err != nil {
		r.respondError(c, err)
		return
	}
	cars = catalog.FilterByCategory(cars, c.Query("category"))
	cars = catalog.ListQuery{Status: c.Query("status")}.Apply(cars)
	c.JSON(http.StatusOK, gin.H{"items": cars, "total": len(cars)})
}

func (r *Router) listFeaturedCars(c *gin.Context) {
	var featured []model.Car
	if r.cars == nil {
		for _, car := range catalog.SampleCars() {
			if car.Featured {
				featured = append(featured, car)
			}
		}
	} else {
		var err error
		featured, err = r.cars.ListFeatured(c.Request.Context())
		if err != nil {
			// Same fallback as the capacity guard: scan and filter.
			logging.L().Warnw("featured query failed, scanning collection", "error", err)
			all, scanErr := r.cars.List(c.Request.Context())
			if scanErr != nil {
				r.respondError(c, scanErr)
				return
			}
			featured = featured[:0]
			for _, car := range all {
				if car.Featured {
					featured = append(featured, car)
				}
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": featured, "total": len(featured)})
}

func (r *Router) carBySlug(c *gin.Context, slug string) (model.Car, error) {
	if r.cars == nil {
		for _, car := range catalog.SampleCars() {
			if util.CarSlug(car.Make, car.Model) == slug {
				return car, nil
			}
		}
		return model.Car{}, repository.ErrNotFound
	}
	return r.cars.GetBySlug(c.Request.Context(), slug)
}

func (r *Router) getCarBySlug(c *gin.Context) {
	car, err := r.carBySlug(c, c.Param("slug"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (r *Router) similarCars(c *gin.Context) {
	ref, err := r.carBySlug(c, c.Param("slug"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	candidates, err := r.publicCatalog(c)
	if err != nil {
		r.respondError(c, err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))
	c.JSON(http.StatusOK, gin.H{"items": catalog.Rank(ref, candidates, limit)})
}

func (r *Router) getPublicSettings(c *gin.Context) {
	settings := r.settings.Current()
	// Email routing stays private to the back office.
	c.JSON(http.StatusOK, gin.H{
		"seo":      settings.Seo,
		"homepage": settings.Homepage,
	})
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (r *Router) submitContact(c *gin.Context) {
	var req contactReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	var verr model.ValidationError
	if strings.TrimSpace(req.Name) == "" {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "name", Reason: "required"})
	}
	if strings.TrimSpace(req.Email) == "" {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "email", Reason: "required"})
	}
	if strings.TrimSpace(req.Message) == "" {
		verr.Fields = append(verr.Fields, model.FieldError{Field: "message", Reason: "required"})
	}
	if len(verr.Fields) > 0 {
		r.respondError(c, &verr)
		return
	}
	if r.contacts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "remote store is not configured"})
		return
	}

	id, err := r.contacts.Add(c.Request.Context(), model.ContactMessage{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   strings.TrimSpace(req.Message),
		Recipient: r.settings.Current().Emails.ContactRecipient,
	})
	if err != nil {
		r.respondError(c, err)
		return
	}
	if r.metrics != nil {
		r.metrics.ContactSubmissions.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}
