package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/apexmotors/dealership-api/internal/business/catalog"
	"github.com/apexmotors/dealership-api/internal/business/listing"
	"github.com/apexmotors/dealership-api/pkg/model"
	"github.com/gin-gonic/gin"
)

func (r *Router) currentProfile(c *gin.Context) {
	profile, ok := currentProfileFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no profile on request"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// adminListCars serves the back-office table: status filter plus the
// tri-state column sort, both applied client-side over the full fetch.
func (r *Router) adminListCars(c *gin.Context) {
	cars, err := r.listing.Cars(c.Request.Context())
	if err != nil {
		r.respondError(c, err)
		return
	}
	q := catalog.ListQuery{
		Status: c.Query("status"),
		Sort: catalog.SortState{
			Field: catalog.SortField(c.Query("sort")),
			Dir:   catalog.SortDir(c.Query("dir")),
		},
	}
	cars = q.Apply(cars)
	c.JSON(http.StatusOK, gin.H{"items": cars, "total": len(cars)})
}

func (r *Router) deleteCar(c *gin.Context) {
	if err := r.listing.DeleteCar(c.Request.Context(), c.Param("id")); err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (r *Router) toggleFeatured(c *gin.Context) {
	var req struct {
		Featured bool `json:"featured"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := r.listing.ToggleFeatured(c.Request.Context(), c.Param("id"), req.Featured); err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "featured": req.Featured})
}

// snapshotResponse is the uniform reply of every form-session endpoint.
func (r *Router) snapshotResponse(c *gin.Context, snap listing.Snapshot, err error) {
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (r *Router) openForm(c *gin.Context) {
	var req struct {
		CarID string `json:"carId"`
	}
	// An empty body opens a blank add-car form.
	if err := c.BindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	snap, err := r.listing.OpenForm(c.Request.Context(), req.CarID)
	r.snapshotResponse(c, snap, err)
}

func (r *Router) getForm(c *gin.Context) {
	snap, err := r.listing.Form(c.Param("id"))
	r.snapshotResponse(c, snap, err)
}

func (r *Router) closeForm(c *gin.Context) {
	r.listing.CloseForm(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"closed": c.Param("id")})
}

func (r *Router) updateDraft(c *gin.Context) {
	var draft model.CarDraft
	if err := c.BindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	snap, err := r.listing.UpdateDraft(c.Param("id"), draft)
	r.snapshotResponse(c, snap, err)
}

const maxUploadBytes = 20 << 20

// addImages accepts a multipart form with one or more `files` parts. The
// optional lastModified-<filename> field carries the client-side timestamp
// used for duplicate detection.
func (r *Router) addImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	var files []listing.PendingFile
	for _, fh := range form.File["files"] {
		if fh.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file too large: " + fh.Filename})
			return
		}
		f, err := fh.Open()
		if err != nil {
			r.respondError(c, err)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			r.respondError(c, err)
			return
		}
		lastModified, _ := strconv.ParseInt(c.PostForm("lastModified-"+fh.Filename), 10, 64)
		files = append(files, listing.PendingFile{
			Name:         fh.Filename,
			Size:         fh.Size,
			LastModified: lastModified,
			ContentType:  fh.Header.Get("Content-Type"),
			Data:         data,
		})
	}
	snap, err := r.listing.AddImages(c.Request.Context(), c.Param("id"), files)
	if r.metrics != nil && len(files) > 0 {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		r.metrics.ImageUploadsTotal.WithLabelValues(outcome).Add(float64(len(files)))
	}
	r.snapshotResponse(c, snap, err)
}

type indexReq struct {
	Index int `json:"index"`
}

func (r *Router) reorderImage(c *gin.Context) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	snap, err := r.listing.ReorderImage(c.Param("id"), req.From, req.To)
	r.snapshotResponse(c, snap, err)
}

func (r *Router) promoteImage(c *gin.Context) {
	var req indexReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	snap, err := r.listing.PromoteImage(c.Param("id"), req.Index)
	r.snapshotResponse(c, snap, err)
}

func (r *Router) moveImage(c *gin.Context) {
	var req struct {
		Index     int    `json:"index"`
		Direction string `json:"direction"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	var snap listing.Snapshot
	var err error
	switch req.Direction {
	case "up":
		snap, err = r.listing.MoveImageUp(c.Param("id"), req.Index)
	case "down":
		snap, err = r.listing.MoveImageDown(c.Param("id"), req.Index)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be up or down"})
		return
	}
	r.snapshotResponse(c, snap, err)
}

func (r *Router) requestImageRemoval(c *gin.Context) {
	var req indexReq
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	snap, err := r.listing.RequestImageRemoval(c.Param("id"), req.Index)
	r.snapshotResponse(c, snap, err)
}

func (r *Router) confirmImageRemoval(c *gin.Context) {
	snap, err := r.listing.ConfirmImageRemoval(c.Param("id"))
	r.snapshotResponse(c, snap, err)
}

func (r *Router) cancelImageRemoval(c *gin.Context) {
	snap, err := r.listing.CancelImageRemoval(c.Param("id"))
	r.snapshotResponse(c, snap, err)
}

func (r *Router) previewCar(c *gin.Context) {
	var req struct {
		ReturnTo string `json:"returnTo"`
	}
	if err := c.BindJSON(&req); err != nil && err != io.EOF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	car, returnTo, err := r.listing.Preview(c.Param("id"), req.ReturnTo)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"car": car, "returnTo": returnTo})
}

func (r *Router) saveForm(c *gin.Context) {
	car, err := r.listing.Save(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (r *Router) resumeForm(c *gin.Context) {
	saved, car, err := r.listing.Resume(c.Request.Context(), c.Param("id"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	resp := gin.H{"autosaved": saved}
	if saved {
		resp["car"] = car
	}
	c.JSON(http.StatusOK, resp)
}

func (r *Router) getAdminSettings(c *gin.Context) {
	c.JSON(http.StatusOK, r.settings.Current())
}

func (r *Router) updateSettingsSection(c *gin.Context) {
	var data map[string]any
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	settings, err := r.settings.UpdateSection(c.Request.Context(), c.Param("section"), data)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (r *Router) listUsers(c *gin.Context) {
	users, err := r.accounts.List(c.Request.Context())
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": users, "total": len(users)})
}

func (r *Router) updateUser(c *gin.Context) {
	var req struct {
		Role        string `json:"role"`
		DisplayName string `json:"displayName"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	uid := c.Param("uid")
	if err := r.accounts.Update(c.Request.Context(), uid, req.Role, req.DisplayName); err != nil {
		r.respondError(c, err)
		return
	}
	// Role changes must not ride out the old cached profile.
	r.profiles.Delete(uid)
	c.JSON(http.StatusOK, gin.H{"updated": uid})
}

func (r *Router) deleteUser(c *gin.Context) {
	uid := c.Param("uid")
	if profile, ok := currentProfileFrom(c); ok && profile.UID == uid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot delete your own account"})
		return
	}
	if err := r.accounts.Delete(c.Request.Context(), uid); err != nil {
		r.respondError(c, err)
		return
	}
	r.profiles.Delete(uid)
	c.JSON(http.StatusOK, gin.H{"deleted": uid})
}
