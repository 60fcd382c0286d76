package listing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/apexmotors/dealership-api/pkg/util"
)

// Uploader abstracts object storage for testability.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

// PendingFile is an image picked in the form but not yet uploaded.
type PendingFile struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"lastModified"`
	ContentType  string `json:"contentType"`
	PreviewURL   string `json:"previewUrl"`
	Data         []byte `json:"-"`
}

func (f PendingFile) key() string {
	return util.FileKey(f.Name, f.Size, f.LastModified)
}

// ImageSet maintains the ordered image list for one car form session: the
// persisted URL list plus a buffer of pending local files. The element at
// index 0 is the primary image; no separate flag exists. All operations are
// synchronous over the in-memory list except AddFiles, which uploads.
type ImageSet struct {
	uploader Uploader

	urls    []string
	pending []PendingFile

	removalTarget int
	confirmOpen   bool
}

// NewImageSet seeds the set with the car's persisted URLs.
func NewImageSet(uploader Uploader, urls []string) *ImageSet {
	s := &ImageSet{uploader: uploader, removalTarget: -1}
	s.urls = append(s.urls, urls...)
	return s
}

// URLs returns a copy of the persisted URL list.
func (s *ImageSet) URLs() []string {
	out := make([]string, len(s.urls))
	copy(out, s.urls)
	return out
}

// Pending returns a copy of the not-yet-uploaded file buffer.
func (s *ImageSet) Pending() []PendingFile {
	out := make([]PendingFile, len(s.pending))
	copy(out, s.pending)
	return out
}

// PendingPreviews lists the local preview URLs of the pending buffer.
func (s *ImageSet) PendingPreviews() []string {
	out := make([]string, 0, len(s.pending))
	for _, f := range s.pending {
		if f.PreviewURL != "" {
			out = append(out, f.PreviewURL)
		}
	}
	return out
}

func (s *ImageSet) tracked(f PendingFile) bool {
	k := f.key()
	for _, p := range s.pending {
		if p.key() == k {
			return true
		}
	}
	return false
}

// AddFiles appends new files (matched by name+size+lastModified against the
// current buffer) and uploads the buffer sequentially, one file at a time.
// Each successful upload appends its URL to the persisted list immediately.
// On a failed upload the remaining files are not attempted, already-appended
// URLs are kept, and the failing file stays in the buffer. The buffer is
// cleared only when every upload succeeds.
func (s *ImageSet) AddFiles(ctx context.Context, files []PendingFile) error {
	for _, f := range files {
		if !s.tracked(f) {
			s.pending = append(s.pending, f)
		}
	}
	if s.uploader == nil {
		if len(s.pending) > 0 {
			return ErrNotConfigured
		}
		return nil
	}

	uploaded := 0
	for _, f := range s.pending {
		key := fmt.Sprintf("cars/%d-%s", time.Now().UnixMilli(), f.Name)
		url, err := s.uploader.Upload(ctx, key, f.ContentType, bytes.NewReader(f.Data))
		if err != nil {
			s.pending = s.pending[uploaded:]
			return fmt.Errorf("upload %s: %w", f.Name, err)
		}
		s.urls = append(s.urls, url)
		uploaded++
	}
	s.pending = nil
	return nil
}

// RequestRemoval marks index for deletion and opens the confirmation dialog.
func (s *ImageSet) RequestRemoval(index int) {
	if index < 0 || index >= len(s.urls) {
		return
	}
	s.removalTarget = index
	s.confirmOpen = true
}

// RemovalPending reports the pending deletion target, if any.
func (s *ImageSet) RemovalPending() (int, bool) {
	return s.removalTarget, s.confirmOpen
}

// ConfirmRemoval drops the marked URL from the list. The underlying storage
// object is not deleted, only the reference.
func (s *ImageSet) ConfirmRemoval() {
	if !s.confirmOpen || s.removalTarget < 0 || s.removalTarget >= len(s.urls) {
		s.CancelRemoval()
		return
	}
	s.urls = append(s.urls[:s.removalTarget], s.urls[s.removalTarget+1:]...)
	s.CancelRemoval()
}

// CancelRemoval clears the pending target without mutating the list.
func (s *ImageSet) CancelRemoval() {
	s.removalTarget = -1
	s.confirmOpen = false
}

// PromoteToPrimary moves the element at index to position 0, keeping the
// relative order of everything else. Index 0 is a no-op.
func (s *ImageSet) PromoteToPrimary(index int) {
	if index <= 0 || index >= len(s.urls) {
		return
	}
	url := s.urls[index]
	s.urls = append(s.urls[:index], s.urls[index+1:]...)
	s.urls = append([]string{url}, s.urls...)
}

// MoveUp swaps the element with its predecessor; no-op at index 0.
func (s *ImageSet) MoveUp(index int) {
	if index <= 0 || index >= len(s.urls) {
		return
	}
	s.urls[index-1], s.urls[index] = s.urls[index], s.urls[index-1]
}

// MoveDown swaps the element with its successor; no-op at the last index.
func (s *ImageSet) MoveDown(index int) {
	if index < 0 || index >= len(s.urls)-1 {
		return
	}
	s.urls[index], s.urls[index+1] = s.urls[index+1], s.urls[index]
}

// Reorder removes the element at from and re-inserts it at to. A negative
// from (no active drag) or equal indices are no-ops.
func (s *ImageSet) Reorder(from, to int) {
	if from < 0 || from >= len(s.urls) || to < 0 || to >= len(s.urls) || from == to {
		return
	}
	url := s.urls[from]
	rest := append(s.urls[:from], s.urls[from+1:]...)
	s.urls = append(rest[:to], append([]string{url}, rest[to:]...)...)
}
