package listing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"testing"
)

type mockUploader struct {
	failOn  string // file name whose upload fails
	uploads int
}

func (m *mockUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if m.failOn != "" && strings.Contains(key, m.failOn) {
		return "", errors.New("upload failed")
	}
	m.uploads++
	return "https://cdn.example/" + key, nil
}

func urlsSet(urls ...string) *ImageSet {
	return NewImageSet(&mockUploader{}, urls)
}

func pf(name string) PendingFile {
	return PendingFile{
		Name: name, Size: int64(len(name)) * 100, LastModified: 1700000000,
		ContentType: "image/jpeg", PreviewURL: "blob:" + name, Data: []byte(name),
	}
}

func TestPromoteToPrimary(t *testing.T) {
	s := urlsSet("a", "b", "c", "d")
	s.PromoteToPrimary(2)
	if got := s.URLs(); !reflect.DeepEqual(got, []string{"c", "a", "b", "d"}) {
		t.Fatalf("URLs = %v", got)
	}

	// Index 0 is a no-op.
	before := s.URLs()
	s.PromoteToPrimary(0)
	if got := s.URLs(); !reflect.DeepEqual(got, before) {
		t.Fatalf("PromoteToPrimary(0) mutated the list: %v", got)
	}
}

func TestMoveBoundariesAreNoOps(t *testing.T) {
	s := urlsSet("a", "b", "c")
	s.MoveUp(0)
	s.MoveDown(2)
	s.MoveUp(-1)
	s.MoveDown(99)
	if got := s.URLs(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("boundary moves mutated the list: %v", got)
	}
}

func TestMoveUpThenDownRestoresOrder(t *testing.T) {
	original := []string{"a", "b", "c", "d", "e"}
	for i := 1; i < len(original); i++ {
		s := urlsSet(original...)
		s.MoveUp(i)
		s.MoveDown(i - 1)
		if got := s.URLs(); !reflect.DeepEqual(got, original) {
			t.Fatalf("MoveUp(%d)+MoveDown(%d) = %v, want %v", i, i-1, got, original)
		}
	}
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"same index is a no-op", 2, 2, []string{"a", "b", "c", "d"}},
		{"no active drag is a no-op", -1, 1, []string{"a", "b", "c", "d"}},
		{"out of range is a no-op", 1, 9, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := urlsSet("a", "b", "c", "d")
			s.Reorder(tt.from, tt.to)
			if got := s.URLs(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Reorder(%d,%d) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTwoPhaseRemoval(t *testing.T) {
	s := urlsSet("a", "b", "c")

	s.RequestRemoval(1)
	if target, open := s.RemovalPending(); target != 1 || !open {
		t.Fatalf("RemovalPending = (%d, %v)", target, open)
	}
	if len(s.URLs()) != 3 {
		t.Fatal("request alone must not mutate the list")
	}

	s.CancelRemoval()
	if _, open := s.RemovalPending(); open {
		t.Fatal("cancel should close the confirmation")
	}
	if len(s.URLs()) != 3 {
		t.Fatal("cancel must not mutate the list")
	}

	s.RequestRemoval(1)
	s.ConfirmRemoval()
	if got := s.URLs(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("after confirm: %v", got)
	}
	if _, open := s.RemovalPending(); open {
		t.Fatal("confirm should clear the pending target")
	}
}

func TestAddFilesUploadsSequentiallyAndClearsBuffer(t *testing.T) {
	up := &mockUploader{}
	s := NewImageSet(up, []string{"existing"})

	if err := s.AddFiles(context.Background(), []PendingFile{pf("one.jpg"), pf("two.jpg")}); err != nil {
		t.Fatalf("AddFiles: %v", err)
	}
	if up.uploads != 2 {
		t.Errorf("uploads = %d, want 2", up.uploads)
	}
	urls := s.URLs()
	if len(urls) != 3 || urls[0] != "existing" {
		t.Fatalf("URLs = %v", urls)
	}
	if !strings.Contains(urls[1], "one.jpg") || !strings.Contains(urls[2], "two.jpg") {
		t.Errorf("new URLs should append in file order: %v", urls)
	}
	if len(s.Pending()) != 0 {
		t.Error("buffer should be cleared on full success")
	}
}

func TestAddFilesFailureKeepsFileInBuffer(t *testing.T) {
	up := &mockUploader{failOn: "bad.jpg"}
	s := NewImageSet(up, []string{"existing"})

	err := s.AddFiles(context.Background(), []PendingFile{pf("bad.jpg")})
	if err == nil {
		t.Fatal("expected upload error")
	}
	if got := s.URLs(); !reflect.DeepEqual(got, []string{"existing"}) {
		t.Fatalf("URL list should be unchanged, got %v", got)
	}
	pending := s.Pending()
	if len(pending) != 1 || pending[0].Name != "bad.jpg" {
		t.Fatalf("pending = %+v, want the failed file kept", pending)
	}
}

func TestAddFilesPartialSuccessKeepsEarlierUploads(t *testing.T) {
	up := &mockUploader{failOn: "second.jpg"}
	s := NewImageSet(up, nil)

	err := s.AddFiles(context.Background(), []PendingFile{pf("first.jpg"), pf("second.jpg"), pf("third.jpg")})
	if err == nil {
		t.Fatal("expected upload error")
	}
	urls := s.URLs()
	if len(urls) != 1 || !strings.Contains(urls[0], "first.jpg") {
		t.Fatalf("first upload should be kept: %v", urls)
	}
	names := make([]string, 0, 2)
	for _, p := range s.Pending() {
		names = append(names, p.Name)
	}
	if !reflect.DeepEqual(names, []string{"second.jpg", "third.jpg"}) {
		t.Fatalf("pending = %v, remaining files must not be attempted but stay buffered", names)
	}
}

func TestAddFilesSkipsAlreadyTrackedFiles(t *testing.T) {
	up := &mockUploader{failOn: "stuck.jpg"}
	s := NewImageSet(up, nil)

	// First attempt fails and leaves the file buffered.
	_ = s.AddFiles(context.Background(), []PendingFile{pf("stuck.jpg")})
	if len(s.Pending()) != 1 {
		t.Fatal("file should stay buffered after failure")
	}

	// Re-adding the same name+size+lastModified triple must not duplicate it.
	_ = s.AddFiles(context.Background(), []PendingFile{pf("stuck.jpg")})
	if got := len(s.Pending()); got != 1 {
		t.Fatalf("pending length = %d, want 1 (no duplicate)", got)
	}
}

func TestAddFilesWithoutUploader(t *testing.T) {
	s := NewImageSet(nil, nil)
	err := s.AddFiles(context.Background(), []PendingFile{pf("a.jpg")})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
	if len(s.Pending()) != 1 {
		t.Error("file should stay buffered when storage is unavailable")
	}
}

func TestPendingPreviews(t *testing.T) {
	up := &mockUploader{failOn: ".jpg"} // keep everything pending
	s := NewImageSet(up, []string{"persisted"})
	_ = s.AddFiles(context.Background(), []PendingFile{pf("x.jpg"), pf("y.jpg")})

	want := []string{"blob:x.jpg", "blob:y.jpg"}
	if got := s.PendingPreviews(); !reflect.DeepEqual(got, want) {
		t.Fatalf("PendingPreviews = %v, want %v", got, want)
	}
}

func ExampleImageSet_PromoteToPrimary() {
	s := NewImageSet(nil, []string{"side.jpg", "hero.jpg"})
	s.PromoteToPrimary(1)
	fmt.Println(s.URLs()[0])
	// Output: hero.jpg
}
