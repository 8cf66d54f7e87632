// Package form implements the modal workflows of the memory map app:
// collecting memory fields and credentials, and submitting them through
// the backend client.
package form

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"memorymap/internal/backend"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultUploadTimeout bounds how long a submission waits for an image
// upload before proceeding without it.
const DefaultUploadTimeout = 30 * time.Second

const uploadBucket = "images"

// Location is a coordinate picked on the map by the caller.
type Location struct {
	Lat float64
	Lng float64
}

// AddMemoryForm holds the state of one add-memory modal. It is created
// per dialog and discarded after close.
type AddMemoryForm struct {
	client   *backend.Client
	location *Location

	Title       string
	Description string
	Date        string

	// UploadTimeout is the upload-vs-timeout race deadline. Tests
	// shorten it; callers normally leave the default.
	UploadTimeout time.Duration

	// OnAdded fires after a confirmed insert, before OnClose.
	OnAdded func()
	// OnClose asks the caller to dismiss the modal.
	OnClose func()

	mu           sync.Mutex
	loading      bool
	closed       bool
	tags         []string
	imageName    string
	imageContent []byte
	imagePreview string
	message      string
}

// NewAddMemoryForm creates the form for a selected map location.
// A nil location leaves the form in guard mode: only Close works.
func NewAddMemoryForm(client *backend.Client, location *Location) *AddMemoryForm {
	return &AddMemoryForm{
		client:        client,
		location:      location,
		Date:          time.Now().UTC().Format("2006-01-02"),
		UploadTimeout: DefaultUploadTimeout,
	}
}

// LocationSelected reports whether the caller supplied a coordinate.
func (f *AddMemoryForm) LocationSelected() bool {
	return f.location != nil
}

// AddTag trims the tag and appends it unless it is empty or already present.
func (f *AddMemoryForm) AddTag(tag string) bool {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tags {
		if t == trimmed {
			return false
		}
	}
	f.tags = append(f.tags, trimmed)
	return true
}

// RemoveTag deletes the exact match from the tag sequence.
func (f *AddMemoryForm) RemoveTag(tag string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tags {
		if t == tag {
			f.tags = append(f.tags[:i], f.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Tags returns a copy of the current tag sequence in insertion order.
func (f *AddMemoryForm) Tags() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.tags))
	copy(out, f.tags)
	return out
}

// SelectImage stores the chosen file and builds a data-URL preview.
// Nothing is uploaded until Submit.
func (f *AddMemoryForm) SelectImage(filename string, content []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageName = filename
	f.imageContent = content
	f.imagePreview = fmt.Sprintf("data:%s;base64,%s",
		previewMimeType(filename), base64.StdEncoding.EncodeToString(content))
}

// ClearImage discards the selected file and its preview.
func (f *AddMemoryForm) ClearImage() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.imageName = ""
	f.imageContent = nil
	f.imagePreview = ""
}

// ImagePreview returns the in-memory data-URL preview, if any.
func (f *AddMemoryForm) ImagePreview() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.imagePreview
}

// Message returns the last user-visible status message.
func (f *AddMemoryForm) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Loading reports whether a submission is in flight.
func (f *AddMemoryForm) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Close marks the modal dismissed. A submission already in flight keeps
// running, but its callbacks are suppressed.
func (f *AddMemoryForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// Submit runs the whole submission workflow: session check, optional
// image upload raced against the timeout, then the memory insert.
// Repeated calls while loading are ignored.
func (f *AddMemoryForm) Submit(ctx context.Context) {
	f.mu.Lock()
	if f.loading || f.location == nil {
		f.mu.Unlock()
		return
	}
	f.loading = true
	f.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("memory submission panicked", "panic", r)
			f.setMessage("Beklenmeyen bir hata oluştu")
		}
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	user, err := f.client.Auth.CurrentUser(ctx)
	if err != nil || user == nil {
		f.setMessage("Anı eklemek için giriş yapmalısın 💝")
		return
	}

	var imageURL *string
	f.mu.Lock()
	imageContent := f.imageContent
	imageName := f.imageName
	tags := make([]string, len(f.tags))
	copy(tags, f.tags)
	f.mu.Unlock()

	if len(imageContent) > 0 {
		imageURL = f.uploadWithTimeout(ctx, imageName, imageContent)
	}

	err = f.client.Memories.Insert(ctx, backend.NewMemory{
		Title:       f.Title,
		Description: f.Description,
		Latitude:    f.location.Lat,
		Longitude:   f.location.Lng,
		ImageURL:    imageURL,
		Tags:        tags,
		Date:        f.Date,
	})
	if err != nil {
		slog.Error("memory insert failed", "error", err)
		f.setMessage("Anı eklenirken bir sorun oluştu 😔")
		return
	}

	f.setMessage("Anın başarıyla eklendi! 🎉✨")
	f.fireCallbacks()
}

// uploadWithTimeout races the upload against the deadline. The loser is
// abandoned; any failure means the memory is stored without an image.
func (f *AddMemoryForm) uploadWithTimeout(ctx context.Context, filename string, content []byte) *string {
	result := make(chan *string, 1)
	go func() {
		result <- f.uploadImage(ctx, filename, content)
	}()

	select {
	case url := <-result:
		return url
	case <-time.After(f.UploadTimeout):
		slog.Warn("image upload timed out", "timeout", f.UploadTimeout)
		return nil
	}
}

// uploadImage stores the image under a collision-resistant path and
// resolves its public URL. Returns nil on any failure.
func (f *AddMemoryForm) uploadImage(ctx context.Context, filename string, content []byte) *string {
	suffix, err := gonanoid.New(8)
	if err != nil {
		slog.Error("image name generation failed", "error", err)
		return nil
	}
	path := fmt.Sprintf("memories/%d-%s%s",
		time.Now().UnixMilli(), suffix, strings.ToLower(filepath.Ext(filename)))

	if err := f.client.Storage.Upload(ctx, uploadBucket, path, content); err != nil {
		slog.Error("image upload failed", "error", err)
		return nil
	}

	url := f.client.Storage.PublicURL(uploadBucket, path)
	return &url
}

func (f *AddMemoryForm) setMessage(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
}

// fireCallbacks invokes OnAdded then OnClose unless the modal was
// dismissed while the submission was in flight.
func (f *AddMemoryForm) fireCallbacks() {
	f.mu.Lock()
	closed := f.closed
	onAdded, onClose := f.OnAdded, f.OnClose
	f.mu.Unlock()

	if closed {
		return
	}
	if onAdded != nil {
		onAdded()
	}
	if onClose != nil {
		onClose()
	}
}

func previewMimeType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
