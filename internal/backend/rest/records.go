package rest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"memorymap/internal/backend"
)

// profilesClient implements backend.Profiles.
type profilesClient struct {
	c *Client
}

// Insert creates the profile row for the authenticated account.
func (p profilesClient) Insert(ctx context.Context, profile backend.NewProfile) error {
	return p.c.postJSON(ctx, "/api/users", map[string]string{
		"email":    profile.Email,
		"username": profile.Username,
	}, true, nil)
}

// memoriesClient implements backend.Memories.
type memoriesClient struct {
	c *Client
}

// Insert inserts a memory record for the authenticated account.
func (m memoriesClient) Insert(ctx context.Context, memory backend.NewMemory) error {
	return m.c.postJSON(ctx, "/api/memories", memory, true, nil)
}

// List fetches memory records for the map view.
func (m memoriesClient) List(ctx context.Context, limit int) ([]backend.Memory, error) {
	var memories []backend.Memory
	path := fmt.Sprintf("/api/memories?limit=%d", limit)
	if err := m.c.doJSON(ctx, http.MethodGet, path, nil, "", true, &memories); err != nil {
		return nil, err
	}
	return memories, nil
}

// Upload stores raw object bytes under bucket/path.
func (c *Client) Upload(ctx context.Context, bucket, path string, content []byte) error {
	url := fmt.Sprintf("/api/storage/%s/%s", bucket, path)
	return c.doJSON(ctx, http.MethodPost, url, bytes.NewReader(content), contentTypeFor(path), true, nil)
}

// PublicURL resolves the public URL for an uploaded object.
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/media/%s/%s", c.baseURL, bucket, path)
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
