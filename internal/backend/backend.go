// Package backend defines the client-side contracts the memory map app
// consumes: authentication, object storage, profile and memory inserts.
package backend

import "context"

// Identity is the authenticated account as seen by the client.
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated token with its expiry.
type Session struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Identity  `json:"identity"`
}

// NewProfile is the payload for creating a profile row.
type NewProfile struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// NewMemory is the payload for inserting a memory record.
type NewMemory struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	ImageURL    *string  `json:"image_url"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
}

// Auth exposes the authentication operations the app consumes.
type Auth interface {
	// CurrentUser returns the identity for the active session, or nil
	// when no valid session exists. It never fails on a merely missing
	// session.
	CurrentUser(ctx context.Context) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignUp(ctx context.Context, email, password string) (*Identity, error)
}

// Storage exposes object upload and public URL resolution.
type Storage interface {
	Upload(ctx context.Context, bucket, path string, content []byte) error
	PublicURL(bucket, path string) string
}

// Profiles inserts profile rows.
type Profiles interface {
	Insert(ctx context.Context, profile NewProfile) error
}

// Memory is a stored record as the backend returns it.
type Memory struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	ImageURL    *string  `json:"image_url"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
	UserID      uint     `json:"user_id"`
}

// Memories inserts and lists memory records.
type Memories interface {
	Insert(ctx context.Context, memory NewMemory) error
	// List returns up to limit records for the map view, newest first.
	List(ctx context.Context, limit int) ([]Memory, error)
}

// Client bundles every backend surface the app talks to.
type Client struct {
	Auth     Auth
	Storage  Storage
	Profiles Profiles
	Memories Memories
}
