package form

import (
	"context"
	"fmt"
	"sync"

	"memorymap/internal/backend"
)

// fakeBackend implements every backend contract in memory for form tests.
type fakeBackend struct {
	mu sync.Mutex

	identity   *backend.Identity
	signInErr  error
	signUpErr  error
	signInFn   func(email, password string) (*backend.Identity, error)
	profileErr error

	uploadFn  func(ctx context.Context, bucket, path string, content []byte) error
	uploadErr error

	insertMemoryErr error

	profiles []backend.NewProfile
	memories []backend.NewMemory
	uploads  []string
}

func (f *fakeBackend) client() *backend.Client {
	return &backend.Client{
		Auth:     f,
		Storage:  f,
		Profiles: fakeProfiles{f},
		Memories: fakeMemories{f},
	}
}

func (f *fakeBackend) CurrentUser(ctx context.Context) (*backend.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.identity, nil
}

func (f *fakeBackend) SignIn(ctx context.Context, email, password string) (*backend.Identity, error) {
	if f.signInFn != nil {
		return f.signInFn(email, password)
	}
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	id := &backend.Identity{ID: 1, Email: email}
	f.mu.Lock()
	f.identity = id
	f.mu.Unlock()
	return id, nil
}

func (f *fakeBackend) SignUp(ctx context.Context, email, password string) (*backend.Identity, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	id := &backend.Identity{ID: 2, Email: email}
	f.mu.Lock()
	f.identity = id
	f.mu.Unlock()
	return id, nil
}

func (f *fakeBackend) Upload(ctx context.Context, bucket, path string, content []byte) error {
	if f.uploadFn != nil {
		return f.uploadFn(ctx, bucket, path, content)
	}
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.mu.Lock()
	f.uploads = append(f.uploads, bucket+"/"+path)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) PublicURL(bucket, path string) string {
	return fmt.Sprintf("http://backend.test/media/%s/%s", bucket, path)
}

type fakeProfiles struct{ f *fakeBackend }

func (p fakeProfiles) Insert(ctx context.Context, profile backend.NewProfile) error {
	if p.f.profileErr != nil {
		return p.f.profileErr
	}
	p.f.mu.Lock()
	p.f.profiles = append(p.f.profiles, profile)
	p.f.mu.Unlock()
	return nil
}

type fakeMemories struct{ f *fakeBackend }

func (m fakeMemories) Insert(ctx context.Context, memory backend.NewMemory) error {
	if m.f.insertMemoryErr != nil {
		return m.f.insertMemoryErr
	}
	m.f.mu.Lock()
	m.f.memories = append(m.f.memories, memory)
	m.f.mu.Unlock()
	return nil
}

func (m fakeMemories) List(ctx context.Context, limit int) ([]backend.Memory, error) {
	m.f.mu.Lock()
	defer m.f.mu.Unlock()
	out := make([]backend.Memory, 0, len(m.f.memories))
	for i, record := range m.f.memories {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, backend.Memory{
			ID:          uint(i + 1),
			Title:       record.Title,
			Description: record.Description,
			Latitude:    record.Latitude,
			Longitude:   record.Longitude,
			ImageURL:    record.ImageURL,
			Tags:        record.Tags,
			Date:        record.Date,
		})
	}
	return out, nil
}

func (f *fakeBackend) insertedMemories() []backend.NewMemory {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]backend.NewMemory, len(f.memories))
	copy(out, f.memories)
	return out
}

func (f *fakeBackend) insertedProfiles() []backend.NewProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]backend.NewProfile, len(f.profiles))
	copy(out, f.profiles)
	return out
}
