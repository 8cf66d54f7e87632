package rest

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"memorymap/internal/backend"
)

// loadSession restores a persisted session from disk, if any.
func (c *Client) loadSession() {
	if c.sessionFile == "" {
		return
	}
	data, err := os.ReadFile(c.sessionFile)
	if err != nil {
		return
	}
	var session backend.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return
	}
	c.mu.Lock()
	c.session = &session
	c.mu.Unlock()
}

// persistSession writes a session to disk. Failures are ignored, the
// session still works for the lifetime of the process.
func (c *Client) persistSession(session *backend.Session) {
	if c.sessionFile == "" || session == nil {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	_ = os.WriteFile(c.sessionFile, data, 0600)
}

// clearSession drops the in-memory session and its persisted copy.
func (c *Client) clearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	if c.sessionFile != "" {
		_ = os.Remove(c.sessionFile)
	}
}

// setSession installs and persists a new session.
func (c *Client) setSession(token string, expiresAt int64, identity backend.Identity) {
	session := &backend.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Identity:  identity,
	}
	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	c.persistSession(session)
}

// currentSession snapshots the session pointer. Sessions are replaced
// wholesale, never mutated in place, so the snapshot stays consistent
// after the lock is released.
func (c *Client) currentSession() *backend.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// sessionToken returns the active token, if any.
func (c *Client) sessionToken() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return "", false
	}
	return c.session.Token, true
}

// ensureFreshSession refreshes the token when it is close to expiry.
// An already-expired or unrefreshable session is cleared.
func (c *Client) ensureFreshSession(ctx context.Context) {
	session := c.currentSession()
	if session == nil {
		return
	}

	expiry := time.Unix(session.ExpiresAt, 0)
	if time.Now().After(expiry) {
		c.clearSession()
		return
	}
	if time.Until(expiry) > refreshWindow {
		return
	}

	var out authResponse
	if err := c.postJSON(ctx, "/api/auth/refresh", struct{}{}, true, &out); err != nil {
		// Token is still valid for now, keep using it.
		return
	}
	c.setSession(out.Token, out.ExpiresAt, backend.Identity{
		ID:    out.Account.ID,
		Email: out.Account.Email,
	})
}
