package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const userKey = "user_id"

// Manager associates a server-held session with an authenticated identity.
// The session moves between exactly two states: unauthenticated (no user id
// stored, or no session at all) and authenticated. An absent session and a
// present-but-empty one are indistinguishable to callers.
type Manager struct {
	store *session.Store
}

// NewManager creates a Manager backed by Fiber's cookie session store.
func NewManager() *Manager {
	return &Manager{
		store: session.New(session.Config{
			Expiration:     24 * time.Hour,
			CookieHTTPOnly: true,
		}),
	}
}

// Bind stores the authenticated user id in the caller's session. Called on
// login only; sessions are re-issued, never patched.
func (m *Manager) Bind(c *fiber.Ctx, userID string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(userKey, userID)
	return sess.Save()
}

// CurrentUserID returns the session-held user id, or false when the caller
// is unauthenticated. The id may reference a user that no longer exists;
// callers treat that as not found.
func (m *Manager) CurrentUserID(c *fiber.Ctx) (string, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return "", false
	}
	id, ok := sess.Get(userKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Clear removes the user id from the session. Idempotent: clearing an
// absent or already-cleared session succeeds.
func (m *Manager) Clear(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil
	}
	if sess.Get(userKey) == nil {
		return nil
	}
	sess.Delete(userKey)
	return sess.Save()
}
