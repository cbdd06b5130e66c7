package runlog

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	redisstore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

const sessionKeyLastRun = "last_run_id"

// SessionService tracks, per browser session, the id of the last run
// the client looked at, backed by Redis so the API can scale past one
// instance.
type SessionService struct {
	store         redisstore.Store
	cookieOptions sessions.Options
}

// NewSessionService dials a Redis-backed session store. isDev controls
// whether the session cookie is marked Secure.
func NewSessionService(isDev bool, redisAddr string) (*SessionService, error) {
	store, err := redisstore.NewStoreWithDB(10, "tcp", redisAddr, "", "", "1",
		[]byte("1kXw0yGQ2n8+6t4m/56sM4dZ8aK1N3pQeW7sV0cJx9E=") /* TODO(security): rotate key */)
	if err != nil {
		return nil, fmt.Errorf("runlog: new session store: %w", err)
	}

	cookieOptions := sessions.Options{
		Path:     "/api",
		MaxAge:   4 * 3600,
		Secure:   !isDev,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	store.Options(cookieOptions)

	return &SessionService{store: store, cookieOptions: cookieOptions}, nil
}

// Middleware attaches session handling to the router.
func (s *SessionService) Middleware() gin.HandlerFunc {
	return sessions.Sessions("psid", s.store)
}

// SetLastRun records id as the last run the session looked at.
func (s *SessionService) SetLastRun(session sessions.Session, id string) error {
	session.Set(sessionKeyLastRun, id)
	if err := session.Save(); err != nil {
		return fmt.Errorf("runlog: save session: %w", err)
	}
	return nil
}

// LastRun returns the last run id the session looked at, if any.
func (s *SessionService) LastRun(session sessions.Session) (string, bool) {
	id, ok := session.Get(sessionKeyLastRun).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
