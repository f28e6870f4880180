package auth

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/bibliosmart/bibliosmart/internal/config"
)

// Session data keys
const (
	SessionKeyOperatorID = "operator_id"
	SessionKeyUsername   = "username"
)

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by the
// given SQL database (the underlying *sql.DB from GORM).
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// SignIn stores the operator in the session after successful
// authentication, rotating the token against session fixation.
func (sm *SessionManager) SignIn(r *http.Request, operatorID uint, username string) error {
	ctx := r.Context()
	if err := sm.RenewToken(ctx); err != nil {
		return err
	}
	sm.Put(ctx, SessionKeyOperatorID, operatorID)
	sm.Put(ctx, SessionKeyUsername, username)
	return nil
}

// SignOut destroys the current session.
func (sm *SessionManager) SignOut(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// OperatorID returns the signed-in operator's id, or 0 when anonymous.
func (sm *SessionManager) OperatorID(r *http.Request) uint {
	id, _ := sm.Get(r.Context(), SessionKeyOperatorID).(uint)
	return id
}
