package http

import (
	"github.com/bibliosmart/bibliosmart/internal/auth"
	"github.com/bibliosmart/bibliosmart/internal/config"
	"github.com/bibliosmart/bibliosmart/internal/enrich"
	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/storage"
	"github.com/bibliosmart/bibliosmart/internal/tasks"
)

// RouterConfig carries every dependency the router needs, so the wiring
// lives in one place and tests can assemble partial routers.
type RouterConfig struct {
	Database *storage.Database
	Store    *library.Store
	Service  *library.Service
	Enricher *enrich.Enricher

	TaskClient *tasks.Client
	BackupDir  string
	Version    string

	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool
}
