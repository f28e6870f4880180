// Package auth provides optional local operator authentication: bcrypt
// password storage, sqlite-backed sessions, and CSRF protection. With
// AUTH_MODE=none the whole subsystem stays out of the request path.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/bibliosmart/bibliosmart/internal/config"
	"github.com/bibliosmart/bibliosmart/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameTaken      = errors.New("username is already taken")
)

// Service handles operator accounts.
type Service struct {
	db  *gorm.DB
	cfg config.Auth
}

func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{db: db, cfg: cfg}
}

// IsAuthEnabled reports whether local authentication is configured.
func (s *Service) IsAuthEnabled() bool {
	return s.cfg.Mode == config.AuthModeLocal
}

// HasOperators reports whether any operator account exists yet.
func (s *Service) HasOperators() (bool, error) {
	var count int64
	if err := s.db.Model(&entities.Operator{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateOperator registers a new operator account.
func (s *Service) CreateOperator(username, password string) (*entities.Operator, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	hash, err := HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	operator := &entities.Operator{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.db.Create(operator).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create operator: %w", err)
	}
	return operator, nil
}

// Authenticate verifies a username/password pair.
func (s *Service) Authenticate(username, password string) (*entities.Operator, error) {
	var operator entities.Operator
	err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&operator).Error
	if err == gorm.ErrRecordNotFound {
		// Burn a bcrypt comparison anyway so unknown usernames cost the
		// same as wrong passwords.
		_ = CheckPassword(password, "$2a$12$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(password, operator.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &operator, nil
}

// GenerateSessionSecret creates a random hex-encoded 32-byte secret.
func GenerateSessionSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
