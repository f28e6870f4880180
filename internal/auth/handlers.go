package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Controller exposes the setup/login/logout endpoints.
type Controller struct {
	service  *Service
	sessions *SessionManager
}

func NewController(service *Service, sessions *SessionManager) *Controller {
	return &Controller{
		service:  service,
		sessions: sessions,
	}
}

// RegisterRoutes attaches the auth endpoints to the router.
func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/setup", ctrl.Setup)
	router.POST("/login", ctrl.Login)
	router.POST("/logout", ctrl.Logout)
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Setup creates the first operator account. Once any operator exists the
// endpoint is closed.
func (ctrl *Controller) Setup(c *gin.Context) {
	hasOperators, err := ctrl.service.HasOperators()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if hasOperators {
		c.IndentedJSON(http.StatusForbidden, gin.H{"error": "setup already completed"})
		return
	}

	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	operator, err := ctrl.service.CreateOperator(req.Username, req.Password)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, ErrPasswordTooShort) && !errors.Is(err, ErrPasswordTooLong) &&
			!errors.Is(err, ErrUsernameRequired) && !errors.Is(err, ErrUsernameTaken) {
			status = http.StatusInternalServerError
		}
		c.IndentedJSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.sessions.SignIn(c.Request, operator.ID, operator.Username); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"username": operator.Username})
}

// Login verifies credentials and opens a session.
func (ctrl *Controller) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	operator, err := ctrl.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.sessions.SignIn(c.Request, operator.ID, operator.Username); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"username": operator.Username})
}

// Logout destroys the current session.
func (ctrl *Controller) Logout(c *gin.Context) {
	if err := ctrl.sessions.SignOut(c.Request); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "signed out"})
}
