package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/reports"
)

type ReadersController struct {
	store   *library.Store
	service *library.Service
}

func NewReadersController(store *library.Store, service *library.Service) *ReadersController {
	return &ReadersController{
		store:   store,
		service: service,
	}
}

// List returns the registered readers, optionally filtered by the q query
// parameter.
func (ctrl *ReadersController) List(c *gin.Context) {
	readers := reports.SearchReaders(ctrl.store.Readers(), c.Query("q"))
	c.IndentedJSON(http.StatusOK, gin.H{"readers": readers, "count": len(readers)})
}

type createReaderRequest struct {
	Name          string `json:"name"`
	AdmissionDate string `json:"admissionDate"` // YYYY-MM-DD, optional
	Sector        string `json:"sector"`
	Wing          string `json:"wing"`
	Room          string `json:"room"`
	Bed           string `json:"bed"`
}

// Create registers a patient as a reader.
func (ctrl *ReadersController) Create(c *gin.Context) {
	var req createReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var admission *time.Time
	if req.AdmissionDate != "" {
		parsed, err := time.ParseInLocation(library.DueDateLayout, req.AdmissionDate, time.Local)
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "admissionDate must be a YYYY-MM-DD date"})
			return
		}
		admission = &parsed
	}

	reader, err := ctrl.service.AddReader(library.AddReaderInput{
		Name:          req.Name,
		AdmissionDate: admission,
		Sector:        req.Sector,
		Wing:          req.Wing,
		Room:          req.Room,
		Bed:           req.Bed,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, reader)
}

// Delete removes a reader unconditionally.
func (ctrl *ReadersController) Delete(c *gin.Context) {
	if err := ctrl.service.DeleteReader(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "reader deleted"})
}
