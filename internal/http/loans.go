package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/reports"
)

type LoansController struct {
	store   *library.Store
	service *library.Service
}

func NewLoansController(store *library.Store, service *library.Service) *LoansController {
	return &LoansController{
		store:   store,
		service: service,
	}
}

// List returns every loan, newest first, with referenced entities resolved
// and the display status derived for the current time.
func (ctrl *LoansController) List(c *gin.Context) {
	loans := ctrl.store.Loans()
	newestFirst := reports.RecentLoans(loans, len(loans))
	views := reports.ResolveLoans(newestFirst, ctrl.store.Books(), ctrl.store.Readers(), time.Now())
	c.IndentedJSON(http.StatusOK, gin.H{"loans": views, "count": len(views)})
}

type createLoanRequest struct {
	BookID   string `json:"bookId" binding:"required"`
	ReaderID string `json:"readerId" binding:"required"`
	DueDate  string `json:"dueDate" binding:"required"` // YYYY-MM-DD
}

// Create lends an available book to a reader.
func (ctrl *LoansController) Create(c *gin.Context) {
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "bookId, readerId, and dueDate are required"})
		return
	}

	loan, err := ctrl.service.CreateLoan(req.BookID, req.ReaderID, req.DueDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, loan)
}

// Return marks an active loan as returned.
func (ctrl *LoansController) Return(c *gin.Context) {
	loan, err := ctrl.service.ReturnLoan(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, loan)
}
