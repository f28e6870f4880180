package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/reports"
)

type ReportsController struct {
	store *library.Store
}

func NewReportsController(store *library.Store) *ReportsController {
	return &ReportsController{store: store}
}

// Available lists the books that can be loaned right now.
func (ctrl *ReportsController) Available(c *gin.Context) {
	available := reports.AvailableBooks(ctrl.store.Books())
	c.IndentedJSON(http.StatusOK, gin.H{"books": available, "count": len(available)})
}

// Genres returns the catalogue grouped by genre in first-seen order.
func (ctrl *ReportsController) Genres(c *gin.Context) {
	groups := reports.GenreBreakdown(ctrl.store.Books())
	c.IndentedJSON(http.StatusOK, gin.H{"groups": groups, "count": len(groups)})
}

// Returns lists active loans due on the given calendar day (date query
// parameter, YYYY-MM-DD; defaults to today).
func (ctrl *ReportsController) Returns(c *gin.Context) {
	day := time.Now()
	if value := c.Query("date"); value != "" {
		parsed, err := time.ParseInLocation(library.DueDateLayout, value, time.Local)
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "date must be a YYYY-MM-DD date"})
			return
		}
		day = parsed
	}

	due := reports.ScheduledReturns(ctrl.store.Loans(), day)
	views := reports.ResolveLoans(due, ctrl.store.Books(), ctrl.store.Readers(), time.Now())
	c.IndentedJSON(http.StatusOK, gin.H{
		"date":  day.Format(library.DueDateLayout),
		"loans": views,
		"count": len(views),
	})
}
