package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/reports"
)

const recentListSize = 5

type DashboardController struct {
	store *library.Store
}

func NewDashboardController(store *library.Store) *DashboardController {
	return &DashboardController{store: store}
}

// Dashboard returns the aggregate counters plus the five most recent loans
// and readers. Everything is recomputed from current collection state.
func (ctrl *DashboardController) Dashboard(c *gin.Context) {
	books := ctrl.store.Books()
	readers := ctrl.store.Readers()
	loans := ctrl.store.Loans()
	now := time.Now()

	recentLoans := reports.ResolveLoans(reports.RecentLoans(loans, recentListSize), books, readers, now)

	c.IndentedJSON(http.StatusOK, gin.H{
		"stats":         reports.Dashboard(books, readers, loans, now),
		"recentLoans":   recentLoans,
		"recentReaders": reports.RecentReaders(readers, recentListSize),
	})
}
