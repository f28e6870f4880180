package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliosmart/bibliosmart/internal/library"
	"github.com/bibliosmart/bibliosmart/internal/scheduler"
)

type AdminController struct {
	store     *library.Store
	backupDir string
}

func NewAdminController(store *library.Store, backupDir string) *AdminController {
	return &AdminController{
		store:     store,
		backupDir: backupDir,
	}
}

// Backup writes an on-demand snapshot of the three collections.
func (ctrl *AdminController) Backup(c *gin.Context) {
	path, err := scheduler.WriteSnapshot(ctrl.store, ctrl.backupDir)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"path": path})
}
