package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliosmart/bibliosmart/internal/library"
)

// respondServiceError maps operation-boundary errors onto HTTP status
// codes: unknown ids are 404, state conflicts are 409, bad input is 400.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, library.ErrBookNotFound),
		errors.Is(err, library.ErrReaderNotFound),
		errors.Is(err, library.ErrLoanNotFound):
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, library.ErrBookUnavailable),
		errors.Is(err, library.ErrLoanAlreadyReturned):
		c.IndentedJSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, library.ErrTitleRequired),
		errors.Is(err, library.ErrAuthorRequired),
		errors.Is(err, library.ErrNameRequired),
		errors.Is(err, library.ErrInvalidDueDate):
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
