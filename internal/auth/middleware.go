package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyOperatorID is the gin context key carrying the signed-in
// operator's id.
const ContextKeyOperatorID = "operator_id"

// RequireOperator aborts requests that carry no signed-in operator
// session. Applied to the API group when local auth is enabled.
func (sm *SessionManager) RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		operatorID := sm.OperatorID(c.Request)
		if operatorID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(ContextKeyOperatorID, operatorID)
		c.Next()
	}
}
