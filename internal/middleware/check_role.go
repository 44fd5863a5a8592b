package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ethiowork-backend/internal/utilities"
)

// CheckRole will protect endpoint from accounts that are not of the given roles
func CheckRole(roles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		acc, err := utilities.ExtractAccount(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if !contains(roles, acc.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Account doesn't have permission to access",
			})
		}
	}
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
