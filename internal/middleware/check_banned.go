package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/utilities"
)

// CheckBanned blocks banned accounts from mutating endpoints. Admins
// cannot be banned, so they pass through.
func CheckBanned() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		acc, err := utilities.ExtractAccount(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if acc.Role == model.RoleAdmin {
			ctx.Next()
			return
		}

		if acc.Banned {
			ctx.AbortWithStatusJSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "You don't have access to this endpoint because your account is banned",
			})
			return
		}

		ctx.Next()
	}
}
