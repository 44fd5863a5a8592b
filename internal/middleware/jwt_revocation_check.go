package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"ethiowork-backend/internal/auth"
	"ethiowork-backend/internal/utilities"
)

// JwtRevocationCheck is a middleware that rejects tokens revoked by
// logout. Must run after RequireAuth, which parses the claims.
func JwtRevocationCheck(rs auth.JwtRevocationStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := ctx.Get("claims")
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "invalid token claims",
			})
			return
		}

		realClaims, okCast := claims.(*jwt.RegisteredClaims)
		if !okCast {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "invalid token claims type",
			})
			return
		}

		isRevoked, err := rs.IsRevoked(realClaims.ID)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to validate token: %s", err.Error()),
			})
			return
		}

		if isRevoked {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Token has been revoked",
			})
			return
		}
	}
}
