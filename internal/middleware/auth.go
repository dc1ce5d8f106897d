package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/token"

	"github.com/gin-gonic/gin"
)

const ClaimsKey = "claims"

// Revocations answers whether a token ID has been revoked by logout.
type Revocations interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuth validates the Bearer token on every protected route and rejects
// tokens revoked through logout.
func JWTAuth(tokens *token.Manager, revocations Revocations) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewEnvelope("authentication required"))
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewEnvelope("invalid or expired token"))
			return
		}

		revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.NewEnvelope("checking token revocation"))
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewEnvelope("token has been revoked"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// GetClaims retrieves the typed claims from the Gin context, nil when the
// request never went through JWTAuth.
func GetClaims(c *gin.Context) *token.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}
