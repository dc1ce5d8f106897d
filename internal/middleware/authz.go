package middleware

import (
	"net/http"

	"github.com/Zar-ufo/Pentagon/internal/apierror"
	"github.com/Zar-ufo/Pentagon/internal/model"

	"github.com/gin-gonic/gin"
)

// Resource/action names used by the capability table and Require.
const (
	ResUsers     = "users"
	ResProducts  = "products"
	ResInventory = "inventory"
	ResOrders    = "orders"

	ActRead   = "read"
	ActWrite  = "write"
	ActManage = "manage" // admin-only administration (user CRUD, reports)
)

// capabilities is the coarse role grant table consulted by Require. Admin is
// a wildcard and never listed. Ownership rules (a sales person seeing only
// their own orders) are finer than a route and live in the service layer.
var capabilities = map[string]map[string][]string{
	ResUsers: {
		ActRead:  {model.RoleSales}, // sales directory, own account
		ActWrite: {model.RoleSales}, // own account; service enforces self-only
	},
	ResProducts: {
		ActRead: {model.RoleSales}, // catalog writes are admin-only
	},
	ResInventory: {
		ActRead: {model.RoleSales}, // snapshot writes are admin-only
	},
	ResOrders: {
		ActRead:  {model.RoleSales},
		ActWrite: {model.RoleSales},
	},
}

// Require gates a route on the capability table. Must run after JWTAuth.
func Require(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.NewEnvelope("authentication required"))
			return
		}
		if claims.Role == model.RoleAdmin || granted(resource, action, claims.Role) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.NewEnvelope("insufficient permissions"))
	}
}

func granted(resource, action, role string) bool {
	actions, ok := capabilities[resource]
	if !ok {
		return false
	}
	for _, r := range actions[action] {
		if r == role {
			return true
		}
	}
	return false
}
