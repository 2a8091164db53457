package middleware

import (
	"net/http"

	"carhive/internal/domain"
	"carhive/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the given roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleAny, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		role := domain.UserRole(roleAny.(string))
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// CustomerOnly middleware requires the customer role
func CustomerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleCustomer)
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// AgencyOnly middleware requires an agency owner or staff role
func AgencyOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAgencyOwner, domain.RoleAgencyStaff)
}
