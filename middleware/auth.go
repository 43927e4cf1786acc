package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/alfons-cm/community-management-backend/config"
	"github.com/alfons-cm/community-management-backend/internal/auth"
	"github.com/alfons-cm/community-management-backend/internal/employee"
)

// AuthMiddleware validates the bearer token and loads the employee it names
// into the request context. Handlers read it via employee.CurrentFromContext.
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}
		employeeIDFloat, ok := claims["employee_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "employee_id missing in token"})
			return
		}

		// The employee is loaded fresh on every request: a deleted account or
		// revoked admin flag takes effect immediately, not at token expiry.
		emp, err := authSvc.GetEmployeeByID(uint(employeeIDFloat))
		if err != nil || emp == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "employee not found"})
			return
		}

		c.Set("employee", emp)
		c.Next()
	}
}

// RequireAdmin gates a route group to employees carrying the ADMIN role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		current, exists := c.Get("employee")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		emp, ok := current.(*employee.Employee)
		if !ok || !emp.HasRole(employee.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}
