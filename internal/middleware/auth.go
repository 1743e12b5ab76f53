package middleware

import (
	"net/http"
	"strings"

	"ayuteng_backend/internal/auth"
	"ayuteng_backend/internal/logger"
	"ayuteng_backend/internal/models"
	"ayuteng_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName      = "ayt_session"
	adminSessionCookieName = "ayt_admin_session"
)

// tokenFromRequest pulls the session token from the Authorization header,
// falling back to the named session cookie set at login.
func tokenFromRequest(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware requires an applicant session token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c, sessionCookieName)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if claims.Kind != auth.KindApplicant {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: applicant session required"})
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(contextkeys.UserIDKey), claims.UserID)
		c.Next()
	}
}

// AdminMiddleware requires an admin session token of any role.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c, adminSessionCookieName)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if claims.Kind != auth.KindAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admin session required"})
			return
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(contextkeys.AdminIDKey), claims.UserID)
		c.Set(string(contextkeys.RoleKey), claims.Role)
		c.Next()
	}
}

// RequireRoles restricts a route to the given admin roles.
func RequireRoles(roles ...models.AdminRole) gin.HandlerFunc {
	roleSet := make(map[models.AdminRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(string(contextkeys.RoleKey))
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		roleStr, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
			return
		}

		if !roleSet[models.AdminRole(roleStr)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role"})
			return
		}

		c.Next()
	}
}

// GetUserID extracts the applicant id from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(string(contextkeys.UserIDKey))
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}

// GetAdminID extracts the admin id from the gin context.
func GetAdminID(c *gin.Context) string {
	adminID, exists := c.Get(string(contextkeys.AdminIDKey))
	if !exists {
		return ""
	}

	id, ok := adminID.(string)
	if !ok {
		return ""
	}
	return id
}
