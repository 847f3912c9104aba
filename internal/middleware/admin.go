package middleware

import (
	"net/http"

	"neroli_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

const AdminCookieName = "admin_token"

// AdminRequired valide le cookie de session admin (HTTP-only, SameSite strict).
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AdminCookieName)
		if err != nil || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session admin manquante"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session admin invalide"})
			c.Abort()
			return
		}

		if role, _ := claims["role"].(string); role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
			c.Abort()
			return
		}

		c.Set("admin_id", claims["admin_id"])
		c.Set("email", claims["email"])
		c.Set("role", "admin")

		c.Next()
	}
}
