package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	authRepo "github.com/kickstarthq/talent-backend/internal/modules/auth/repository"
)

// Claims carries the account role next to the registered subject so
// role-gated routes don't need a DB round trip.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	accountRepo authRepo.AccountRepository
	secret      string
}

func NewAuthMiddleware(accountRepo authRepo.AccountRepository) *AuthMiddleware {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me"
	}

	return &AuthMiddleware{
		accountRepo: accountRepo,
		secret:      secret,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		// Fallback to query parameter "token" (useful for WebSockets)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(m.secret), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			c.Abort()
			return
		}

		c.Set("account_id", claims.Subject)
		c.Set("account_role", claims.Role)
		c.Next()
	}
}

// RequireRole gates a route to one actor role based on the token claim.
func (m *AuthMiddleware) RequireRole(role entity.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimed := c.GetString("account_role")
		if claimed != string(role) {
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("%s access required", role)})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin re-checks the role against the database so a demoted admin
// can't keep using an old token.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID, exists := c.Get("account_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			c.Abort()
			return
		}

		account, err := m.accountRepo.FindByID(c.Request.Context(), accountID.(string))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			c.Abort()
			return
		}

		if account.Role != entity.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Set("account", account)
		c.Next()
	}
}

// ActorFromContext builds the acting identity from the auth claims.
func ActorFromContext(c *gin.Context) (entity.Actor, error) {
	id, err := uuid.Parse(c.GetString("account_id"))
	if err != nil {
		return entity.Actor{}, err
	}
	return entity.Actor{
		ID:   id,
		Role: entity.AccountRole(c.GetString("account_role")),
	}, nil
}
