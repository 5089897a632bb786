package middleware

import (
	"context"  // Store lookups
	"errors"   // Sentinel comparison
	"net/http" // HTTP status codes

	"pc_house/internal/domain" // Importing domain models
	"pc_house/internal/store"  // Document store

	"github.com/gin-gonic/gin"         // Gin web framework
	"github.com/sirupsen/logrus"       // Structured logging
	"go.mongodb.org/mongo-driver/bson" // Filters
)

// Gate resolves the role of a verified identity from the user collection.
// Every check is a fresh store read.
type Gate struct {
	st store.Store
}

// NewGate creates a Gate reading accounts from st
func NewGate(st store.Store) *Gate {
	return &Gate{st: st}
}

// Role returns the role of the account registered under email.
// store.ErrNotFound is returned when no such account exists.
func (g *Gate) Role(ctx context.Context, email string) (domain.Role, error) {
	var user domain.User
	if err := g.st.FindOne(ctx, store.Users, bson.M{"email": email}, &user); err != nil {
		return domain.RoleUser, err
	}
	return user.EffectiveRole(), nil
}

// Allows reports whether the account registered under email holds perm.
// An unregistered account holds no permissions.
func (g *Gate) Allows(ctx context.Context, email string, perm domain.Permission) (bool, error) {
	role, err := g.Role(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role.Can(perm), nil
}

// RequirePermission checks the caller's role from the database on each request.
// It must run after JWTAuthMiddleware.
func RequirePermission(gate *Gate, perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := GetEmail(c) // Get email from context
		// Check if the identity was verified
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		allowed, err := gate.Allows(c.Request.Context(), email, perm)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey),
				"email":      email,
				"error":      err.Error(),
			}).Error("Role lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		// Unregistered accounts and non-admins are both forbidden
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
