package api

import (
	"errors"   // Sentinel comparison
	"io"       // Empty body detection
	"net/http" // HTTP status codes
	"strings"  // Email normalisation

	"pc_house/internal/domain"     // Importing domain models
	"pc_house/internal/middleware" // Identity and gate
	"pc_house/internal/store"      // Document store
	"pc_house/internal/utils"      // Token issuer

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Path parameter validation
	"github.com/sirupsen/logrus"             // Logging library
	"go.mongodb.org/mongo-driver/bson"       // Filters
)

var validate = validator.New()

// UpsertUserRequest holds the fields a user may set about themselves.
// It has no role field, so re-upserting never grants or clears admin.
type UpsertUserRequest struct {
	Name string `json:"name" binding:"max=200"` // Display name
}

// userUpsert is the $set document of PUT /user/:email
type userUpsert struct {
	Email string `bson:"email"`
	Name  string `bson:"name,omitempty"`
}

// UpsertResponse is the upsert acknowledgment plus a freshly issued token
type UpsertResponse struct {
	Result store.UpdateResult `json:"result"` // Upsert acknowledgment
	Token  string             `json:"token"`  // Bearer token for the upserted email
}

// pathEmail validates the :email path parameter, answering 400 when malformed
func pathEmail(c *gin.Context) (string, bool) {
	email := strings.TrimSpace(c.Param("email"))
	if err := validate.Var(email, "required,email"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return "", false
	}
	return email, true
}

// ListUsersHandler returns every account
func ListUsersHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User
		if err := st.Find(c.Request.Context(), store.Users, nil, &users); err != nil {
			respondStoreError(c, err, "User")
			return
		}
		c.JSON(http.StatusOK, orEmpty(users))
	}
}

// UpsertUserHandler creates or updates the account keyed by email and issues a token for it
func UpsertUserHandler(st store.Store, tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := pathEmail(c)
		if !ok {
			return
		}
		var req UpsertUserRequest
		// An empty body is a plain sign-in
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
		res, err := st.UpdateOne(c.Request.Context(), store.Users, bson.M{"email": email}, userUpsert{Email: email, Name: req.Name}, true)
		if err != nil {
			respondStoreError(c, err, "User")
			return
		}
		token, err := tokens.GenerateJWT(email) // Issue the bearer token
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString(middleware.RequestIDKey),
				"email":      email,
				"error":      err.Error(),
			}).Error("Failed to generate token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, UpsertResponse{Result: res, Token: token})
	}
}

// PromoteAdminHandler grants the admin role to an existing account
func PromoteAdminHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := pathEmail(c)
		if !ok {
			return
		}
		res, err := st.UpdateOne(c.Request.Context(), store.Users, bson.M{"email": email}, bson.M{"role": string(domain.RoleAdmin)}, false)
		if err != nil {
			respondStoreError(c, err, "User")
			return
		}
		// Promotion never creates accounts
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		by, _ := middleware.GetEmail(c)
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"email":      email,
			"by":         by,
		}).Info("User promoted to admin")
		c.JSON(http.StatusOK, res)
	}
}

// DeleteUserHandler removes an account by identifier
func DeleteUserHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "User")
		if !ok {
			return
		}
		res, err := st.DeleteOne(c.Request.Context(), store.Users, store.ByID(id))
		if err != nil {
			respondStoreError(c, err, "User")
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// CheckAdminHandler reports whether an email belongs to an admin; unknown emails are not admins
func CheckAdminHandler(gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		role, err := gate.Role(c.Request.Context(), email)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			respondStoreError(c, err, "User")
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": err == nil && role == domain.RoleAdmin})
	}
}
