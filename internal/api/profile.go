package api

import (
	"net/http" // HTTP status codes

	"pc_house/internal/domain"     // Importing domain models
	"pc_house/internal/middleware" // Request identity
	"pc_house/internal/store"      // Document store

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateProfileRequest represents the caller's profile fields
type CreateProfileRequest struct {
	Name      string `json:"name" binding:"max=200"`
	Phone     string `json:"phone" binding:"max=50"`
	Location  string `json:"location" binding:"max=200"`
	Education string `json:"education" binding:"max=200"`
	LinkedIn  string `json:"linkedIn" binding:"omitempty,url"`
}

// CreateProfileHandler stores a profile owned by the caller
func CreateProfileHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProfileRequest
		if !bindJSON(c, &req) {
			return
		}
		email, _ := middleware.GetEmail(c)
		profile := domain.Profile{
			Email:     email, // Always the verified identity
			Name:      req.Name,
			Phone:     req.Phone,
			Location:  req.Location,
			Education: req.Education,
			LinkedIn:  req.LinkedIn,
		}
		res, err := st.InsertOne(c.Request.Context(), store.Profiles, profile)
		if err != nil {
			respondStoreError(c, err, "Profile")
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

// GetProfileHandler returns a single profile
func GetProfileHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "Profile")
		if !ok {
			return
		}
		var profile domain.Profile
		if err := st.FindOne(c.Request.Context(), store.Profiles, store.ByID(id), &profile); err != nil {
			respondStoreError(c, err, "Profile")
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
