package api

import (
	"net/http" // HTTP status codes

	"pc_house/internal/domain"     // Importing domain models
	"pc_house/internal/middleware" // Request identity
	"pc_house/internal/store"      // Document store

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateReviewRequest represents a customer review
type CreateReviewRequest struct {
	Author  string `json:"author" binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=5000"`
	Rating  int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// CreateReviewHandler stores a review under the caller's email
func CreateReviewHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReviewRequest
		if !bindJSON(c, &req) {
			return
		}
		email, _ := middleware.GetEmail(c)
		review := domain.Review{Author: req.Author, Email: email, Content: req.Content, Rating: req.Rating}
		res, err := st.InsertOne(c.Request.Context(), store.Reviews, review)
		if err != nil {
			respondStoreError(c, err, "Review")
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

// ListReviewsHandler returns every review
func ListReviewsHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []domain.Review
		if err := st.Find(c.Request.Context(), store.Reviews, nil, &reviews); err != nil {
			respondStoreError(c, err, "Review")
			return
		}
		c.JSON(http.StatusOK, orEmpty(reviews))
	}
}
