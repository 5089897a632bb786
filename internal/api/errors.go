package api

import (
	"errors"   // Sentinel comparison
	"net/http" // HTTP status codes

	"pc_house/internal/middleware" // Request id key
	"pc_house/internal/store"      // Store errors

	"github.com/gin-gonic/gin"                   // Gin web framework
	"github.com/sirupsen/logrus"                 // Structured logging
	"go.mongodb.org/mongo-driver/bson/primitive" // Identifiers
)

// respondStoreError maps store failures onto distinct statuses.
// Unexpected errors are logged and hidden behind a generic 500.
func respondStoreError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + resource + " identifier"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	default:
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"resource":   resource,
			"route":      c.FullPath(),
			"error":      err.Error(),
		}).Error("Store operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// pathID parses the :id path parameter, answering 400 when it is malformed
func pathID(c *gin.Context, resource string) (primitive.ObjectID, bool) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		respondStoreError(c, err, resource)
		return primitive.NilObjectID, false
	}
	return id, true
}

// bindJSON binds and validates the body, answering 400 on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return false
	}
	return true
}

// orEmpty keeps list responses as [] rather than null
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
