package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache lifetime

	"pc_house/internal/domain"     // Importing domain models
	"pc_house/internal/middleware" // Request id and identity
	"pc_house/internal/store"      // Document store
	"pc_house/internal/utils"      // Cache

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Catalog cache keys
const partsCacheKey = "parts:all"

func partCacheKey(id string) string {
	return "part:" + id
}

// CreatePartRequest represents a new catalog entry
type CreatePartRequest struct {
	Name              string         `json:"name" binding:"required,max=200"`   // Part name
	Price             float64        `json:"price" binding:"required,gt=0"`     // Unit price
	Description       string         `json:"description" binding:"max=5000"`    // Long description
	Image             string         `json:"image" binding:"omitempty,url"`     // Image URL
	AvailableQuantity int            `json:"availableQuantity" binding:"gte=0"` // Stock
	MinimumQuantity   int            `json:"minimumQuantity" binding:"gte=0"`   // Minimum order size
	Specs             map[string]any `json:"specs"`                             // Free-form specification sheet
}

// ListPartsHandler returns the whole catalog
func ListPartsHandler(st store.Store, cache utils.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var parts []domain.Part // Slice to hold parts
		// If cached data found, return it
		if found, err := cache.Get(ctx, partsCacheKey, &parts); err == nil && found {
			c.JSON(http.StatusOK, orEmpty(parts))
			return
		}
		// Fetch every part
		if err := st.Find(ctx, store.Parts, nil, &parts); err != nil {
			respondStoreError(c, err, "Part")
			return
		}
		parts = orEmpty(parts)
		_ = cache.Set(ctx, partsCacheKey, parts, ttl) // Cache the catalog for future requests
		c.JSON(http.StatusOK, parts)
	}
}

// GetPartHandler returns a single part
func GetPartHandler(st store.Store, cache utils.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "Part")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		key := partCacheKey(id.Hex())
		var part domain.Part
		if found, err := cache.Get(ctx, key, &part); err == nil && found {
			c.JSON(http.StatusOK, part)
			return
		}
		if err := st.FindOne(ctx, store.Parts, store.ByID(id), &part); err != nil {
			respondStoreError(c, err, "Part")
			return
		}
		_ = cache.Set(ctx, key, part, ttl)
		c.JSON(http.StatusOK, part)
	}
}

// CreatePartHandler inserts a part; admin only
func CreatePartHandler(st store.Store, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePartRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		part := domain.Part{
			Name:              req.Name,
			Price:             req.Price,
			Description:       req.Description,
			Image:             req.Image,
			AvailableQuantity: req.AvailableQuantity,
			MinimumQuantity:   req.MinimumQuantity,
			Specs:             req.Specs,
		}
		ctx := c.Request.Context()
		res, err := st.InsertOne(ctx, store.Parts, part)
		if err != nil {
			respondStoreError(c, err, "Part")
			return
		}
		_ = cache.Delete(ctx, partsCacheKey) // Invalidate catalog cache
		email, _ := middleware.GetEmail(c)
		// Log catalog change
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"part_id":    res.InsertedID,
			"admin":      email,
			"timestamp":  time.Now().Format(time.RFC3339),
		}).Info("Part created")
		c.JSON(http.StatusCreated, res)
	}
}

// DeletePartHandler removes a part; admin only
func DeletePartHandler(st store.Store, cache utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "Part")
		if !ok {
			return
		}
		ctx := c.Request.Context()
		res, err := st.DeleteOne(ctx, store.Parts, store.ByID(id))
		if err != nil {
			respondStoreError(c, err, "Part")
			return
		}
		_ = cache.Delete(ctx, partsCacheKey, partCacheKey(id.Hex())) // Invalidate catalog and item cache
		email, _ := middleware.GetEmail(c)
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"part_id":    id.Hex(),
			"admin":      email,
			"deleted":    res.DeletedCount,
		}).Info("Part deleted")
		c.JSON(http.StatusOK, res)
	}
}
