package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache lifetime

	"pc_house/internal/domain"     // Permissions
	"pc_house/internal/metrics"    // Prometheus instrumentation
	"pc_house/internal/middleware" // Auth, request id and logging middleware
	"pc_house/internal/payment"    // Payment gateway
	"pc_house/internal/store"      // Document store
	"pc_house/internal/utils"      // Tokens and cache

	"github.com/gin-contrib/cors" // CORS
	"github.com/gin-gonic/gin"    // Gin web framework
)

// Greeting is served on the root path
const Greeting = "Hello PC House...Hi"

// Deps are the collaborators shared by every handler, built once at start
type Deps struct {
	Store    store.Store         // Document store
	Tokens   *utils.TokenManager // Token issuer and verifier
	Cache    utils.Cache         // Catalog cache
	CacheTTL time.Duration       // Catalog cache lifetime
	Gateway  payment.Gateway     // Payment intents
	Currency string              // Payment intent currency
}

// NewRouter builds the gin engine with the middleware stack and all routes
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),                   // Turn panics into 500s
		middleware.RequestIDMiddleware(), // Request correlation
		middleware.LoggerMiddleware(),    // Access log
		metrics.Middleware(),             // Request metrics
		cors.Default(),                   // Browser storefront runs on another origin
	)
	RegisterRoutes(r, d)
	return r
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Cache == nil {
		d.Cache = utils.NoopCache{}
	}
	if d.Currency == "" {
		d.Currency = "usd"
	}
	gate := middleware.NewGate(d.Store)
	auth := middleware.JWTAuthMiddleware(d.Tokens)
	manageCatalog := middleware.RequirePermission(gate, domain.PermManageCatalog)
	manageUsers := middleware.RequirePermission(gate, domain.PermManageUsers)

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, Greeting) })
	r.GET("/metrics", metrics.Handler())

	// Part routes, public reads and admin writes
	listParts := ListPartsHandler(d.Store, d.Cache, d.CacheTTL)
	r.GET("/part", listParts)
	r.GET("/parts", listParts)
	r.GET("/part/:id", GetPartHandler(d.Store, d.Cache, d.CacheTTL))
	r.POST("/part", auth, manageCatalog, CreatePartHandler(d.Store, d.Cache))
	r.DELETE("/part/:id", auth, manageCatalog, DeletePartHandler(d.Store, d.Cache))

	// Order routes, creation is public and everything else is owner scoped
	r.POST("/order", CreateOrderHandler(d.Store))
	r.GET("/order", auth, ListOrdersHandler(d.Store))
	r.GET("/order/:id", auth, GetOrderHandler(d.Store, gate))
	r.PATCH("/order/:id", auth, ConfirmPaymentHandler(d.Store))
	r.DELETE("/orders/:id", auth, DeleteOrderHandler(d.Store, gate))

	// User routes
	r.GET("/user", auth, ListUsersHandler(d.Store))
	r.PUT("/user/:email", UpsertUserHandler(d.Store, d.Tokens))
	r.PUT("/user/admin/:email", auth, manageUsers, PromoteAdminHandler(d.Store))
	r.DELETE("/user/:id", auth, manageUsers, DeleteUserHandler(d.Store))
	r.GET("/admin/:email", CheckAdminHandler(gate))

	// Reviews and profiles
	r.POST("/review", auth, CreateReviewHandler(d.Store))
	r.GET("/reviews", ListReviewsHandler(d.Store))
	r.POST("/profile", auth, CreateProfileHandler(d.Store))
	r.GET("/profile/:id", auth, GetProfileHandler(d.Store))

	// Payment gateway
	r.POST("/create-payment-intent", auth, CreatePaymentIntentHandler(d.Gateway, d.Currency))
}
