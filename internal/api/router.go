package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campusconnect/venue-booking-backend/internal/auth"
	"github.com/campusconnect/venue-booking-backend/internal/booking"
	bookingHttp "github.com/campusconnect/venue-booking-backend/internal/booking/http"
	"github.com/campusconnect/venue-booking-backend/internal/faculty"
	facultyHttp "github.com/campusconnect/venue-booking-backend/internal/faculty/http"
	"github.com/campusconnect/venue-booking-backend/internal/notify"
	notifyHttp "github.com/campusconnect/venue-booking-backend/internal/notify/http"
	"github.com/campusconnect/venue-booking-backend/internal/user"
	userHttp "github.com/campusconnect/venue-booking-backend/internal/user/http"
)

// Config bundles the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	BookingService booking.Service
	FacultyService faculty.Service
	Hub            *notify.Hub
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081",
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the token carries the admin claim.
	adminMiddleware := auth.AdminRequired()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	facultyHandler := facultyHttp.NewHandler(cfg.FacultyService)
	notifyHandler := notifyHttp.NewHandler(cfg.Hub)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		facultyHttp.RegisterRoutes(v1, facultyHandler, authMiddleware)
		notifyHttp.RegisterRoutes(v1, notifyHandler, authMiddleware, adminMiddleware)
	}

	return r
}
