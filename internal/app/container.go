package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/campusconnect/venue-booking-backend/internal/api"
	"github.com/campusconnect/venue-booking-backend/internal/auth"
	"github.com/campusconnect/venue-booking-backend/internal/booking"
	"github.com/campusconnect/venue-booking-backend/internal/config"
	"github.com/campusconnect/venue-booking-backend/internal/faculty"
	"github.com/campusconnect/venue-booking-backend/internal/mailer"
	"github.com/campusconnect/venue-booking-backend/internal/notify"
	"github.com/campusconnect/venue-booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Hub        *notify.Hub
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	hub := notify.NewHub()

	// Decision emails go over SMTP when configured, otherwise to the log.
	var decisionMailer booking.DecisionMailer
	if cfg.SMTPHost != "" {
		m, err := mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
		})
		if err != nil {
			return nil, err
		}
		decisionMailer = m
	} else {
		logrus.Info("SMTP not configured, decision emails will be logged")
		decisionMailer = mailer.NewLogMailer()
	}

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher, cfg.AllowedEmailDomain)

	// Faculty Module
	facultyRepo := faculty.NewPgxRepository(pool)
	facultyService := faculty.NewService(facultyRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, hub, decisionMailer)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		BookingService: bookingService,
		FacultyService: facultyService,
		Hub:            hub,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Hub:        hub,
	}, nil
}
