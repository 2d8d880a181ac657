package server

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jotickets/jotickets/config"
	"github.com/jotickets/jotickets/internal/handlers"
	"github.com/jotickets/jotickets/internal/ledger"
	"github.com/jotickets/jotickets/internal/middleware"
	"github.com/jotickets/jotickets/internal/repository"
)

// Dependencies carries everything the router needs. Repositories are
// interfaces so tests can run the full routing table against in-memory
// implementations.
type Dependencies struct {
	Users    repository.UserRepository
	Stadiums repository.StadiumRepository
	Teams    repository.TeamRepository
	Events   repository.EventRepository
	Tickets  repository.TicketRepository

	JWTSecret        string
	ScannerDeviceKey string
}

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET not configured")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	deps := Dependencies{
		Users:            repository.NewUserRepository(db),
		Stadiums:         repository.NewStadiumRepository(db),
		Teams:            repository.NewTeamRepository(db),
		Events:           repository.NewEventRepository(db),
		Tickets:          repository.NewTicketRepository(db),
		JWTSecret:        cfg.JWTSecret,
		ScannerDeviceKey: cfg.ScannerDeviceKey,
	}

	r := NewRouter(deps)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.WithField("port", port).Info("starting server")
	return r.Run(":" + port)
}

func NewRouter(deps Dependencies) *gin.Engine {
	ledgerService := ledger.NewService(deps.Events, deps.Tickets)

	authHandler := handlers.NewAuthHandler(deps.Users, deps.JWTSecret)
	catalogHandler := handlers.NewCatalogHandler(deps.Stadiums, deps.Teams, deps.Events)
	ticketHandler := handlers.NewTicketHandler(ledgerService, deps.ScannerDeviceKey)
	adminHandler := handlers.NewAdminHandler(deps.Users, deps.Stadiums, deps.Teams, deps.Events, deps.JWTSecret)

	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/gestion/login/")
	})

	public := r.Group("/api")
	{
		public.GET("/csrf-token/", authHandler.CSRFToken)
		public.GET("/stadiums/", catalogHandler.ListStadiums)
		public.GET("/teams/", catalogHandler.ListTeams)
		public.GET("/events/", catalogHandler.ListEvents)
		public.POST("/register/", authHandler.Register)
		public.POST("/login/", authHandler.Login)
	}

	session := r.Group("/api")
	session.Use(middleware.Authenticate(deps.JWTSecret))
	{
		session.POST("/logout/", authHandler.Logout)
		session.POST("/buyTicket/", ticketHandler.BuyTicket)
		session.GET("/tickets/", ticketHandler.ListTickets)
		session.GET("/getInfo/:ticket_id/", ticketHandler.GetInfo)
	}

	staff := r.Group("/api")
	staff.Use(middleware.Authenticate(deps.JWTSecret), middleware.RequireStaff())
	{
		staff.GET("/validateTicket/:ticket_id/", ticketHandler.ValidateTicket)
		staff.POST("/validateTicket/:ticket_id/", ticketHandler.ValidateTicket)
	}

	// Scanner devices authenticate with a shared key instead of a session,
	// so the handler does its own gate check.
	scanner := r.Group("/api")
	scanner.Use(middleware.AuthenticateOptional(deps.JWTSecret))
	{
		scanner.GET("/tickets/verify/:uuid/", ticketHandler.VerifyTicket)
	}

	gestion := r.Group("/gestion")
	gestion.Use(middleware.AuthenticateOptional(deps.JWTSecret))
	{
		gestion.GET("/login/", adminHandler.LoginPage)
		gestion.POST("/login/", adminHandler.Login)
	}

	console := r.Group("/gestion")
	console.Use(middleware.AuthenticateOptional(deps.JWTSecret), middleware.RequireStaffPage("/gestion/login/"))
	{
		console.GET("/matches/", adminHandler.Matches)
		console.POST("/matches/", adminHandler.SubmitMatches)
		console.POST("/matches/:id/edit/", adminHandler.EditMatch)
		console.POST("/matches/:id/delete/", adminHandler.DeleteMatch)
		console.POST("/logout/", adminHandler.Logout)
	}

	return r
}
