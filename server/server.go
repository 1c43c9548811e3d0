package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/rsmanito/expense-cards/config"
	"github.com/rsmanito/expense-cards/models"
)

type Service interface {
	RegisterUser(context.Context, *models.RegisterUserRequest) error
	LoginUser(context.Context, *models.LoginUserRequest) (*models.UserLoginResponse, error)
	RefreshToken(context.Context, *models.RefreshTokenRequest) (*models.UserLoginResponse, error)
	GetUser(context.Context) (*models.User, error)

	ListCards(context.Context) ([]models.Card, error)
	CreateCard(context.Context, *models.CardCreateRequest) (*models.Card, error)
	GetCard(context.Context, string) (*models.Card, error)
	DeleteCard(context.Context, string) error
	MatchCard(context.Context, string) (*models.CardMatchResponse, error)
}

type Server struct {
	service Service
	cfg     *config.Config
	router  *fiber.App
}

// New returns a new Server.
func New(svc Service, cfg *config.Config) *Server {
	server := &Server{
		service: svc,
		cfg:     cfg,
		router: fiber.New(fiber.Config{
			StructValidator: models.NewStructValidator(),
		}),
	}

	server.router.Use(recover.New())
	server.router.Use(logger.New())
	server.router.Use(cors.New())

	server.registerRoutes()

	return server
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api/v1")
	auth := api.Group("/auth")
	{
		auth.Post("/register", s.handleRegister)
		auth.Post("/login", s.handleLogin)
		auth.Post("/refresh", s.handleRefreshToken)
	}

	jwtMiddleware := JWTMiddleware(s.cfg.JWT_SIGNING_KEY)

	me := api.Group("/me", jwtMiddleware)
	{
		me.Get("/", s.handleMe)
	}

	cards := api.Group("/cards", jwtMiddleware)
	{
		cards.Get("/", s.handleListCards)
		cards.Post("/", s.handleCreateCard)
		cards.Get("/match/:last_four", s.handleMatchCard)
		cards.Get("/:id", s.handleGetCard)
		cards.Delete("/:id", s.handleDeleteCard)
	}
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.router
}

func (s *Server) Run(listenAddr string) error {
	return s.router.Listen(listenAddr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.router.ShutdownWithContext(ctx)
}

// detail writes the error body shape every client of this API reads.
func detail(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// bindError converts a body binding failure into a response.
func bindError(c fiber.Ctx, err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": verr.Error(),
			"errors": verr.Fields,
		})
	}
	return detail(c, fiber.StatusBadRequest, err.Error())
}

func (s *Server) handleRegister(c fiber.Ctx) error {
	r := &models.RegisterUserRequest{}

	if err := c.Bind().JSON(r); err != nil {
		return bindError(c, err)
	}

	if err := s.service.RegisterUser(c.Context(), r); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return detail(c, fiber.StatusConflict, err.Error())
		}
		return detail(c, fiber.StatusInternalServerError, "failed to register user")
	}

	return c.SendStatus(fiber.StatusCreated)
}

func (s *Server) handleLogin(c fiber.Ctx) error {
	r := &models.LoginUserRequest{}

	if err := c.Bind().JSON(r); err != nil {
		return bindError(c, err)
	}

	res, err := s.service.LoginUser(c.Context(), r)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCreds) {
			return detail(c, http.StatusBadRequest, err.Error())
		}
		return detail(c, fiber.StatusInternalServerError, "failed to authorize")
	}

	return c.Status(http.StatusOK).JSON(res)
}

func (s *Server) handleRefreshToken(c fiber.Ctx) error {
	r := &models.RefreshTokenRequest{}

	if err := c.Bind().JSON(r); err != nil {
		return bindError(c, err)
	}

	res, err := s.service.RefreshToken(c.Context(), r)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCreds) || errors.Is(err, models.ErrTokensExpired) {
			return detail(c, fiber.StatusUnauthorized, err.Error())
		}
		return detail(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(res)
}

func (s *Server) handleMe(c fiber.Ctx) error {
	user, err := s.service.GetUser(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(user)
}

// serviceError maps service sentinels onto HTTP statuses.
func serviceError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidCreds):
		return detail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrCardNotFound):
		return detail(c, fiber.StatusNotFound, "Card not found")
	case errors.Is(err, models.ErrCardExists):
		return detail(c, fiber.StatusBadRequest, "Card with these last 4 digits already exists")
	default:
		log.Default().Println("Request failed: ", err)
		return detail(c, fiber.StatusInternalServerError, err.Error())
	}
}
