package user

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mercado-api/mercado-backend/internal/apperr"
	"github.com/mercado-api/mercado-backend/internal/auth"
)

type Handler struct {
	service  *Service
	secret   string
	tokenTTL time.Duration
}

type registerRequest struct {
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Direccion string `json:"direccion"`
	Avatar    string `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewHandler(service *Service, secret string, tokenTTL time.Duration) *Handler {
	return &Handler{service: service, secret: secret, tokenTTL: tokenTTL}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/usuarios", h.list)
	app.Post("/usuarios/registro", h.register)
	app.Post("/usuarios/login", h.login)
	app.Get("/usuarios/:id", h.get)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// direccion is the only optional field at registration
	if payload.Nombre == "" || payload.Email == "" || payload.Password == "" || payload.Avatar == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Los campos nombre, email, password y avatar son requeridos",
		})
	}
	if len(payload.Password) < 3 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "La contraseña debe tener al menos 3 caracteres",
		})
	}

	created, err := h.service.Register(User{
		Nombre:    payload.Nombre,
		Email:     payload.Email,
		Password:  payload.Password,
		Direccion: payload.Direccion,
		Avatar:    payload.Avatar,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(Sanitize(created))
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if payload.Email == "" || payload.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Los campos email y password son requeridos",
		})
	}

	u, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return apperr.Respond(c, err)
	}

	token, err := auth.NewToken(h.secret, u.ID, h.tokenTTL)
	if err != nil {
		return apperr.Respond(c, apperr.Wrap(apperr.Internal, "generando token", err))
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"usuario": Sanitize(u),
	})
}

func (h *Handler) list(c *fiber.Ctx) error {
	users, err := h.service.List()
	if err != nil {
		return apperr.Respond(c, err)
	}

	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, Sanitize(u))
	}
	return c.JSON(out)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, ErrNotFound)
	}

	u, err := h.service.GetByID(id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(Sanitize(u))
}
