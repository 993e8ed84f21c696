package category

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

type Handler struct {
	service *Service
}

type createRequest struct {
	Nombre string `json:"nombre"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/categorias", h.list)
	app.Post("/categorias", h.create)
}

func (h *Handler) list(c *fiber.Ctx) error {
	categories, err := h.service.List()
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(categories)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El campo nombre es requerido"})
	}

	created, err := h.service.Create(payload.Nombre)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
