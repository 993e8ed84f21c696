package cart

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mercado-api/mercado-backend/internal/apperr"
	"github.com/mercado-api/mercado-backend/internal/product"
	"github.com/mercado-api/mercado-backend/internal/user"
)

// Handler validates cart additions against the user and product services
// before delegating to the cart service.
type Handler struct {
	service  *Service
	users    *user.Service
	products *product.Service
}

type addRequest struct {
	UsuarioID  int `json:"usuario_id"`
	ProductoID int `json:"producto_id"`
	Cantidad   int `json:"cantidad"`
}

func NewHandler(service *Service, users *user.Service, products *product.Service) *Handler {
	return &Handler{service: service, users: users, products: products}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/carrito", h.add)
}

func (h *Handler) add(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if payload.UsuarioID == 0 || payload.ProductoID == 0 || payload.Cantidad <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Los campos usuario_id, producto_id y cantidad son requeridos",
		})
	}

	if _, err := h.users.GetByID(payload.UsuarioID); err != nil {
		return apperr.Respond(c, err)
	}
	if _, err := h.products.GetByID(payload.ProductoID); err != nil {
		return apperr.Respond(c, err)
	}

	item, err := h.service.AddProduct(payload.UsuarioID, payload.ProductoID, payload.Cantidad)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sanitizeItem(item))
}
