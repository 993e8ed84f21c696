package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/pedidos/crear", h.create)
	app.Get("/pedidos", h.list)
	// Registered before /:id/estado so "actualizar-estado" is never read as an id.
	app.Put("/pedidos/actualizar-estado", h.updateStatusByBody)
	app.Put("/pedidos/:id/estado", h.updateStatusByParam)
	app.Get("/pedidos/usuario/:id", h.listByUser)
}

// Pointer fields distinguish absent values from zero values.
type cartItemRequest struct {
	ProductoID *int             `json:"producto_id"`
	Cantidad   *int             `json:"cantidad"`
	Precio     *decimal.Decimal `json:"precio"`
	VendedorID *int             `json:"vendedor_id"`
}

type createRequest struct {
	UsuarioID *int              `json:"usuario_id"`
	Carrito   []cartItemRequest `json:"carrito"`
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if payload.UsuarioID == nil || len(payload.Carrito) == 0 {
		return apperr.Respond(c, ErrEmptyCart)
	}

	cart := make([]CartItem, 0, len(payload.Carrito))
	for _, it := range payload.Carrito {
		if it.ProductoID == nil || it.Cantidad == nil || it.Precio == nil || it.VendedorID == nil {
			return apperr.Respond(c, ErrEmptyCart)
		}
		cart = append(cart, CartItem{
			ProductoID: *it.ProductoID,
			Cantidad:   *it.Cantidad,
			Precio:     *it.Precio,
			VendedorID: *it.VendedorID,
		})
	}

	ord, err := h.service.CreateFromCart(*payload.UsuarioID, cart)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Pedido creado exitosamente",
		"pedido":  ord,
	})
}

func (h *Handler) list(c *fiber.Ctx) error {
	var f Filter
	if v := c.Query("usuario_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El parámetro usuario_id debe ser numérico"})
		}
		f.UsuarioID = &id
	}
	if v := c.Query("vendedor_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El parámetro vendedor_id debe ser numérico"})
		}
		f.VendedorID = &id
	}

	rows, err := h.service.ListRows(f)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(rows)
}

type statusByBodyRequest struct {
	PedidoID    *int   `json:"pedido_id"`
	NuevoEstado string `json:"nuevo_estado"`
}

func (h *Handler) updateStatusByBody(c *fiber.Ctx) error {
	payload := new(statusByBodyRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if payload.PedidoID == nil || payload.NuevoEstado == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Los campos pedido_id y nuevo_estado son requeridos",
		})
	}

	ord, err := h.service.UpdateStatus(*payload.PedidoID, payload.NuevoEstado)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Estado actualizado correctamente",
		"pedido":  ord,
	})
}

type statusByParamRequest struct {
	Estado string `json:"estado"`
}

func (h *Handler) updateStatusByParam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El parámetro id debe ser numérico"})
	}

	payload := new(statusByParamRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if payload.Estado == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El campo estado es requerido"})
	}

	ord, err := h.service.UpdateStatus(id, payload.Estado)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Estado actualizado correctamente",
		"pedido":  ord,
	})
}

func (h *Handler) listByUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El parámetro id debe ser numérico"})
	}

	orders, err := h.service.ListByUser(id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(orders)
}
