package product

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/mercado-api/mercado-backend/internal/apperr"
	"github.com/mercado-api/mercado-backend/internal/auth"
)

type Handler struct {
	service *Service
}

type createRequest struct {
	Titulo      string           `json:"titulo"`
	Descripcion string           `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	CategoriaID *int             `json:"categoria_id"`
	VendedorID  *int             `json:"vendedor_id"`
	Size        *string          `json:"size"`
	Stock       *int             `json:"stock"`
	Imagen      *string          `json:"imagen"`
}

type updateRequest struct {
	Titulo      *string          `json:"titulo"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	CategoriaID *int             `json:"categoria_id"`
	Size        *string          `json:"size"`
	Stock       *int             `json:"stock"`
	Imagen      *string          `json:"imagen"`
}

type rateRequest struct {
	Rating int `json:"rating"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers /productos/filtros before /productos/:id so
// the literal segment wins the match.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/productos", h.list)
	app.Get("/productos/filtros", h.filter)
	app.Post("/productos", h.create)
	app.Get("/productos/:id", h.get)
	app.Put("/productos/:id", h.update)
	app.Delete("/productos/:id", h.delete)
}

// RegisterProtectedRoutes guards rating behind the bearer-token middleware.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	app.Post("/productos/:id/calificar", authMiddleware, h.rate)
}

func (h *Handler) list(c *fiber.Ctx) error {
	params := ListParams{Limit: 100, Page: 1, OrderBy: c.Query("order_by")}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperr.Respond(c, ErrInvalidPagination)
		}
		params.Limit = n
	}
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperr.Respond(c, ErrInvalidPagination)
		}
		params.Page = n
	}
	if v := c.Query("vendedor_id"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parámetro vendedor_id inválido"})
		}
		params.VendedorID = &n
	}

	products, err := h.service.List(params)
	if err != nil {
		return apperr.Respond(c, err)
	}
	total, err := h.service.Count()
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(NewListResponse(total, products))
}

func (h *Handler) filter(c *fiber.Ctx) error {
	var f Filters

	if v := c.Query("precio_max"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parámetro precio_max inválido"})
		}
		f.PrecioMax = &d
	}
	if v := c.Query("precio_min"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parámetro precio_min inválido"})
		}
		f.PrecioMin = &d
	}
	if v := c.Query("categoria"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parámetro categoria inválido"})
		}
		f.CategoriaID = &n
	}
	if v := c.Query("vendedor"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Parámetro vendedor inválido"})
		}
		f.VendedorID = &n
	}

	products, err := h.service.Filter(f)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(products)
}

func (h *Handler) create(c *fiber.Ctx) error {
	payload := new(createRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if payload.Titulo == "" || payload.Descripcion == "" || payload.Precio == nil ||
		payload.CategoriaID == nil || payload.VendedorID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Faltan datos obligatorios"})
	}
	if payload.Precio.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "El precio no puede ser negativo"})
	}

	created, err := h.service.Create(Product{
		Titulo:      payload.Titulo,
		Descripcion: payload.Descripcion,
		Precio:      *payload.Precio,
		CategoriaID: *payload.CategoriaID,
		VendedorID:  *payload.VendedorID,
		Size:        payload.Size,
		Stock:       payload.Stock,
		Imagen:      payload.Imagen,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, ErrNotFound)
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, ErrNotFound)
	}

	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := h.service.Update(id, Update{
		Titulo:      payload.Titulo,
		Descripcion: payload.Descripcion,
		Precio:      payload.Precio,
		CategoriaID: payload.CategoriaID,
		Size:        payload.Size,
		Stock:       payload.Stock,
		Imagen:      payload.Imagen,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, ErrNotFound)
	}

	if err := h.service.Delete(id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) rate(c *fiber.Ctx) error {
	productoID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperr.Respond(c, ErrNotFound)
	}

	usuarioID, err := auth.UserID(c)
	if err != nil {
		return apperr.Respond(c, err)
	}

	payload := new(rateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rt, err := h.service.Rate(productoID, usuarioID, payload.Rating)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rt)
}
