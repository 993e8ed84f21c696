package product

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Product maps to the productos table. Rating is the average over
// calificaciones, computed by the listing queries (0 when unrated).
type Product struct {
	ID          int             `json:"id"`
	Titulo      string          `json:"titulo"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	CategoriaID int             `json:"categoria_id"`
	VendedorID  int             `json:"vendedor_id"`
	Size        *string         `json:"size,omitempty"`
	Stock       *int            `json:"stock,omitempty"`
	Imagen      *string         `json:"imagen,omitempty"`
	Rating      decimal.Decimal `json:"rating"`
}

// Update carries the fields of a partial product update; nil means "leave
// unchanged".
type Update struct {
	Titulo      *string
	Descripcion *string
	Precio      *decimal.Decimal
	CategoriaID *int
	Size        *string
	Stock       *int
	Imagen      *string
}

// Rating is one user's score for a product, unique per (producto, usuario).
type Rating struct {
	ProductoID int `json:"producto_id"`
	UsuarioID  int `json:"usuario_id"`
	Rating     int `json:"rating"`
}

// Link is the HATEOAS self reference attached to listed products.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type listItem struct {
	Product
	Links []Link `json:"links"`
}

// ListResponse is the paginated listing envelope: Total is the unfiltered
// catalog count, Data the requested page with self links.
type ListResponse struct {
	Total int        `json:"total"`
	Data  []listItem `json:"data"`
}

func NewListResponse(total int, products []Product) ListResponse {
	data := make([]listItem, 0, len(products))
	for _, p := range products {
		data = append(data, listItem{
			Product: p,
			Links:   []Link{{Rel: "self", Href: "/productos/" + strconv.Itoa(p.ID)}},
		})
	}
	return ListResponse{Total: total, Data: data}
}
