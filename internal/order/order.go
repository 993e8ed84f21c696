package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusPending is the state every order starts in. Later states are free
// text set by the seller through the status endpoints.
const StatusPending = "Pendiente"

// Order maps to the pedidos table. Total and the item price snapshots are
// fixed at creation; only Status changes afterwards.
type Order struct {
	ID         int             `json:"id"`
	UsuarioID  int             `json:"usuario_id"`
	VendedorID int             `json:"vendedor_id"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Item maps to pedido_items. PrecioUnitario is the product price captured at
// order time.
type Item struct {
	PedidoID       int             `json:"pedido_id"`
	ProductoID     int             `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// Row is the sanitized projection of the order listing: one row per item,
// joined with product display data and the buyer's name.
type Row struct {
	ID             int             `json:"id"`
	Total          decimal.Decimal `json:"total"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	ProductoID     int             `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Titulo         string          `json:"titulo"`
	Imagen         *string         `json:"imagen"`
	UsuarioNombre  string          `json:"usuario_nombre"`
}

// Filter selects orders by buyer and/or seller. Both nil means "no result",
// never "everything".
type Filter struct {
	UsuarioID  *int
	VendedorID *int
}
