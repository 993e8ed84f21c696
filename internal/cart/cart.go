package cart

// Cart maps to the carritos table; one per user, created lazily on first add.
type Cart struct {
	ID        int `json:"id"`
	UsuarioID int `json:"usuario_id"`
}

// Item maps to carrito_items.
type Item struct {
	ID         int `json:"id"`
	CarritoID  int `json:"carrito_id"`
	ProductoID int `json:"producto_id"`
	Cantidad   int `json:"cantidad"`
}

// sanitizedItem is the projection returned after an add: internal row id is
// dropped.
type sanitizedItem struct {
	CarritoID  int `json:"carrito_id"`
	ProductoID int `json:"producto_id"`
	Cantidad   int `json:"cantidad"`
}

func sanitizeItem(it Item) sanitizedItem {
	return sanitizedItem{CarritoID: it.CarritoID, ProductoID: it.ProductoID, Cantidad: it.Cantidad}
}
