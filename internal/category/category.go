package category

// Category maps to the categorias table.
type Category struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}
