package product

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

var (
	ErrInvalidPagination = apperr.New(apperr.Validation, "Parámetros de paginación inválidos")
	ErrInvalidOrderBy    = apperr.New(apperr.Validation, "Parámetro order_by inválido")
)

// ListParams drive the paginated listing. Page is 1-based; OrderBy is a
// token like "precio_ASC" resolved against the allow-list below.
type ListParams struct {
	Limit      int
	Page       int
	OrderBy    string
	VendedorID *int
}

// Filters drive the unpaginated filtered listing; each present field adds
// one conjunctive predicate.
type Filters struct {
	PrecioMax   *decimal.Decimal
	PrecioMin   *decimal.Decimal
	CategoriaID *int
	VendedorID  *int
}

const baseSelect = `
	SELECT p.id, p.titulo, p.descripcion, p.precio, p.categoria_id, p.vendedor_id,
	       p.size, p.stock, p.imagen,
	       COALESCE(AVG(c.rating), 0) AS rating
	FROM productos p
	LEFT JOIN calificaciones c ON p.id = c.producto_id`

// orderClauses is the only source of ORDER BY text. Client tokens that are
// not keys here are rejected; user input never reaches the SQL as an
// identifier.
var orderClauses = map[string]string{
	"id_ASC":      "p.id ASC",
	"id_DESC":     "p.id DESC",
	"titulo_ASC":  "p.titulo ASC",
	"titulo_DESC": "p.titulo DESC",
	"precio_ASC":  "p.precio ASC",
	"precio_DESC": "p.precio DESC",
	"stock_ASC":   "p.stock ASC",
	"stock_DESC":  "p.stock DESC",
	"rating_ASC":  "rating ASC",
	"rating_DESC": "rating DESC",
}

func orderClause(token string) (string, error) {
	if token == "" {
		return "p.id ASC", nil
	}
	clause, ok := orderClauses[token]
	if !ok {
		return "", ErrInvalidOrderBy
	}
	return clause, nil
}

// buildListQuery assembles the paginated listing statement. Sort text comes
// from the allow-list; limit and offset are bound parameters.
func buildListQuery(p ListParams) (string, []any, error) {
	if p.Limit < 1 || p.Page < 1 {
		return "", nil, ErrInvalidPagination
	}
	clause, err := orderClause(p.OrderBy)
	if err != nil {
		return "", nil, err
	}

	query := baseSelect
	args := make([]any, 0, 3)
	if p.VendedorID != nil {
		args = append(args, *p.VendedorID)
		query += fmt.Sprintf(" WHERE p.vendedor_id = $%d", len(args))
	}
	query += " GROUP BY p.id ORDER BY " + clause

	offset := (p.Page - 1) * p.Limit
	args = append(args, p.Limit, offset)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return query, args, nil
}

// buildFilterQuery assembles the conjunctive filtered listing; every value
// is a bound parameter.
func buildFilterQuery(f Filters) (string, []any) {
	query := baseSelect + " WHERE 1=1"
	args := make([]any, 0, 4)

	if f.PrecioMax != nil {
		args = append(args, *f.PrecioMax)
		query += fmt.Sprintf(" AND p.precio <= $%d", len(args))
	}
	if f.PrecioMin != nil {
		args = append(args, *f.PrecioMin)
		query += fmt.Sprintf(" AND p.precio >= $%d", len(args))
	}
	if f.CategoriaID != nil {
		args = append(args, *f.CategoriaID)
		query += fmt.Sprintf(" AND p.categoria_id = $%d", len(args))
	}
	if f.VendedorID != nil {
		args = append(args, *f.VendedorID)
		query += fmt.Sprintf(" AND p.vendedor_id = $%d", len(args))
	}

	query += " GROUP BY p.id"
	return query, args
}
