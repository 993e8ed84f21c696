package product

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	countProductsQuery = `SELECT COUNT(*) FROM productos`

	getProductByIDQuery = baseSelect + `
	WHERE p.id = $1
	GROUP BY p.id`

	insertProductQuery = `
		INSERT INTO productos (titulo, descripcion, precio, categoria_id, vendedor_id, size, stock, imagen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	deleteProductQuery = `DELETE FROM productos WHERE id = $1`

	upsertRatingQuery = `
		INSERT INTO calificaciones (producto_id, usuario_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (producto_id, usuario_id)
		DO UPDATE SET rating = EXCLUDED.rating
		RETURNING producto_id, usuario_id, rating
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(p ListParams) ([]Product, error) {
	query, args, err := buildListQuery(p)
	if err != nil {
		return nil, err
	}
	return r.queryProducts(query, args...)
}

func (r *PostgresRepository) Count() (int, error) {
	var total int
	if err := r.db.QueryRow(countProductsQuery).Scan(&total); err != nil {
		return 0, apperr.Wrap(apperr.Internal, "contando productos", err)
	}
	return total, nil
}

func (r *PostgresRepository) Filter(f Filters) ([]Product, error) {
	query, args := buildFilterQuery(f)
	return r.queryProducts(query, args...)
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, apperr.Wrap(apperr.Internal, "buscando producto", err)
	}
	return p, nil
}

func (r *PostgresRepository) ExistingIDs(ids []int) ([]int, error) {
	if len(ids) == 0 {
		return []int{}, nil
	}
	rows, err := r.db.Query(`SELECT id FROM productos WHERE id = ANY($1::int[])`, pq.Array(ids))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "verificando productos", err)
	}
	defer rows.Close()

	out := make([]int, 0, len(ids))
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "leyendo producto", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	var id int
	err := r.db.QueryRow(insertProductQuery,
		p.Titulo, p.Descripcion, p.Precio, p.CategoriaID, p.VendedorID, p.Size, p.Stock, p.Imagen,
	).Scan(&id)
	if err != nil {
		return Product{}, apperr.Wrap(apperr.Internal, "creando producto", err)
	}
	p.ID = id
	return p, nil
}

// Update builds the SET list from the fields present in u. Column names come
// from the fixed pairs below, never from the request.
func (r *PostgresRepository) Update(id int, u Update) (Product, error) {
	set := make([]string, 0, 7)
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.Titulo != nil {
		add("titulo", *u.Titulo)
	}
	if u.Descripcion != nil {
		add("descripcion", *u.Descripcion)
	}
	if u.Precio != nil {
		add("precio", *u.Precio)
	}
	if u.CategoriaID != nil {
		add("categoria_id", *u.CategoriaID)
	}
	if u.Size != nil {
		add("size", *u.Size)
	}
	if u.Stock != nil {
		add("stock", *u.Stock)
	}
	if u.Imagen != nil {
		add("imagen", *u.Imagen)
	}

	if len(set) == 0 {
		return r.GetByID(id)
	}

	query := fmt.Sprintf("UPDATE productos SET %s WHERE id = $1", strings.Join(set, ", "))
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return Product{}, apperr.Wrap(apperr.Internal, "actualizando producto", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Product{}, apperr.Wrap(apperr.Internal, "actualizando producto", err)
	}
	if affected == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "eliminando producto", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "eliminando producto", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Rate(productoID, usuarioID, rating int) (Rating, error) {
	var rt Rating
	err := r.db.QueryRow(upsertRatingQuery, productoID, usuarioID, rating).
		Scan(&rt.ProductoID, &rt.UsuarioID, &rt.Rating)
	if err != nil {
		return Rating{}, apperr.Wrap(apperr.Internal, "guardando calificación", err)
	}
	return rt, nil
}

func (r *PostgresRepository) queryProducts(query string, args ...any) ([]Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "listando productos", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "leyendo producto", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProduct(scanner rowScanner) (Product, error) {
	var p Product
	var size, imagen sql.NullString
	var stock sql.NullInt64

	if err := scanner.Scan(
		&p.ID, &p.Titulo, &p.Descripcion, &p.Precio, &p.CategoriaID, &p.VendedorID,
		&size, &stock, &imagen, &p.Rating,
	); err != nil {
		return Product{}, err
	}

	if size.Valid {
		p.Size = &size.String
	}
	if stock.Valid {
		v := int(stock.Int64)
		p.Stock = &v
	}
	if imagen.Valid {
		p.Imagen = &imagen.String
	}
	return p, nil
}
