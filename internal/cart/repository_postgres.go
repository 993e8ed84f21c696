package cart

import (
	"database/sql"
	"errors"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUser(usuarioID int) (Cart, error) {
	var c Cart
	err := r.db.QueryRow(`SELECT id, usuario_id FROM carritos WHERE usuario_id = $1`, usuarioID).
		Scan(&c.ID, &c.UsuarioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cart{}, ErrNotFound
		}
		return Cart{}, apperr.Wrap(apperr.Internal, "buscando carrito", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(usuarioID int) (Cart, error) {
	var c Cart
	err := r.db.QueryRow(`INSERT INTO carritos (usuario_id) VALUES ($1) RETURNING id, usuario_id`, usuarioID).
		Scan(&c.ID, &c.UsuarioID)
	if err != nil {
		return Cart{}, apperr.Wrap(apperr.Internal, "creando carrito", err)
	}
	return c, nil
}

func (r *PostgresRepository) AddItem(carritoID, productoID, cantidad int) (Item, error) {
	var it Item
	err := r.db.QueryRow(
		`INSERT INTO carrito_items (carrito_id, producto_id, cantidad) VALUES ($1, $2, $3)
		 RETURNING id, carrito_id, producto_id, cantidad`,
		carritoID, productoID, cantidad,
	).Scan(&it.ID, &it.CarritoID, &it.ProductoID, &it.Cantidad)
	if err != nil {
		return Item{}, apperr.Wrap(apperr.Internal, "agregando item al carrito", err)
	}
	return it, nil
}
