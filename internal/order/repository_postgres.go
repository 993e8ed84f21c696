package order

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the order header and its items in one transaction. A failed
// item insert rolls back the header.
func (r *PostgresRepository) Create(ord Order, items []Item) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, apperr.Wrap(apperr.Internal, "iniciando transacción de pedido", err)
	}

	err = tx.QueryRow(
		`INSERT INTO pedidos (usuario_id, vendedor_id, total, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		ord.UsuarioID, ord.VendedorID, ord.Total, ord.Status,
	).Scan(&ord.ID, &ord.CreatedAt)
	if err != nil {
		tx.Rollback()
		return Order{}, apperr.Wrap(apperr.Internal, "creando pedido", err)
	}

	for _, it := range items {
		_, err = tx.Exec(
			`INSERT INTO pedido_items (pedido_id, producto_id, cantidad, precio_unitario)
			 VALUES ($1, $2, $3, $4)`,
			ord.ID, it.ProductoID, it.Cantidad, it.PrecioUnitario,
		)
		if err != nil {
			tx.Rollback()
			return Order{}, apperr.Wrap(apperr.Internal, "creando items del pedido", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Order{}, apperr.Wrap(apperr.Internal, "confirmando pedido", err)
	}
	return ord, nil
}

const rowSelect = `SELECT p.id, p.total, p.status, p.created_at,
       pi.producto_id, pi.cantidad, pi.precio_unitario,
       pr.titulo, pr.imagen, u.nombre
  FROM pedidos p
  JOIN pedido_items pi ON pi.pedido_id = p.id
  JOIN productos pr ON pr.id = pi.producto_id
  JOIN usuarios u ON u.id = p.usuario_id`

func (r *PostgresRepository) ListRows(f Filter) ([]Row, error) {
	if f.UsuarioID == nil && f.VendedorID == nil {
		return []Row{}, nil
	}

	var (
		conds []string
		args  []any
	)
	if f.UsuarioID != nil {
		args = append(args, *f.UsuarioID)
		conds = append(conds, fmt.Sprintf("p.usuario_id = $%d", len(args)))
	}
	if f.VendedorID != nil {
		args = append(args, *f.VendedorID)
		conds = append(conds, fmt.Sprintf("p.vendedor_id = $%d", len(args)))
	}
	query := rowSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY p.created_at DESC, p.id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "listando pedidos", err)
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		var row Row
		err := rows.Scan(
			&row.ID, &row.Total, &row.Status, &row.CreatedAt,
			&row.ProductoID, &row.Cantidad, &row.PrecioUnitario,
			&row.Titulo, &row.Imagen, &row.UsuarioNombre,
		)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "leyendo pedido", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "leyendo pedidos", err)
	}
	return out, nil
}

func (r *PostgresRepository) ListByUser(usuarioID int) ([]Order, error) {
	rows, err := r.db.Query(
		`SELECT id, usuario_id, vendedor_id, total, status, created_at
		 FROM pedidos WHERE usuario_id = $1 ORDER BY created_at DESC, id DESC`,
		usuarioID,
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "listando pedidos del usuario", err)
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		var ord Order
		err := rows.Scan(&ord.ID, &ord.UsuarioID, &ord.VendedorID, &ord.Total, &ord.Status, &ord.CreatedAt)
		if err != nil {
			return nil, apperr.Wrap(apperr.Internal, "leyendo pedido", err)
		}
		out = append(out, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "leyendo pedidos", err)
	}
	return out, nil
}

func (r *PostgresRepository) UpdateStatus(id int, status string) (Order, error) {
	var ord Order
	err := r.db.QueryRow(
		`UPDATE pedidos SET status = $1 WHERE id = $2
		 RETURNING id, usuario_id, vendedor_id, total, status, created_at`,
		status, id,
	).Scan(&ord.ID, &ord.UsuarioID, &ord.VendedorID, &ord.Total, &ord.Status, &ord.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, apperr.Wrap(apperr.Internal, "actualizando estado del pedido", err)
	}
	return ord, nil
}
