package category

import (
	"database/sql"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]Category, error) {
	rows, err := r.db.Query(`SELECT id, nombre FROM categorias ORDER BY id`)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "listando categorías", err)
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Nombre); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "leyendo categoría", err)
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(nombre string) (Category, error) {
	var cat Category
	err := r.db.QueryRow(`INSERT INTO categorias (nombre) VALUES ($1) RETURNING id, nombre`, nombre).
		Scan(&cat.ID, &cat.Nombre)
	if err != nil {
		return Category{}, apperr.Wrap(apperr.Internal, "creando categoría", err)
	}
	return cat, nil
}
