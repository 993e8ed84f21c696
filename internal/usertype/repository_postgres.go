package usertype

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

func (r *PostgresRepository) List() ([]UserType, error) {
	rows, err := r.db.Query(`SELECT id, nombre FROM tipo_usuario ORDER BY id`)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "listando tipos de usuario", err)
	}
	defer rows.Close()

	out := make([]UserType, 0)
	for rows.Next() {
		var ut UserType
		if err := rows.Scan(&ut.ID, &ut.Nombre); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "leyendo tipo de usuario", err)
		}
		out = append(out, ut)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(nombre string) (UserType, error) {
	var ut UserType
	err := r.db.QueryRow(`INSERT INTO tipo_usuario (nombre) VALUES ($1) RETURNING id, nombre`, nombre).
		Scan(&ut.ID, &ut.Nombre)
	if err != nil {
		return UserType{}, apperr.Wrap(apperr.Internal, "creando tipo de usuario", err)
	}
	return ut, nil
}
