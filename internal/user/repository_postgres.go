package user

import (
	"database/sql"
	"errors"

	"github.com/mercado-api/mercado-backend/internal/apperr"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listUsersQuery = `
		SELECT id, email, nombre, direccion, avatar
		FROM usuarios
		ORDER BY id
	`
	getUserByIDQuery = `
		SELECT id, email, nombre, direccion, avatar
		FROM usuarios
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT id, email, password, nombre, direccion, avatar
		FROM usuarios
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO usuarios (email, password, nombre, direccion, avatar)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() ([]User, error) {
	rows, err := r.db.Query(listUsersQuery)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "listando usuarios", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		var direccion, avatar sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.Nombre, &direccion, &avatar); err != nil {
			return nil, apperr.Wrap(apperr.Internal, "leyendo usuario", err)
		}
		u.Direccion = direccion.String
		u.Avatar = avatar.String
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	var u User
	var direccion, avatar sql.NullString
	err := r.db.QueryRow(getUserByIDQuery, id).Scan(&u.ID, &u.Email, &u.Nombre, &direccion, &avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, apperr.Wrap(apperr.Internal, "buscando usuario", err)
	}
	u.Direccion = direccion.String
	u.Avatar = avatar.String
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	var u User
	var direccion, avatar sql.NullString
	err := r.db.QueryRow(getUserByEmailQuery, email).Scan(&u.ID, &u.Email, &u.Password, &u.Nombre, &direccion, &avatar)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, apperr.Wrap(apperr.Internal, "buscando usuario por email", err)
	}
	u.Direccion = direccion.String
	u.Avatar = avatar.String
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	var id int
	err := r.db.QueryRow(insertUserQuery, u.Email, u.Password, u.Nombre, u.Direccion, u.Avatar).Scan(&id)
	if err != nil {
		return User{}, apperr.Wrap(apperr.Internal, "creando usuario", err)
	}
	u.ID = id
	return u, nil
}
