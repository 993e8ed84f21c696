// Package usertype exposes the tipo_usuario catalog (buyer, seller, admin
// roles referenced by the frontend).
package usertype

type UserType struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}
