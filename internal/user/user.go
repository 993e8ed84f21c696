package user

// User maps to the usuarios table. JSON keys follow the Spanish API surface.
// Password carries the bcrypt hash internally and is blanked before any
// response is serialized.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// Sanitize returns a copy safe to serialize.
func Sanitize(u User) User {
	u.Password = ""
	return u
}
