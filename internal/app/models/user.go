package models

// User defines the user model based on the 'users' table. Users are only
// authenticated against, never created through the API.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Name     string `json:"name" db:"name"`
	Password string `json:"-" db:"password"` // bcrypt hash, excluded from JSON
}
