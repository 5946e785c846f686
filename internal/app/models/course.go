package models

// Course represents an entry of the immutable course catalog. The code is
// the 7-character identifier (two digits, five uppercase letters).
type Course struct {
	Code    string `json:"code" db:"code"`
	Name    string `json:"name" db:"name"`
	Credits int    `json:"CFU" db:"credits"`
}
