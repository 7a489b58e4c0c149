package model

// User represents a registered credential. PasswordHash holds a hex-encoded
// SHA-256 digest of the raw password; no per-user salt is applied.
type User struct {
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}

// RegisterRequest is the POST /register payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
