package model

// User represents a registered user. Credentials are stored and compared as
// plaintext; auth responses advertise this via credentials_plaintext.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Sanitized returns a copy safe for API responses, with the password removed.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
