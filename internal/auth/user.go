package auth

// User is an authentication record. The password field is retained only in
// the persisted users list; session records carry a sanitized copy.
type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name"`
}

// Sanitized returns a copy with the password cleared.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
