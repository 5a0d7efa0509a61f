package auth

import (
	"strings"
	"time"
)

type User struct {
	Username string `json:"username"`
	// Password holds a bcrypt hash for accounts created here; accounts
	// imported from the old spreadsheet may still carry plaintext, which is
	// tolerated on verification and upgraded in place on first login.
	Password string `json:"-"`
	FullName string `json:"fullName"`
}

// HasHashedPassword reports whether the stored password looks like a
// bcrypt hash rather than a legacy plaintext value.
func (u *User) HasHashedPassword() bool {
	return strings.HasPrefix(u.Password, "$2a$") ||
		strings.HasPrefix(u.Password, "$2b$") ||
		strings.HasPrefix(u.Password, "$2y$")
}

type DeviceMapping struct {
	DeviceID         string    `json:"deviceId"`
	LastUsername     string    `json:"lastUsername"`
	LastLoginDate    time.Time `json:"lastLoginDate"`
	AutoLoginEnabled bool      `json:"autoLoginEnabled"`
}
