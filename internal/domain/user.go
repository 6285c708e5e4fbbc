package domain

import "time"

// User is the domain model for registered accounts.
type User struct {
	ID           int64
	FullName     string
	Email        string
	Phone        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// AdminUsername is the single privileged account name. There is no role
// table; the account whose username equals this literal is the admin.
const AdminUsername = "admin"

// IsAdmin reports whether the user is the hardcoded admin account.
func (u *User) IsAdmin() bool {
	return u != nil && u.Username == AdminUsername
}
