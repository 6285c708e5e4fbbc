package dto

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser is the minimal public profile returned on login.
type LoginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ProfileResponse is the full profile without the password hash.
type ProfileResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Username string `json:"username"`
}
