package auth

import "github.com/franceviagens/portal/internal/domain"

// LoginData is the view model of the login form. Passwords are never part of it.
type LoginData struct {
	Email  string
	Result domain.Result
}

// RegisterData is the view model of the registration form.
type RegisterData struct {
	Username string
	Email    string
	Result   domain.Result
}
