package user

import (
	"storefront/internal/shared/dto"
)

// User is an account of the mock backend
type User struct {
	ID           string
	Name         string
	Email        string
	Role         dto.Role
	PasswordHash string
}

// ToDTO strips the password hash
func (u *User) ToDTO() dto.User {
	return dto.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// SeedUser is a plain-text account loaded at startup
type SeedUser struct {
	ID       string
	Name     string
	Email    string
	Role     dto.Role
	Password string
}

// DefaultSeed are the demo accounts of the storefront
var DefaultSeed = []SeedUser{
	{ID: "u1", Name: "Ava Harper", Email: "ava@storefront.dev", Role: dto.RoleCustomer, Password: "password123"},
	{ID: "u2", Name: "Elliot Stone", Email: "elliot@storefront.dev", Role: dto.RoleAdmin, Password: "admin123"},
}
