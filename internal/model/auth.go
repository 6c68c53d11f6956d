package model

import "github.com/golang-jwt/jwt/v5"

// Role is the platform role carried in a token
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleInspector Role = "inspector"
	RoleManager   Role = "manager"
)

// Claims are JWT claims for every authenticated user
type Claims struct {
	UserID   string   `json:"userId"`
	Role     Role     `json:"role"`
	StoreIDs []string `json:"storeIds,omitempty"` // managers only
	jwt.RegisteredClaims
}

// CanAccessStore reports whether the holder may see a store's data
func (c *Claims) CanAccessStore(storeID string) bool {
	if c.Role != RoleManager {
		return true
	}
	for _, id := range c.StoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}
