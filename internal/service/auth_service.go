package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"storeaudit/internal/config"
	"storeaudit/internal/model"
)

const tokenTTL = 24 * time.Hour

// AuthService handles login and token validation for configured users
type AuthService struct {
	users     map[string]config.UserCredential
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(secret string, users []config.UserCredential) *AuthService {
	byName := make(map[string]config.UserCredential, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &AuthService{
		users:     byName,
		jwtSecret: []byte(secret),
	}
}

// Login validates credentials and returns a signed token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	u, ok := s.users[username]
	if !ok || u.Password != password {
		return nil, ErrInvalidCredentials
	}

	// Stable per username so inspections keep pointing at the same inspector.
	userID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(username)).String()
	now := time.Now()

	claims := &model.Claims{
		UserID:   userID,
		Role:     model.Role(u.Role),
		StoreIDs: u.StoreIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:  tokenString,
		UserID: userID,
		Role:   claims.Role,
	}, nil
}

// ValidateToken validates a JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
