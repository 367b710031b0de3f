package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"courseforge/internal/model"
)

var (
	ErrInvalidCode  = errors.New("invalid access code")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthService maps access codes to view/edit roles. An empty code grants
// public viewing; the admin code unlocks authoring. Codes are plain
// configuration, not security infrastructure.
type AuthService struct {
	adminCode string
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(adminCode, jwtSecret string) *AuthService {
	return &AuthService{
		adminCode: adminCode,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login exchanges an access code for a role token. An empty code yields a
// public token; the admin code yields an admin token; anything else is
// rejected.
func (s *AuthService) Login(code string) (*model.LoginResponse, error) {
	role := model.RolePublic
	if code != "" {
		if code != s.adminCode {
			return nil, ErrInvalidCode
		}
		role = model.RoleAdmin
	}

	claims := &model.AccessClaims{
		SubjectID: string(role) + "_" + uuid.New().String()[:8],
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token: tokenString,
		Role:  role,
	}, nil
}

// ValidateToken validates an access token and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
