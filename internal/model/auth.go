package model

import "github.com/golang-jwt/jwt/v5"

// Role is the access tier granted by an access code
type Role string

const (
	RolePublic Role = "public" // View only
	RoleAdmin  Role = "admin"  // Full authoring access
)

// AccessClaims are JWT claims carrying the granted role
type AccessClaims struct {
	SubjectID string `json:"subjectId"`
	Role      Role   `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for the access-code gate
type LoginRequest struct {
	Code string `json:"code"`
}

// LoginResponse is returned after a code is accepted
type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}
