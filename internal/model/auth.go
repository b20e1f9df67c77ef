package model

import "github.com/golang-jwt/jwt/v5"

// StaffClaims are JWT claims for dashboard access
type StaffClaims struct {
	StaffID  string `json:"staffId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for staff login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token   string `json:"token"`
	StaffID string `json:"staffId"`
}
