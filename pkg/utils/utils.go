package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ravi-codingcity/FreightPro-B/pkg/apperrors"
)

// ErrMissingUser is returned for a well-signed token that names no user
var ErrMissingUser = errors.New("token has no user id")

// JWTManager handles JWT token operations
type JWTManager struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret, issuer string, expirationHours int) *JWTManager {
	return &JWTManager{
		secret:     []byte(secret),
		issuer:     issuer,
		expiration: time.Duration(expirationHours) * time.Hour,
	}
}

// TokenUser is the user object carried in the token payload
type TokenUser struct {
	ID string `json:"id"`
}

// UserClaims represents JWT claims for users. The payload shape {"user":{"id":...}} matches
// the tokens issued by the login service.
type UserClaims struct {
	User  TokenUser `json:"user"`
	Email string    `json:"email,omitempty"`
	Name  string    `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for a user
func (jm *JWTManager) GenerateToken(userID, email, name string) (string, error) {
	now := time.Now()
	claims := UserClaims{
		User:  TokenUser{ID: userID},
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(jm.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    jm.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jm.secret)
}

// ValidateToken validates and parses a JWT token. The issuer is not checked so that
// tokens minted by the login service are accepted alongside locally generated ones.
func (jm *JWTManager) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jm.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.User.ID == "" {
		return nil, ErrMissingUser
	}

	return claims, nil
}

// Response helpers
type APIResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    interface{}            `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// NewSuccessResponse creates a success API response
func NewSuccessResponse(data interface{}, message string) *APIResponse {
	return &APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error API response
func NewErrorResponse(message string) *APIResponse {
	return &APIResponse{
		Success: false,
		Message: message,
	}
}

// NewAppErrorResponse renders a domain error, including its field errors
func NewAppErrorResponse(err *apperrors.Error) *APIResponse {
	return &APIResponse{
		Success: false,
		Message: err.Message,
		Error:   string(err.Code),
		Errors:  err.Fields,
	}
}
