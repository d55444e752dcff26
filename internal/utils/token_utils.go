package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/riyazsharif/employee-leave-managment-system/internal/core/domain"
)

// PrincipalClaims are the JWT claims carried by an access token. The subject
// is the employee ID; email and role ride along so the middleware can build a
// full principal without a database read.
type PrincipalClaims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a signed access token for the given employee.
func GenerateJWT(emp *domain.Employee, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := PrincipalClaims{
		Email: emp.Email,
		Role:  emp.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   emp.EmployeeID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string, validates its signature and
// standard claims, and returns the principal claims when valid.
func ParseAndValidateJWT(tokenString string, secretKey string) (*PrincipalClaims, error) {
	claims := &PrincipalClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
