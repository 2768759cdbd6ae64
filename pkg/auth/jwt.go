package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/campuspoints/campuspoints/pkg/clearance"
)

type JWTServiceInterface interface {
	GenerateJWT(userID int, utorid string, role clearance.Role, expirationTime time.Time) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

var secretKey = []byte("campuspoints-secret-key")

type Claims struct {
	UserID int    `json:"user_id"`
	Utorid string `json:"utorid"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type JWTService struct{}

func (s *JWTService) GenerateJWT(userID int, utorid string, role clearance.Role, expirationTime time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Utorid: utorid,
		Role:   string(role),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
			Issuer:    "campuspoints",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == 0 || claims.Issuer != "campuspoints" {
		return nil, errors.New("invalid token claims")
	}
	if !clearance.Valid(clearance.Role(claims.Role)) {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
