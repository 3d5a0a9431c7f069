package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// AccessClaims are carried by admin login tokens.
type AccessClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// CartClaims are carried by the cart-session cookie. The cart id is the
// only payload; signing makes the cookie tamper-evident without a
// server-side session store.
type CartClaims struct {
	CartID int64 `json:"cart_id"`
	jwt.RegisteredClaims
}

// GenerateAccessToken mints a signed access token for a user
func GenerateAccessToken(userID uint, username, role, secret string, expiry time.Duration) (string, error) {
	claims := AccessClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAccessToken parses and verifies an access token
func ValidateAccessToken(tokenString, secret string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	err := parseInto(tokenString, secret, claims)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateCartToken mints a signed cart-session token
func GenerateCartToken(cartID int64, secret string, expiry time.Duration) (string, error) {
	claims := CartClaims{
		CartID: cartID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateCartToken parses and verifies a cart-session token. Any defect
// (bad signature, wrong shape, non-positive cart id) comes back as an
// error so callers can discard the cookie and treat the visitor as
// identifier-less.
func ValidateCartToken(tokenString, secret string) (int64, error) {
	claims := &CartClaims{}
	if err := parseInto(tokenString, secret, claims); err != nil {
		return 0, err
	}
	if claims.CartID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.CartID, nil
}

func parseInto(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
