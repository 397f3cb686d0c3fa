package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// WebSocket upgrades from browsers cannot carry an Authorization header, so
// authenticated clients first exchange their provider token for a short-lived
// signed ticket and pass it as a query parameter on the upgrade request.

const wsTicketTTL = 60 * time.Second

type WSTicketClaims struct {
	UID  string `json:"uid"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateWSTicket mints a ticket valid for one minute.
func GenerateWSTicket(secret []byte, uid, role string) (string, error) {
	claims := &WSTicketClaims{
		UID:  uid,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(wsTicketTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "sofreh-messina",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseWSTicket validates a ticket and returns its claims.
func ParseWSTicket(secret []byte, ticket string) (*WSTicketClaims, error) {
	token, err := jwt.ParseWithClaims(ticket, &WSTicketClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired ticket")
	}
	claims, ok := token.Claims.(*WSTicketClaims)
	if !ok {
		return nil, errors.New("invalid ticket claims")
	}
	return claims, nil
}
