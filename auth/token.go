package auth

import (
	"chat-room/domain"
	"chat-room/errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "chat-room"

// GrantClaims is the membership grant: the bearer was admitted to Room as Username.
type GrantClaims struct {
	Room     string `json:"room"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (c GrantClaims) RoomID() domain.RoomID {
	return domain.RoomID(c.Room)
}

// TokenIssuer signs and checks grants with a shared HMAC secret.
type TokenIssuer struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret string, duration time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), duration: duration, now: time.Now}
}

// Issue creates a signed JWT binding the bearer to a room and a username.
func (i *TokenIssuer) Issue(roomID domain.RoomID, username string) (string, error) {
	now := i.now()
	claims := &GrantClaims{
		Room:     string(roomID),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   username,
		},
	}

	// Create the token using the HS256 algorithm (HMAC with SHA256).
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	return token, nil
}

// Validate parses and validates the signature and expiration of a grant.
func (i *TokenIssuer) Validate(tokenString string) (*GrantClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &GrantClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*GrantClaims)
	if !ok || !token.Valid || claims.Room == "" || claims.Username == "" {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}
