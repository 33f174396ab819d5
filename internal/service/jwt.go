package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)
}

// Identity is the slice of the auth provider's profile the points engine
// needs: a stable id plus the display snapshots denormalized on credit.
type Identity struct {
	UserID    string
	Username  string
	AvatarURL string
}

// GenerateJWT issues a session token carrying the identity snapshot.
func GenerateJWT(id Identity) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"sub":    id.UserID,
		"name":   id.Username,
		"avatar": id.AvatarURL,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
		"iat":    now,
		"nbf":    now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseJWT validates a session token and returns the identity it carries.
func ParseJWT(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("subject not found")
	}

	id := &Identity{UserID: sub}
	if name, ok := claims["name"].(string); ok {
		id.Username = name
	}
	if avatar, ok := claims["avatar"].(string); ok {
		id.AvatarURL = avatar
	}
	return id, nil
}
