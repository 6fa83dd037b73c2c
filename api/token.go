package api

import (
	"time"

	"vidshare/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL matches the session length the frontend expects.
const tokenTTL = 24 * 24 * time.Hour

func (a *API) makeToken(u *model.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   u.ID.Hex(),
		"role": u.Role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	})

	return t.SignedString([]byte(a.Cfg.JWTSecret))
}
