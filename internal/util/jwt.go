package util

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clientportal/internal/apperr"
	"clientportal/internal/model"
)

const tokenTTL = 24 * time.Hour

// GenerateJWT creates a signed token embedding the user's identity and roles.
func GenerateJWT(user *model.User, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"roles":    model.RoleNames(user.Roles),
		"iat":      now.Unix(),
		"exp":      now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseJWT validates a token and reconstructs the principal it embeds.
// Malformed, expired or mis-signed tokens all fail with ErrUnauthenticated.
func ParseJWT(tokenStr, secret string) (*model.Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrUnauthenticated
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.ErrUnauthenticated
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, apperr.ErrUnauthenticated
	}

	p := &model.Principal{ID: sub}
	if username, ok := claims["username"].(string); ok {
		p.Username = username
	}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, raw := range rawRoles {
			if s, ok := raw.(string); ok {
				p.Roles = append(p.Roles, model.ParseRole(s))
			}
		}
	}
	if len(p.Roles) == 0 {
		return nil, apperr.ErrUnauthenticated
	}

	return p, nil
}

// ExtractToken pulls the bearer token out of the Authorization header.
func ExtractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}
