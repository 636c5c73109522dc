package util

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"clientportal/internal/model"
)

const testSecret = "test-secret-for-jwt-signing"

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{
		ID:       "user-123",
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []model.Role{model.RoleClient, model.RoleUser},
	}

	token, err := GenerateJWT(user, testSecret)
	require.NoError(t, err)

	p, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, "user-123", p.ID)
	require.Equal(t, "alice", p.Username)
	require.Equal(t, "alice@example.com", p.Email)
	require.Equal(t, []model.Role{model.RoleClient, model.RoleUser}, p.Roles)
}

func TestParseJWTRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"malformed", "header.payload.signature"},
		{"wrong secret", func() string {
			token, _ := GenerateJWT(&model.User{ID: "u", Roles: []model.Role{model.RoleUser}}, "other-secret")
			return token
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJWT(tt.token, testSecret)
			require.Error(t, err)
		})
	}
}

func TestParseJWTRequiresRoles(t *testing.T) {
	token, err := GenerateJWT(&model.User{ID: "u-1", Username: "x"}, testSecret)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	require.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	require.Equal(t, "", ExtractToken(r))

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	require.Equal(t, "abc.def.ghi", ExtractToken(r))

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	require.Equal(t, "", ExtractToken(r))
}
