package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Zar-ufo/Pentagon/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRevocations struct {
	revoked map[string]bool
}

func (f *fakeRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

func newAuthProbe(tokens *token.Manager, revocations Revocations) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", JWTAuth(tokens, revocations), func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Role)
	})
	return r
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	signed, _, err := tokens.Issue(uuid.New(), "sales")
	require.NoError(t, err)
	r := newAuthProbe(tokens, &fakeRevocations{revoked: map[string]bool{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sales", w.Body.String())
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	r := newAuthProbe(tokens, &fakeRevocations{revoked: map[string]bool{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsForeignToken(t *testing.T) {
	signed, _, err := token.NewManager("other-secret", time.Hour).Issue(uuid.New(), "sales")
	require.NoError(t, err)
	r := newAuthProbe(token.NewManager("test-secret", time.Hour), &fakeRevocations{revoked: map[string]bool{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsRevokedToken(t *testing.T) {
	tokens := token.NewManager("test-secret", time.Hour)
	signed, claims, err := tokens.Issue(uuid.New(), "sales")
	require.NoError(t, err)
	r := newAuthProbe(tokens, &fakeRevocations{revoked: map[string]bool{claims.ID: true}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}
