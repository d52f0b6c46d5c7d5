package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ciadabeleza/salon-scheduler/internal/config"
)

func tokenFor(t *testing.T, secret, sub, userRole, name string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": userRole,
		"name": name,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authRouter(secret string, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: secret}

	r := gin.New()
	group := r.Group("/", AuthMiddleware(cfg))
	group.Use(extra...)
	group.GET("/quem", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":   c.MustGet(ContextUserID),
			"role": c.MustGet(ContextUserRole),
			"nome": c.MustGet(ContextUserName),
		})
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/quem", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	r := authRouter("segredo")
	token := tokenFor(t, "segredo", "u1", "profissional", "Julia")

	w := get(r, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
	assert.Contains(t, w.Body.String(), `"role":"profissional"`)
	assert.Contains(t, w.Body.String(), `"nome":"Julia"`)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	w := get(authRouter("segredo"), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	w := get(authRouter("segredo"), "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsWrongSignature(t *testing.T) {
	r := authRouter("segredo")
	token := tokenFor(t, "outro-segredo", "u1", "admin", "X")

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	r := authRouter("segredo", RequireRole("admin", "recepcao"))

	w := get(r, "Bearer "+tokenFor(t, "segredo", "u1", "recepcao", "Rita"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleBlocksOthers(t *testing.T) {
	r := authRouter("segredo", RequireRole("admin"))

	w := get(r, "Bearer "+tokenFor(t, "segredo", "u1", "profissional", "Julia"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_role")
}
