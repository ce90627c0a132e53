package middleware

import (
	"cyberar_admin_backend/internal/model"
	"cyberar_admin_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newEngine(roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/dashboard", AuthMiddleware(testSecret), RoleMiddleware(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, util.GetUserFromContext(c).Email)
	})
	return r
}

func token(t *testing.T, user *model.User, secret string, ttl time.Duration) string {
	t.Helper()
	s, err := util.GenerateJWT(user, secret, ttl)
	require.NoError(t, err)
	return s
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	teacher := &model.User{Uid: "t-1", Email: "grace@x.com", IsTeacher: true}
	r := newEngine(model.Teacher)

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"bearer header", "Bearer " + token(t, teacher, testSecret, time.Hour), "", http.StatusOK},
		{"query token", "", token(t, teacher, testSecret, time.Hour), http.StatusOK},
		{"missing token", "", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + token(t, teacher, "another-secret", time.Hour), "", http.StatusUnauthorized},
		{"expired", "Bearer " + token(t, teacher, testSecret, -time.Minute), "", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/dashboard"
			if tt.query != "" {
				path += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := serve(r, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "grace@x.com", w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareRejectsOtherAlgorithms(t *testing.T) {
	claims := &util.Claims{
		Email:            "grace@x.com",
		IsTeacher:        true,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+s)
	assert.Equal(t, http.StatusUnauthorized, serve(newEngine(model.Teacher), req).Code)
}

func TestRoleMiddleware(t *testing.T) {
	teacher := &model.User{Uid: "t-1", Email: "grace@x.com", IsTeacher: true}
	admin := &model.User{Uid: "a-1", Email: "admin@x.com"}

	tests := []struct {
		name  string
		roles []model.UserRole
		user  *model.User
		want  int
	}{
		{"teacher on teacher route", []model.UserRole{model.Teacher}, teacher, http.StatusOK},
		{"admin on teacher route", []model.UserRole{model.Teacher}, admin, http.StatusOK},
		{"teacher on admin route", []model.UserRole{model.Admin}, teacher, http.StatusForbidden},
		{"admin on admin route", []model.UserRole{model.Admin}, admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Header.Set("Authorization", "Bearer "+token(t, tt.user, testSecret, time.Hour))
			assert.Equal(t, tt.want, serve(newEngine(tt.roles...), req).Code)
		})
	}
}

func TestRoleMiddlewareWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RoleMiddleware(model.Admin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
