package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/moneta-finance/moneta/internal/api/auth"
	"github.com/moneta-finance/moneta/internal/assets"
	"github.com/moneta-finance/moneta/internal/assistant"
	"github.com/moneta-finance/moneta/internal/config"
	dbmock "github.com/moneta-finance/moneta/internal/database/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParseUintParam(t *testing.T) {
	tests := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: "42", want: 42},
		{in: "0", want: 0},
		{in: "abc", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseUintParam(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newTestRouter(db *dbmock.MockDB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(
		assets.NewManager(db, nil),
		assistant.New(&config.AssistantConfig{Timeout: 1}, nil),
		auth.NewCredentials(db, bcrypt.MinCost),
		db,
	)

	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	r.GET("/healthz", h.Healthz)
	r.GET("/about", h.About)
	dashboard := r.Group("/dashboard", auth.RequireAuth(db))
	dashboard.GET("", h.Dashboard)
	return r
}

func TestHealthz(t *testing.T) {
	db := dbmock.NewMockDB()
	r := newTestRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	db.PingError = errors.New("disk gone")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAbout(t *testing.T) {
	r := newTestRouter(dbmock.NewMockDB())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/about", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "About Moneta")
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestDashboard_RequiresLogin(t *testing.T) {
	db := dbmock.NewMockDB()
	r := newTestRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, 0, db.GetAssetsCalls)
}
