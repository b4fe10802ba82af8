package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/internal/api/v1/user"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/auth"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/middleware"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/models"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/services"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/session"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store/memstore"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := memstore.New()
	tokens := utils.NewTokenManager("test_secret", time.Hour)
	svc := services.NewAuthService(st, session.NewRAMStore(time.Hour, nil), tokens, services.NewMemoryDenylist(nil))

	active, err := st.CreateUser(context.Background(), models.User{
		Username: "alice", Email: "alice@x.com", PasswordHash: "x", Role: models.RoleUser, Active: true,
	})
	require.NoError(t, err)
	inactive, err := st.CreateUser(context.Background(), models.User{
		Username: "bob", Email: "bob@x.com", PasswordHash: "x", Role: models.RoleUser, Active: false,
	})
	require.NoError(t, err)

	r := gin.New()
	user.RegisterRoutes(r.Group("/api"), user.NewHandler(svc), middleware.NewAuthenticator(svc, "lab_session"))

	tests := []struct {
		name           string
		identity       *auth.Identity
		expectedStatus int
		expectedName   string
	}{
		{
			name:           "Active user",
			identity:       &auth.Identity{UserID: active.ID, Username: "alice", Role: models.RoleUser},
			expectedStatus: http.StatusOK,
			expectedName:   "alice",
		},
		{
			name:           "Deactivated after login",
			identity:       &auth.Identity{UserID: inactive.ID, Username: "bob", Role: models.RoleUser},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Deleted user",
			identity:       &auth.Identity{UserID: 999, Username: "ghost", Role: models.RoleUser},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "No token",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
			if tt.identity != nil {
				token, _, err := tokens.Generate(*tt.identity)
				require.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedName != "" {
				var resp struct {
					Data models.User `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedName, resp.Data.Username)
				assert.NotContains(t, w.Body.String(), "password")
			}
		})
	}
}
