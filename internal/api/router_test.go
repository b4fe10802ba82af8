package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Salvaberticci/proyecto-laboratorio/config"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/services"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/session"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/store/memstore"
	"github.com/Salvaberticci/proyecto-laboratorio/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/abtime"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	router *gin.Engine
	store  *memstore.Store
	clock  *abtime.ManualTime
}

func setupApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		GinMode:        "test",
		StorageDriver:  config.StorageMemory,
		SessionBackend: config.SessionMemory,
		JWTSecret:      "test_secret",
		TokenTTL:       time.Hour,
		SessionTTL:     24 * time.Hour,
		SessionCookie:  "lab_session",
		CORSOrigins:    []string{"http://localhost:5173"},
	}
	clock := abtime.NewManualAtTime(time.Date(2025, 10, 22, 9, 0, 0, 0, time.UTC))
	st := memstore.New(memstore.WithClock(clock))
	authSvc := services.NewAuthService(st,
		session.NewRAMStore(cfg.SessionTTL, clock),
		utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		services.NewMemoryDenylist(nil),
	).WithHashCost(bcrypt.MinCost)
	_, err := authSvc.EnsureAdmin(context.Background(), "admin", "admin@lab.test", "admin123")
	require.NoError(t, err)

	router, err := NewRouter(Deps{
		Config: cfg,
		Store:  st,
		Auth:   authSvc,
		Users:  services.NewUserService(st).WithHashCost(bcrypt.MinCost),
		Clock:  clock,
	})
	require.NoError(t, err)
	return &testApp{router: router, store: st, clock: clock}
}

func (a *testApp) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, utils.Response) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp utils.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (a *testApp) login(t *testing.T, username, password string) string {
	w, resp := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := resp.Data.(map[string]interface{})["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func dataID(t *testing.T, resp utils.Response) int {
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	return int(data["id"].(float64))
}

func TestRegisterAndLoginScenario(t *testing.T) {
	app := setupApp(t)
	alice := map[string]string{"username": "alice", "email": "alice@x.com", "password": "pw123"}

	w, resp := app.do(http.MethodPost, "/api/auth/register", "", alice)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user", resp.Data.(map[string]interface{})["role"])
	assert.NotContains(t, w.Body.String(), "pw123")

	dup := map[string]string{"username": "alice2", "email": "alice@x.com", "password": "pw123"}
	w, resp = app.do(http.MethodPost, "/api/auth/register", "", dup)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already exists", resp.Message)

	w, _ = app.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "pw123"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "lab_session=")

	wrong, wrongResp := app.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "wrong"})
	unknown, unknownResp := app.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "nobody", "password": "pw123"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrongResp, unknownResp)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestCurrentUserAndLogout(t *testing.T) {
	app := setupApp(t)
	token := app.login(t, "admin", "admin123")

	w, resp := app.do(http.MethodGet, "/api/auth/user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", resp.Data.(map[string]interface{})["username"])

	w, _ = app.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = app.do(http.MethodGet, "/api/auth/user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token has been revoked", resp.Message)
}

func TestReagentAndOrderScenario(t *testing.T) {
	app := setupApp(t)
	token := app.login(t, "admin", "admin123")

	w, resp := app.do(http.MethodPost, "/api/insumos", token, map[string]interface{}{
		"nombre": "X", "descripcion": "Y", "precio": 10, "stock": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reagentID := dataID(t, resp)
	assert.Equal(t, "2025-10-22", resp.Data.(map[string]interface{})["fecha_creacion"])

	w, resp = app.do(http.MethodGet, "/api/insumos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := resp.Data.([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(reagentID), first["id"])

	w, _ = app.do(http.MethodPost, "/api/ordenes", token, map[string]interface{}{"producto_id": reagentID, "cantidad": 2})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, resp = app.do(http.MethodPost, "/api/ordenes", token, map[string]interface{}{"producto_id": 99999, "cantidad": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Reagent does not exist", resp.Message)

	w, resp = app.do(http.MethodGet, "/api/ordenes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)
}

func TestExperimentYearBeforeRange(t *testing.T) {
	app := setupApp(t)
	token := app.login(t, "admin", "admin123")
	before, err := app.store.GetAllExperiments(context.Background())
	require.NoError(t, err)

	w, resp := app.do(http.MethodPost, "/api/examenes", token, map[string]interface{}{
		"nombre": "Old", "fecha_creacion": 1899, "duracion_estimada": 30,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Creation year is out of range", resp.Message)

	w, _ = app.do(http.MethodPost, "/api/examenes", token, map[string]interface{}{
		"nombre": "Future", "fecha_creacion": 2030, "duracion_estimada": 30,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = app.do(http.MethodPost, "/api/examenes", token, map[string]interface{}{
		"nombre": "Too far", "fecha_creacion": 2031, "duracion_estimada": 30,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	after, err := app.store.GetAllExperiments(context.Background())
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
}

func TestScheduledTestReferences(t *testing.T) {
	app := setupApp(t)
	token := app.login(t, "admin", "admin123")

	w, resp := app.do(http.MethodPost, "/api/citas", token, map[string]interface{}{
		"id_experimento": 424242, "id_laboratorio": 1, "fecha_hora_inicio": "2025-11-01T10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Experiment or laboratory does not exist", resp.Message)

	tests, err := app.store.GetAllScheduledTests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tests)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	app := setupApp(t)
	w, _ := app.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bob", "email": "bob@x.com", "password": "pw123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	userToken := app.login(t, "bob", "pw123")
	adminToken := app.login(t, "admin", "admin123")

	w, resp := app.do(http.MethodPost, "/api/metodospago", userToken, map[string]string{"nombre": "Cheque"})
	require.Equal(t, http.StatusCreated, w.Code)
	path := "/api/metodospago/" + strconv.Itoa(dataID(t, resp))

	w, resp = app.do(http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = app.do(http.MethodDelete, path, userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden: admin role required", resp.Message)

	w, _ = app.do(http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOrderQueries(t *testing.T) {
	app := setupApp(t)
	token := app.login(t, "admin", "admin123")
	w, resp := app.do(http.MethodPost, "/api/insumos", token, map[string]interface{}{
		"nombre": "Guantes", "descripcion": "Nitrilo", "precio": 3.5, "stock": 40,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	reagentID := dataID(t, resp)

	for _, day := range []string{"2025-10-01", "2025-10-10", "2025-10-20"} {
		w, _ = app.do(http.MethodPost, "/api/ordenes", token, map[string]interface{}{
			"producto_id": reagentID, "cantidad": 1, "fecha_pedido": day,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, resp = app.do(http.MethodGet, "/api/ordenes/ultimos", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	latest := resp.Data.([]interface{})
	require.Len(t, latest, 3)
	assert.Equal(t, "2025-10-20", latest[0].(map[string]interface{})["fecha_pedido"])

	w, resp = app.do(http.MethodGet, "/api/ordenes/rango-fechas?inicio=2025-10-01&fin=2025-10-10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, *resp.Count)

	w, _ = app.do(http.MethodGet, "/api/ordenes/rango-fechas?inicio=2025-10-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = app.do(http.MethodGet, "/api/ordenes/rango-fechas?inicio=2025-10-01&fin=2025-10-10", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	orderID := int(latest[0].(map[string]interface{})["id"].(float64))
	w, _ = app.do(http.MethodDelete, "/api/ordenes/"+strconv.Itoa(orderID)+"/producto/99999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = app.do(http.MethodDelete, "/api/ordenes/"+strconv.Itoa(orderID)+"/producto/"+strconv.Itoa(reagentID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminUserManagement(t *testing.T) {
	app := setupApp(t)
	token := app.login(t, "admin", "admin123")

	w, resp := app.do(http.MethodPost, "/api/admin/usuarios", token, map[string]interface{}{
		"username": "carol", "email": "carol@x.com", "password": "secret", "role": "user",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	carolPath := "/api/admin/usuarios/" + strconv.Itoa(dataID(t, resp))

	w, resp = app.do(http.MethodPost, "/api/admin/usuarios", token, map[string]interface{}{
		"username": "dave", "email": "dave@x.com", "password": "secret", "role": "owner",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Role must be 'user' or 'admin'", resp.Message)

	w, resp = app.do(http.MethodPost, carolPath+"/desactivar", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp.Data.(map[string]interface{})["activo"])

	w, _ = app.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "carol", "password": "secret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = app.do(http.MethodPut, carolPath, token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No fields to update", resp.Message)

	w, _ = app.do(http.MethodPut, "/api/admin/usuarios/1", token, map[string]interface{}{"role": "user"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = app.do(http.MethodDelete, "/api/admin/usuarios/1", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = app.do(http.MethodDelete, carolPath, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = app.do(http.MethodGet, carolPath, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	app := setupApp(t)
	admin := app.login(t, "admin", "admin123")

	w, resp := app.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "bob", "email": "bob@x.com", "password": "pw123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bobID := dataID(t, resp)

	w, resp = app.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "bob", "password": "pw123"})
	require.Equal(t, http.StatusOK, w.Code)
	token := resp.Data.(map[string]interface{})["token"].(string)
	cookie := sessionCookie(t, w)

	area := map[string]interface{}{"nombre": "Cultivos", "capacidad_personas": 4}
	w, _ = app.do(http.MethodPost, "/api/areas", token, area)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = app.do(http.MethodPost, "/api/admin/usuarios/"+strconv.Itoa(bobID)+"/desactivar", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = app.do(http.MethodPost, "/api/areas", token, area)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User is inactive", resp.Message)

	w = postForm(app.router, "/areas", cookie, url.Values{"nombre": {"Cultivos"}, "capacidad_personas": {"4"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w, resp = app.do(http.MethodGet, "/api/areas", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)
}

func TestDemotedAdminLosesAdminRoutes(t *testing.T) {
	app := setupApp(t)
	admin := app.login(t, "admin", "admin123")

	w, resp := app.do(http.MethodPost, "/api/admin/usuarios", admin, map[string]interface{}{
		"username": "erin", "email": "erin@x.com", "password": "secret", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	erinPath := "/api/admin/usuarios/" + strconv.Itoa(dataID(t, resp))
	erin := app.login(t, "erin", "secret")

	w, _ = app.do(http.MethodGet, "/api/admin/usuarios", erin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = app.do(http.MethodPut, erinPath, admin, map[string]interface{}{"role": "user"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = app.do(http.MethodGet, "/api/admin/usuarios", erin, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = app.do(http.MethodDelete, erinPath, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, resp = app.do(http.MethodGet, "/api/auth/user", erin, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User no longer exists", resp.Message)
}

func postForm(r http.Handler, path, cookie string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == "lab_session" && c.Value != "" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatalf("no session cookie in response")
	return ""
}

func TestBrowserFlow(t *testing.T) {
	app := setupApp(t)

	w := get(app.router, "/", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = get(app.router, "/areas/crear", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = postForm(app.router, "/login", "", url.Values{"username": {"admin"}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")
	assert.Contains(t, w.Body.String(), `value="admin"`)

	w = postForm(app.router, "/login", "", url.Values{"username": {"admin"}, "password": {"admin123"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookie := sessionCookie(t, w)

	w = get(app.router, "/dashboard", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bienvenido, admin")

	w = postForm(app.router, "/areas", cookie, url.Values{"nombre": {"Microscopía"}, "capacidad_personas": {"-3"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `value="Microscopía"`)

	w = postForm(app.router, "/areas", cookie, url.Values{"nombre": {"Microscopía"}, "capacidad_personas": {"12"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = get(app.router, "/areas", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Microscopía")

	w = postForm(app.router, "/logout", cookie, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	w = get(app.router, "/dashboard", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSessionExpiresAfterFixedTTL(t *testing.T) {
	app := setupApp(t)
	w := postForm(app.router, "/login", "", url.Values{"username": {"admin"}, "password": {"admin123"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	cookie := sessionCookie(t, w)

	app.clock.Advance(23 * time.Hour)
	assert.Equal(t, http.StatusOK, get(app.router, "/dashboard", cookie).Code)

	app.clock.Advance(time.Hour)
	assert.Equal(t, http.StatusFound, get(app.router, "/dashboard", cookie).Code)
}

func TestHealthzAndUnknownRoutes(t *testing.T) {
	app := setupApp(t)
	assert.Equal(t, http.StatusOK, get(app.router, "/healthz", "").Code)

	w, resp := app.do(http.MethodGet, "/api/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, resp.Success)

	assert.Equal(t, http.StatusNotFound, get(app.router, "/nothing", "").Code)
}
