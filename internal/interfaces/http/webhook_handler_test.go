package http_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-pro/internal/application/usecase"
	"github.com/jhoicas/almacen-pro/internal/domain/entity"
	apphttp "github.com/jhoicas/almacen-pro/internal/interfaces/http"
	"github.com/jhoicas/almacen-pro/pkg/logger"
)

// Secreto de prueba en el formato whsec_<base64> del proveedor.
var testWebhookSecret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("super-secreto-de-test"))

// ──────────────────────────────────────────────────────────────────────────────
// Doble de prueba: directorio de usuarios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserDirectory struct {
	byExternal map[string]*entity.User
}

func newMemUserDirectory() *memUserDirectory {
	return &memUserDirectory{byExternal: map[string]*entity.User{}}
}

func (r *memUserDirectory) Create(user *entity.User) error {
	cp := *user
	r.byExternal[user.ExternalID] = &cp
	return nil
}

func (r *memUserDirectory) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byExternal {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserDirectory) GetByExternalID(externalID string) (*entity.User, error) {
	u, ok := r.byExternal[externalID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserDirectory) Update(user *entity.User) error {
	cp := *user
	r.byExternal[user.ExternalID] = &cp
	return nil
}

func (r *memUserDirectory) UpdateRole(id, role string) error { return nil }

func (r *memUserDirectory) List(limit, offset int) ([]*entity.User, error) { return nil, nil }

func (r *memUserDirectory) DeleteByExternalID(externalID string) error {
	delete(r.byExternal, externalID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildWebhookApp(t *testing.T) (*fiber.App, *memUserDirectory) {
	t.Helper()
	repo := newMemUserDirectory()
	userUC := usecase.NewUserUseCase(repo)
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	handler := apphttp.NewWebhookHandler(userUC, testWebhookSecret, log)

	app := fiber.New()
	app.Post("/api/webhooks/identity", handler.HandleIdentityEvent)
	return app, repo
}

// sign firma el cuerpo como lo hace el proveedor: HMAC-SHA256 de
// "<id>.<timestamp>.<body>" con el secreto decodificado.
func sign(t *testing.T, secret, msgID, timestamp string, body []byte) string {
	t.Helper()
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	require.NoError(t, err)
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", msgID, timestamp, body)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// postEvent envía un evento firmado (o con la firma indicada) al webhook.
func postEvent(t *testing.T, app *fiber.App, body string, tamperSignature string) *http.Response {
	t.Helper()
	msgID := "msg_test_1"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := sign(t, testWebhookSecret, msgID, timestamp, []byte(body))
	if tamperSignature != "" {
		signature = tamperSignature
	}

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("webhook-id", msgID)
	req.Header.Set("webhook-timestamp", timestamp)
	req.Header.Set("webhook-signature", signature)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestWebhook_UserCreated_AltaEnDirectorio(t *testing.T) {
	app, repo := buildWebhookApp(t)

	body := `{"type":"user.created","data":{"id":"ext-1","email":"ana@acme.co","name":"Ana"}}`
	resp := postEvent(t, app, body, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	u := repo.byExternal["ext-1"]
	require.NotNil(t, u, "el usuario debe quedar en el directorio")
	assert.Equal(t, "ana@acme.co", u.Email)
	assert.Equal(t, entity.RoleUser, u.Role, "sin rol explícito el alta usa el rol por defecto")
}

func TestWebhook_UserUpdated_EsIdempotente(t *testing.T) {
	app, repo := buildWebhookApp(t)

	created := `{"type":"user.created","data":{"id":"ext-1","email":"ana@acme.co","name":"Ana"}}`
	resp := postEvent(t, app, created, "")
	resp.Body.Close()
	originalID := repo.byExternal["ext-1"].ID

	updated := `{"type":"user.updated","data":{"id":"ext-1","email":"ana.maria@acme.co","name":"Ana María"}}`
	resp = postEvent(t, app, updated, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, repo.byExternal, 1, "el upsert no duplica filas")
	u := repo.byExternal["ext-1"]
	assert.Equal(t, originalID, u.ID, "el ID interno no cambia en actualizaciones")
	assert.Equal(t, "ana.maria@acme.co", u.Email)
}

func TestWebhook_UserDeleted_EliminaYEsNoOpSiNoExiste(t *testing.T) {
	app, repo := buildWebhookApp(t)

	created := `{"type":"user.created","data":{"id":"ext-1","email":"ana@acme.co","name":"Ana"}}`
	resp := postEvent(t, app, created, "")
	resp.Body.Close()

	deleted := `{"type":"user.deleted","data":{"id":"ext-1"}}`
	resp = postEvent(t, app, deleted, "")
	resp.Body.Close()
	assert.Empty(t, repo.byExternal)

	// Repetir el borrado no es error (el proveedor puede reenviar eventos).
	resp = postEvent(t, app, deleted, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWebhook_FirmaInvalida_Retorna401(t *testing.T) {
	app, repo := buildWebhookApp(t)

	body := `{"type":"user.created","data":{"id":"ext-1","email":"ana@acme.co"}}`
	resp := postEvent(t, app, body, "v1,"+base64.StdEncoding.EncodeToString([]byte("firma-falsa")))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, repo.byExternal, "un evento sin firma válida no toca el directorio")
}

func TestWebhook_SinHeaders_Retorna401(t *testing.T) {
	app, _ := buildWebhookApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity",
		strings.NewReader(`{"type":"user.created","data":{"id":"ext-1"}}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhook_TimestampViejo_Retorna401(t *testing.T) {
	app, _ := buildWebhookApp(t)

	body := `{"type":"user.created","data":{"id":"ext-1","email":"ana@acme.co"}}`
	msgID := "msg_test_1"
	old := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
	signature := sign(t, testWebhookSecret, msgID, old, []byte(body))

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("webhook-id", msgID)
	req.Header.Set("webhook-timestamp", old)
	req.Header.Set("webhook-signature", signature)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"una firma con timestamp fuera de tolerancia se rechaza")
}

func TestWebhook_EventoDesconocido_Retorna200(t *testing.T) {
	app, repo := buildWebhookApp(t)

	body := `{"type":"organization.created","data":{"id":"org-1"}}`
	resp := postEvent(t, app, body, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"eventos desconocidos se confirman para evitar reintentos")
	assert.Empty(t, repo.byExternal)
}
