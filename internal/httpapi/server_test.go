package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/dmitrijs2005/contactpro/internal/intent"
	"github.com/dmitrijs2005/contactpro/internal/logging"
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/dmitrijs2005/contactpro/internal/services"
	"github.com/dmitrijs2005/contactpro/internal/storage"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorDetail    `json:"error"`
}

func newTestServer(t *testing.T) (*Server, services.ContactService) {
	t.Helper()
	n := 0
	svc, err := services.NewContactService(context.Background(), storage.NewMemoryGateway(), logging.Discard(),
		services.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id%d", n)
		}))
	require.NoError(t, err)

	s := NewServer("127.0.0.1:0", 0, intent.NewDispatcher(svc, logging.Discard()), logging.Discard())
	return s, svc
}

func do(t *testing.T, s *Server, method, path string, body any) (*http.Response, envelope) {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	case []byte:
		r = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func seed(t *testing.T, svc services.ContactService, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := svc.Add(context.Background(), models.Fields{Name: name, Email: name + "@x", Tags: []string{"t-" + name}})
		require.NoError(t, err)
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	resp, env := do(t, s, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
	require.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestCreateContact(t *testing.T) {
	s, svc := newTestServer(t)

	resp, env := do(t, s, http.MethodPost, "/api/v1/contacts", ContactRequest{
		Name: " Ann ", Email: "ann@x", Tags: []string{"work", " "},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "Contact added", env.Message)

	var c models.Contact
	require.NoError(t, json.Unmarshal(env.Data, &c))
	assert.Equal(t, "id1", c.ID)
	assert.Equal(t, "Ann", c.Name)
	assert.Equal(t, []string{"work"}, c.Tags)
	assert.Equal(t, 1, svc.Total())
}

func TestCreateContact_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body any
		code string
	}{
		{name: "missing name", body: ContactRequest{Email: "a@x"}, code: "VALIDATION_FAILED"},
		{name: "missing email", body: ContactRequest{Name: "a"}, code: "VALIDATION_FAILED"},
		{name: "blank name passes dto but not the model", body: ContactRequest{Name: "  ", Email: "a@x"}, code: "VALIDATION_FAILED"},
		{name: "broken json", body: `{"name":`, code: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, svc := newTestServer(t)
			resp, env := do(t, s, http.MethodPost, "/api/v1/contacts", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			assert.Equal(t, 0, svc.Total())
		})
	}
}

func TestCreateContact_ValidationDetailsUseJSONNames(t *testing.T) {
	s, _ := newTestServer(t)
	_, env := do(t, s, http.MethodPost, "/api/v1/contacts", ContactRequest{Email: "a@x"})

	details, ok := env.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "required", details["name"])
}

func TestGetAndUpdateContact(t *testing.T) {
	s, svc := newTestServer(t)
	seed(t, svc, "Ann")

	resp, env := do(t, s, http.MethodGet, "/api/v1/contacts/id1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"name":"Ann"`)

	resp, env = do(t, s, http.MethodPut, "/api/v1/contacts/id1", ContactRequest{Name: "Anna", Email: "anna@x"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Contact updated", env.Message)

	c, err := svc.Get("id1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", c.Name)
	assert.Empty(t, c.Tags)
}

func TestMissingContact(t *testing.T) {
	s, _ := newTestServer(t)

	resp, env := do(t, s, http.MethodGet, "/api/v1/contacts/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	resp, _ = do(t, s, http.MethodPut, "/api/v1/contacts/nope", ContactRequest{Name: "a", Email: "b"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteContact(t *testing.T) {
	s, svc := newTestServer(t)
	seed(t, svc, "Ann")

	resp, env := do(t, s, http.MethodDelete, "/api/v1/contacts/id1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Contact deleted", env.Message)
	assert.JSONEq(t, `{"changed":true,"removed":1,"count":0}`, string(env.Data))

	_, env = do(t, s, http.MethodDelete, "/api/v1/contacts/id1", nil)
	assert.Equal(t, "Nothing to delete", env.Message)
}

func TestDeleteMany(t *testing.T) {
	s, svc := newTestServer(t)
	seed(t, svc, "a", "b", "c")

	resp, env := do(t, s, http.MethodPost, "/api/v1/contacts/delete", DeleteManyRequest{IDs: []string{"id1", "id3", "zzz"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2 contact(s) deleted", env.Message)
	assert.Equal(t, 1, svc.Total())

	resp, env = do(t, s, http.MethodPost, "/api/v1/contacts/delete", DeleteManyRequest{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestFilterAndSort(t *testing.T) {
	s, svc := newTestServer(t)
	seed(t, svc, "bob", "al")

	resp, env := do(t, s, http.MethodPut, "/api/v1/view/filter", FilterRequest{Field: "search", Value: "BO"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list ListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "BO", list.Criteria.Search)
	assert.Equal(t, "bob", list.Contacts[0].Name)

	_, _ = do(t, s, http.MethodPut, "/api/v1/view/filter", FilterRequest{Field: "search", Value: ""})
	_, env = do(t, s, http.MethodPut, "/api/v1/view/sort", SortRequest{SortBy: "name"})
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Contacts, 2)
	assert.Equal(t, "al", list.Contacts[0].Name)

	resp, env = do(t, s, http.MethodPut, "/api/v1/view/filter", FilterRequest{Field: "recent", Value: "maybe"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	resp, _ = do(t, s, http.MethodPut, "/api/v1/view/sort", SortRequest{SortBy: "age"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExport(t *testing.T) {
	s, svc := newTestServer(t)
	seed(t, svc, "Ann")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export?format=csv", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="contacts.csv"`, resp.Header.Get("Content-Disposition"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "\"Name\",\"Email\",\"Phone\",\"Address\",\"Tags\"\n\"Ann\",\"Ann@x\",\"\",\"\",\"t-Ann\"", string(body))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	s, _ := newTestServer(t)
	resp, env := do(t, s, http.MethodGet, "/api/v1/export?format=pdf", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_FORMAT", env.Error.Code)
}

func TestImport(t *testing.T) {
	s, svc := newTestServer(t)

	body := `[{"name":"Ann","email":"a@x","tags":["x"]},{"name":"Bob","email":"b@x"}]`
	resp, env := do(t, s, http.MethodPost, "/api/v1/import?format=json", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Imported 2 contact(s)", env.Message)
	assert.Equal(t, 2, svc.Total())

	resp, env = do(t, s, http.MethodPost, "/api/v1/import?format=json", `{not json`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "PARSE_FAILED", env.Error.Code)
	assert.Equal(t, 2, svc.Total())

	resp, env = do(t, s, http.MethodPost, "/api/v1/import", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_FORMAT", env.Error.Code)
}

func TestBackupRestoreUndoRedo(t *testing.T) {
	s, svc := newTestServer(t)

	resp, env := do(t, s, http.MethodPost, "/api/v1/restore", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	seed(t, svc, "a")
	_, env = do(t, s, http.MethodPost, "/api/v1/backup", nil)
	assert.Equal(t, "Backup created (1 contact(s))", env.Message)

	seed(t, svc, "b")
	_, env = do(t, s, http.MethodPost, "/api/v1/restore", nil)
	assert.Equal(t, "Restored 1 contact(s)", env.Message)
	assert.Equal(t, 1, svc.Total())

	_, env = do(t, s, http.MethodPost, "/api/v1/undo", nil)
	assert.Equal(t, "Undone", env.Message)
	assert.Equal(t, 2, svc.Total())

	_, env = do(t, s, http.MethodPost, "/api/v1/redo", nil)
	assert.Equal(t, "Redone", env.Message)
	assert.Equal(t, 1, svc.Total())

	_, env = do(t, s, http.MethodPost, "/api/v1/redo", nil)
	assert.Equal(t, "Nothing to redo", env.Message)
}

func TestThemeAndState(t *testing.T) {
	s, svc := newTestServer(t)
	seed(t, svc, "a")

	_, env := do(t, s, http.MethodGet, "/api/v1/theme", nil)
	assert.JSONEq(t, `{"theme":"light"}`, string(env.Data))

	_, env = do(t, s, http.MethodPost, "/api/v1/theme/toggle", nil)
	assert.Equal(t, "Theme: dark", env.Message)
	assert.JSONEq(t, `{"theme":"dark"}`, string(env.Data))

	_, env = do(t, s, http.MethodGet, "/api/v1/state", nil)
	var st StateResponse
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, StateResponse{Count: 1, Total: 1, Theme: "dark", CanUndo: true, Tags: []string{"t-a"}}, st)

	_, env = do(t, s, http.MethodGet, "/api/v1/tags", nil)
	assert.JSONEq(t, `["t-a"]`, string(env.Data))
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)
	_, _ = do(t, s, http.MethodGet, "/healthz", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `contactpro_http_requests_total{method="GET"`)
	assert.Contains(t, string(body), `status="200"`)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newTestServer(t)
	resp, env := do(t, s, http.MethodGet, "/api/v1/nothing", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ROUTE_NOT_FOUND", env.Error.Code)
}

func TestMetrics_UnknownPathsShareOneLabel(t *testing.T) {
	s, _ := newTestServer(t)
	unmatched := httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := testutil.ToFloat64(unmatched)

	for i := range 3 {
		resp, _ := do(t, s, http.MethodGet, fmt.Sprintf("/random-%d", i), nil)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
	assert.Equal(t, before+3, testutil.ToFloat64(unmatched))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), `route="/random-`)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("x: %w", common.ErrValidation), http.StatusBadRequest, "VALIDATION_FAILED"},
		{fmt.Errorf("x: %w", common.ErrParse), http.StatusBadRequest, "PARSE_FAILED"},
		{fmt.Errorf("x: %w", common.ErrUnsupportedFormat), http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{fmt.Errorf("x: %w", common.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{common.ErrImportInProgress, http.StatusConflict, "IMPORT_IN_PROGRESS"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}
