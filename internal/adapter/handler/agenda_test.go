package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/jh-117/meeting-agenda-builder-sub000/errors"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/domain/entities"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/infrastructure/cache"
	agendaUsecase "github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/agenda"
	exportUsecase "github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/export"
	"github.com/jh-117/meeting-agenda-builder-sub000/internal/usecase/generation"
	"github.com/jh-117/meeting-agenda-builder-sub000/pkg/config"
	pkgvalidator "github.com/jh-117/meeting-agenda-builder-sub000/pkg/validator"
)

// stubGenerator returns canned generation results.
type stubGenerator struct {
	err error
}

func sampleLists() entities.GeneratedLists {
	return entities.GeneratedLists{
		AgendaItems: []entities.AgendaItem{
			{ID: "a1", Topic: "Kickoff", TimeAllocation: 10},
			{ID: "a2", Topic: "Discussion", TimeAllocation: 30},
		},
		ActionItems: []entities.ActionItem{{Task: "Send notes"}},
	}
}

func (g *stubGenerator) Generate(_ context.Context, sub *entities.FormSubmission, _ string, _, _ *string) (*entities.AgendaData, error) {
	if g.err != nil {
		return nil, g.err
	}
	if sub == nil || strings.TrimSpace(sub.MeetingTitle) == "" {
		return nil, apperrors.ErrValidation(entities.ErrMissingTitle.Error())
	}
	agenda := sub.Metadata().WithLists(sampleLists())
	return &agenda, nil
}

func (g *stubGenerator) RegenerateAll(_ context.Context, _ *entities.AgendaData, _ string, _, _ *string) (*entities.GeneratedLists, error) {
	if g.err != nil {
		return nil, g.err
	}
	lists := sampleLists()
	return &lists, nil
}

func (g *stubGenerator) RegenerateItem(_ context.Context, item *entities.AgendaItem, _ entities.ItemContext, _ string) (*entities.AgendaItem, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &entities.AgendaItem{ID: item.ID, Topic: "Refined " + item.Topic, TimeAllocation: 15}, nil
}

var _ generation.Service = (*stubGenerator)(nil)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
	}
}

func newTestEnv(gen generation.Service) (*echo.Echo, *Router) {
	e := echo.New()
	e.Validator = pkgvalidator.New()

	sessions := agendaUsecase.NewService(cache.NewMemoryStore(time.Hour), gen, nil)
	agendaHandler := NewAgendaHandler(sessions, gen, nil)
	exportHandler := NewExportHandler(sessions, exportUsecase.NewService(nil), nil)
	router := NewRouter(testConfig(), agendaHandler, exportHandler, nil)
	router.Setup(e)
	return e, router
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode response: %v\n%s", err, rec.Body.String())
	}
	return envelope.Data
}

func TestGenerateEndpoint_Generate(t *testing.T) {
	e, _ := newTestEnv(&stubGenerator{})

	rec := doJSON(e, http.MethodPost, "/v1/generate", `{
		"action": "generate",
		"language": "en",
		"formData": {"meetingTitle": "Team Sync", "duration": 60}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	agendaData, ok := data["agendaData"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing agendaData: %v", data)
	}
	items, ok := agendaData["agendaItems"].([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 agenda items, got %v", agendaData["agendaItems"])
	}
}

func TestGenerateEndpoint_RejectsUnknownAction(t *testing.T) {
	e, _ := newTestEnv(&stubGenerator{})

	rec := doJSON(e, http.MethodPost, "/v1/generate", `{
		"action": "summon",
		"language": "en"
	}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGenerateEndpoint_RejectsMissingPayloadForAction(t *testing.T) {
	e, _ := newTestEnv(&stubGenerator{})

	cases := []string{
		`{"action": "generate", "language": "en"}`,
		`{"action": "regenerate", "language": "en"}`,
		`{"action": "regenerate_item", "language": "en"}`,
	}
	for i, body := range cases {
		rec := doJSON(e, http.MethodPost, "/v1/generate", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d: %s", i, rec.Code, rec.Body.String())
		}
	}
}

func TestGenerateEndpoint_RegenerateItem(t *testing.T) {
	e, _ := newTestEnv(&stubGenerator{})

	rec := doJSON(e, http.MethodPost, "/v1/generate", `{
		"action": "regenerate_item",
		"language": "en",
		"itemData": {"id": "a2", "topic": "Discussion"},
		"context": {"meetingTitle": "Team Sync"}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	item, ok := data["itemData"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing itemData: %v", data)
	}
	if item["topic"] != "Refined Discussion" {
		t.Fatalf("unexpected topic %v", item["topic"])
	}
}

func TestGenerateEndpoint_BackendFailureMaps502(t *testing.T) {
	e, _ := newTestEnv(&stubGenerator{err: apperrors.ErrGeneration(entities.ErrEmptyResponse)})

	rec := doJSON(e, http.MethodPost, "/v1/generate", `{
		"action": "generate",
		"language": "en",
		"formData": {"meetingTitle": "Team Sync", "duration": 60}
	}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSessionLifecycleEndpoints(t *testing.T) {
	e, _ := newTestEnv(&stubGenerator{})

	rec := doJSON(e, http.MethodPost, "/v1/agendas", `{
		"language": "en",
		"formData": {"meetingTitle": "Team Sync", "duration": 60}
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	session := decodeData(t, rec)
	id, _ := session["id"].(string)
	if id == "" {
		t.Fatalf("missing session id: %v", session)
	}

	rec = doJSON(e, http.MethodGet, "/v1/agendas/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPatch, "/v1/agendas/"+id+"/fields", `{"field": "location", "value": "Room 4"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("field edit: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/v1/agendas/"+id+"/reorder", `{"activeId": "a1", "overId": "a2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodDelete, "/v1/agendas/"+id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/v1/agendas/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestSessionEndpoints_UnknownSession(t *testing.T) {
	e, _ := newTestEnv(&stubGenerator{})

	rec := doJSON(e, http.MethodGet, "/v1/agendas/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Code != int(apperrors.ErrorCode_SESSION_NOT_FOUND) {
		t.Fatalf("expected session not found code, got %d", body.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := newTestEnv(&stubGenerator{})

	rec := doJSON(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
