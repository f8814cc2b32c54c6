package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fleetdock/internal/audit"
	"fleetdock/internal/auth"
	"fleetdock/internal/fleet/application"
	fleet "fleetdock/internal/fleet/domain"
	"fleetdock/internal/fleet/store"
	"fleetdock/internal/storage"
)

var testSecret = []byte("handler-test-secret")

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemory()
	st, err := store.Open(ctx, kv)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	auditLog, err := audit.NewStore(kv)
	if err != nil {
		t.Fatalf("open audit store: %v", err)
	}
	service, err := application.NewService(st, auditLog, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	sessions, err := auth.OpenSessions(ctx, kv, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("open sessions: %v", err)
	}
	router, err := NewRouter(service, sessions, testSecret)
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func login(t *testing.T, server *httptest.Server, email, password string) string {
	t.Helper()
	body := strings.NewReader(`{"email":"` + email + `","password":"` + password + `"}`)
	resp, err := http.Post(server.URL+"/api/v1/auth/login", "application/json", body)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out.Token
}

func doRequest(t *testing.T, server *httptest.Server, method, path, token string, body []byte) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestLoginFailureKeepsSessionOut(t *testing.T) {
	server := newTestServer(t)

	body := strings.NewReader(`{"email":"admin@fleetdock.local","password":"wrong"}`)
	resp, err := http.Post(server.URL+"/api/v1/auth/login", "application/json", body)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	msg, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(msg), "invalid email or password") {
		t.Fatalf("unexpected error body: %q", msg)
	}
}

func TestListShipsRequiresToken(t *testing.T) {
	server := newTestServer(t)

	resp := doRequest(t, server, http.MethodGet, "/api/v1/ships", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	token := login(t, server, "admin@fleetdock.local", "admin123")
	resp = doRequest(t, server, http.MethodGet, "/api/v1/ships", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	ships := decodeBody[[]fleet.Ship](t, resp)
	if len(ships) != 2 {
		t.Fatalf("expected 2 seeded ships, got %d", len(ships))
	}
}

func TestCreateShipValidatesIMO(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "admin@fleetdock.local", "admin123")

	resp := doRequest(t, server, http.MethodPost, "/api/v1/ships", token,
		[]byte(`{"name":"Bad IMO","imo":"12345","flag":"Panama","status":"Active"}`))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	msg, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(msg), "IMO number must be 7 digits") {
		t.Fatalf("unexpected error body: %q", msg)
	}
}

func TestInspectorCannotCreateShip(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "inspector@fleetdock.local", "inspect123")

	resp := doRequest(t, server, http.MethodPost, "/api/v1/ships", token,
		[]byte(`{"name":"Blocked","imo":"1234567","flag":"Panama","status":"Active"}`))
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestDeleteShipRequiresConfirmAndCascades(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "admin@fleetdock.local", "admin123")

	resp := doRequest(t, server, http.MethodDelete, "/api/v1/ships/s1", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 without confirm, got %d", resp.StatusCode)
	}

	resp = doRequest(t, server, http.MethodDelete, "/api/v1/ships/s1?confirm=true", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = doRequest(t, server, http.MethodGet, "/api/v1/ships/s1", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}

	resp = doRequest(t, server, http.MethodGet, "/api/v1/components", token, nil)
	components := decodeBody[[]fleet.Component](t, resp)
	for _, component := range components {
		if component.ShipID == "s1" {
			t.Fatalf("component %s survived ship delete", component.ID)
		}
	}
	resp = doRequest(t, server, http.MethodGet, "/api/v1/jobs?shipId=s1", token, nil)
	jobs := decodeBody[[]fleet.Job](t, resp)
	if len(jobs) != 0 {
		t.Fatalf("expected no jobs for deleted ship, got %d", len(jobs))
	}
}

func TestCreateComponentComputesDueDate(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "admin@fleetdock.local", "admin123")

	resp := doRequest(t, server, http.MethodPost, "/api/v1/components", token,
		[]byte(`{"shipId":"s1","name":"Ballast Pump","serialNumber":"BP-0001","installDate":"2023-04-01T00:00:00Z","lastMaintenanceDate":"2025-01-10T00:00:00Z"}`))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	component := decodeBody[fleet.Component](t, resp)
	want := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	if !component.NextMaintenanceDate.Equal(want) {
		t.Fatalf("expected due date %s, got %s", want, component.NextMaintenanceDate)
	}
}

func TestCreateComponentRejectsUnknownShip(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "admin@fleetdock.local", "admin123")

	resp := doRequest(t, server, http.MethodPost, "/api/v1/components", token,
		[]byte(`{"shipId":"ghost","name":"Pump","serialNumber":"P-1","installDate":"2023-04-01T00:00:00Z","lastMaintenanceDate":"2025-01-10T00:00:00Z"}`))
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestJobCompletionFlowsThroughFeed(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "engineer@fleetdock.local", "engine123")

	resp := doRequest(t, server, http.MethodPut, "/api/v1/jobs/j1", token,
		[]byte(`{"status":"Completed"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	job := decodeBody[fleet.Job](t, resp)
	if job.Status != fleet.JobStatusCompleted {
		t.Fatalf("expected completed status, got %q", job.Status)
	}

	resp = doRequest(t, server, http.MethodGet, "/api/v1/notifications", token, nil)
	feed := decodeBody[[]fleet.Notification](t, resp)
	if len(feed) == 0 {
		t.Fatal("expected a notification")
	}
	first := feed[0]
	if first.Type != fleet.NotificationJobCompleted {
		t.Fatalf("expected job_completed, got %q", first.Type)
	}
	if first.Message != "Job Completed for Main Engine" {
		t.Fatalf("unexpected message: %q", first.Message)
	}

	resp = doRequest(t, server, http.MethodPost, "/api/v1/notifications/"+first.ID+"/read", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 marking read, got %d", resp.StatusCode)
	}
	resp = doRequest(t, server, http.MethodDelete, "/api/v1/notifications/"+first.ID, token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 dismissing, got %d", resp.StatusCode)
	}
}

func TestEngineerCannotDeleteJob(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "engineer@fleetdock.local", "engine123")

	resp := doRequest(t, server, http.MethodDelete, "/api/v1/jobs/j1?confirm=true", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestAdminUsersRouteIsGated(t *testing.T) {
	server := newTestServer(t)

	inspector := login(t, server, "inspector@fleetdock.local", "inspect123")
	resp := doRequest(t, server, http.MethodGet, "/api/v1/admin/users", inspector, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for inspector, got %d", resp.StatusCode)
	}

	admin := login(t, server, "admin@fleetdock.local", "admin123")
	resp = doRequest(t, server, http.MethodGet, "/api/v1/admin/users", admin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if strings.Contains(string(raw), "password") {
		t.Fatalf("user listing leaked passwords: %s", raw)
	}
}

func TestCalendarMonth(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "inspector@fleetdock.local", "inspect123")

	resp := doRequest(t, server, http.MethodGet, "/api/v1/calendar?month=2025-06", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	type day struct {
		Date time.Time   `json:"date"`
		Jobs []fleet.Job `json:"jobs"`
	}
	days := decodeBody[[]day](t, resp)
	if len(days) != 30 {
		t.Fatalf("expected 30 days in June, got %d", len(days))
	}
	if len(days[4].Jobs) != 1 || days[4].Jobs[0].ID != "j1" {
		t.Fatalf("expected j1 on June 5, got %+v", days[4])
	}

	resp = doRequest(t, server, http.MethodGet, "/api/v1/calendar?month=bogus", token, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad month, got %d", resp.StatusCode)
	}
}

func TestExports(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "admin@fleetdock.local", "admin123")

	resp := doRequest(t, server, http.MethodGet, "/api/v1/exports/fleet.xlsx", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for xlsx, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected xlsx content type: %q", got)
	}
	resp.Body.Close()

	resp = doRequest(t, server, http.MethodGet, "/api/v1/exports/fleet.pdf", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for pdf, got %d", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("expected pdf magic, got %q", raw[:8])
	}
}

func TestUpdateMissingShipReturns404(t *testing.T) {
	server := newTestServer(t)
	token := login(t, server, "admin@fleetdock.local", "admin123")

	resp := doRequest(t, server, http.MethodPut, "/api/v1/ships/ghost", token,
		[]byte(`{"name":"Renamed"}`))
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
