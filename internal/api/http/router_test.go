package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ZeynepCam13/OnlineDestek/internal/api/http/handlers"
	"github.com/ZeynepCam13/OnlineDestek/internal/auth"
	"github.com/ZeynepCam13/OnlineDestek/internal/config"
	"github.com/ZeynepCam13/OnlineDestek/internal/domain"
	"github.com/ZeynepCam13/OnlineDestek/internal/events"
	"github.com/ZeynepCam13/OnlineDestek/internal/observability"
	"github.com/ZeynepCam13/OnlineDestek/internal/persistence"
	"github.com/ZeynepCam13/OnlineDestek/internal/service"
	"github.com/ZeynepCam13/OnlineDestek/internal/session"
)

type memUserRepo struct {
	nextID int64
	byID   map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, byID: map[int64]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range m.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	copied := *u
	m.byID[u.ID] = &copied
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memTicketRepo struct {
	nextID  int64
	tickets []domain.Ticket
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{nextID: 1}
}

func (m *memTicketRepo) Create(_ context.Context, t *domain.Ticket) error {
	t.ID = m.nextID
	m.nextID++
	t.CreatedAt = time.Now()
	m.tickets = append(m.tickets, *t)
	return nil
}

func (m *memTicketRepo) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			copied := m.tickets[i]
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memTicketRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0)
	for _, t := range m.tickets {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	return append([]domain.Ticket{}, m.tickets...), nil
}

func (m *memTicketRepo) UpdateStatus(_ context.Context, id int64, status domain.TicketStatus) error {
	for i := range m.tickets {
		if m.tickets[i].ID == id {
			m.tickets[i].Status = status
		}
	}
	return nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	authCfg := config.AuthConfig{BcryptCost: 4, SessionTTLMinutes: 60, SessionCookie: "session_id"}
	userRepo := newMemUserRepo()
	ticketRepo := newMemTicketRepo()
	sessions := session.NewMemoryManager()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(authCfg, service.AuthDependencies{
		UserRepo: userRepo,
		Sessions: sessions,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Dispatcher: dispatcher,
	})

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:       handlers.NewHealthHandler("test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
		Users:        handlers.NewUsersHandler(authService, authCfg),
		Tickets:      handlers.NewTicketsHandler(ticketService),
		AdminTickets: handlers.NewAdminTicketsHandler(ticketService),
		Sessions:     auth.NewSessionMiddleware(sessions, authCfg.SessionCookie),
		UserRepo:     userRepo,
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func registerPayload(username string) map[string]any {
	return map[string]any{
		"fullname": username + " Example",
		"email":    username + "@example.com",
		"phone":    "5551234",
		"username": username,
		"password": "password1",
	}
}

func registerUser(t *testing.T, app *fiber.App, username string) {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/register", registerPayload(username))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func loginUser(t *testing.T, app *fiber.App, username string) *http.Cookie {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/login", map[string]any{
		"username": username,
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}
	t.Fatalf("login response did not set session cookie")
	return nil
}

func TestRegisterEndpoint(t *testing.T) {
	app := newTestApp(t)

	payload := registerPayload("alice")
	payload["password"] = "12345"
	resp := doRequest(t, app, http.MethodPost, "/api/register", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeBody(t, resp), "error")

	payload["password"] = "123456"
	resp = doRequest(t, app, http.MethodPost, "/api/register", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	require.EqualValues(t, 1, body["userId"])
	require.NotEmpty(t, body["message"])

	// Same username, different email: the uniqueness violation surfaces
	// as a 5xx, matching the public contract.
	dup := registerPayload("alice")
	dup["email"] = "other@example.com"
	resp = doRequest(t, app, http.MethodPost, "/api/register", dup)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, decodeBody(t, resp), "error")
}

func TestLoginAndProfile(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice")

	resp := doRequest(t, app, http.MethodPost, "/api/login", map[string]any{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cookie := loginUser(t, app, "alice")

	resp = doRequest(t, app, http.MethodGet, "/api/profile", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok, "profile body: %v", body)
	require.Equal(t, "alice", user["username"])
	require.NotContains(t, user, "password")
	require.NotContains(t, user, "password_hash")

	// No session at all.
	resp = doRequest(t, app, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutDestroysSession(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice")
	cookie := loginUser(t, app, "alice")

	resp := doRequest(t, app, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/profile", nil, cookie)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Logout without a live session still succeeds.
	resp = doRequest(t, app, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTicketOwnershipAndOpenLookup(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "alice")
	registerUser(t, app, "bob")
	aliceCookie := loginUser(t, app, "alice")
	bobCookie := loginUser(t, app, "bob")

	resp := doRequest(t, app, http.MethodPost, "/api/tickets", map[string]any{
		"title":       "T1",
		"description": "printer on fire",
	}, aliceCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	require.Equal(t, "open", created["status"])
	ticketID := int64(created["id"].(float64))

	resp = doRequest(t, app, http.MethodGet, "/api/tickets", nil, aliceCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decodeList(t, resp), 1)

	resp = doRequest(t, app, http.MethodGet, "/api/tickets", nil, bobCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decodeList(t, resp), 0)

	// Lookup by id needs no session at all.
	resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/tickets/%d", ticketID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "T1", decodeBody(t, resp)["title"])

	resp = doRequest(t, app, http.MethodGet, "/api/tickets/999", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Creating a ticket does require a session.
	resp = doRequest(t, app, http.MethodPost, "/api/tickets", map[string]any{"title": "x"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminGating(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "admin")
	registerUser(t, app, "bob")
	bobCookie := loginUser(t, app, "bob")

	resp := doRequest(t, app, http.MethodGet, "/api/admin/tickets", nil, bobCookie)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/admin/tickets", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPost, "/api/admin/tickets/1/status",
		map[string]any{"status": "closed"}, bobCookie)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminStatusFlow(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "admin")
	registerUser(t, app, "bob")
	adminCookie := loginUser(t, app, "admin")
	bobCookie := loginUser(t, app, "bob")

	resp := doRequest(t, app, http.MethodPost, "/api/tickets", map[string]any{
		"title": "T1",
	}, bobCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ticketID := int64(decodeBody(t, resp)["id"].(float64))

	resp = doRequest(t, app, http.MethodGet, "/api/admin/tickets", nil, adminCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	all := decodeList(t, resp)
	require.Len(t, all, 1)
	require.Equal(t, "T1", all[0]["title"])
	require.Equal(t, "open", all[0]["status"])

	resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/api/admin/tickets/%d/status", ticketID),
		map[string]any{"status": "closed"}, adminCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, http.MethodGet, "/api/tickets", nil, bobCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	own := decodeList(t, resp)
	require.Len(t, own, 1)
	require.Equal(t, "closed", own[0]["status"])
}

func TestAdminStatusUpdateMissingTicketIsNoOp(t *testing.T) {
	app := newTestApp(t)
	registerUser(t, app, "admin")
	adminCookie := loginUser(t, app, "admin")

	resp := doRequest(t, app, http.MethodPost, "/api/admin/tickets/999/status",
		map[string]any{"status": "closed"}, adminCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, decodeBody(t, resp)["message"])

	resp = doRequest(t, app, http.MethodPost, "/api/admin/tickets/999/status",
		map[string]any{"status": ""}, adminCookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alive", decodeBody(t, resp)["status"])
}
