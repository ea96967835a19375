package gateway_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"shareit/app/echoServer"
	"shareit/gateway"
)

type backendCall struct {
	method string
	path   string
	query  string
	header string
	body   string
}

// newGateway spins up a fake backend and a gateway wired to it. Calls reaching
// the backend are recorded so tests can assert on what was (not) forwarded.
func newGateway(t *testing.T, status int, reply string) (*echo.Echo, *[]backendCall) {
	t.Helper()

	var calls []backendCall
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		calls = append(calls, backendCall{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			header: r.Header.Get(echoServer.UserHeader),
			body:   string(body),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(backend.Close)

	e := echo.New()
	h := &gateway.Handlers{
		Client: gateway.NewClient(backend.URL),
		V:      validator.New(),
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	gateway.Register(e, h)
	return e, &calls
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echoServer.UserHeader, "7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestForward_RelaysBackendResponse(t *testing.T) {
	e, calls := newGateway(t, http.StatusOK, `[{"id":1}]`)

	rec := do(e, http.MethodGet, "/items?from=0&size=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"id":1}]`, rec.Body.String())

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	require.Equal(t, "/items", call.path)
	require.Equal(t, "from=0&size=5", call.query)
	require.Equal(t, "7", call.header)
}

func TestForward_RelaysBackendError(t *testing.T) {
	e, _ := newGateway(t, http.StatusNotFound, `{"error":"item 3 not found"}`)

	rec := do(e, http.MethodGet, "/items/3", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "item 3 not found")
}

func TestCreateBooking_PastWindowRejectedLocally(t *testing.T) {
	e, calls := newGateway(t, http.StatusCreated, `{}`)

	rec := do(e, http.MethodPost, "/bookings",
		`{"itemId":1,"start":"2020-01-01T10:00:00Z","end":"2020-01-01T12:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, *calls)
}

func TestCreateBooking_FutureWindowForwarded(t *testing.T) {
	e, calls := newGateway(t, http.StatusCreated, `{"id":1}`)

	start := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)
	rec := do(e, http.MethodPost, "/bookings",
		`{"itemId":1,"start":"`+start+`","end":"`+end+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, *calls, 1)
	body := (*calls)[0].body
	require.Contains(t, body, `"itemId":1`)
}

func TestCreateUser_InvalidEmailRejectedLocally(t *testing.T) {
	e, calls := newGateway(t, http.StatusCreated, `{}`)

	rec := do(e, http.MethodPost, "/users", `{"name":"Ann","email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, *calls)
}

func TestBookingListing_UnknownStateRejectedLocally(t *testing.T) {
	e, calls := newGateway(t, http.StatusOK, `[]`)

	rec := do(e, http.MethodGet, "/bookings?state=SOON", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Unknown state: SOON")
	require.Empty(t, *calls)
}

func TestPaged_BadSizeRejectedLocally(t *testing.T) {
	e, calls := newGateway(t, http.StatusOK, `[]`)

	rec := do(e, http.MethodGet, "/requests/all?size=0", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, *calls)
}

func TestMissingHeaderRejectedLocally(t *testing.T) {
	e, calls := newGateway(t, http.StatusOK, `[]`)

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, *calls)
}
