package booking_test

import (
	"context"
	"encoding/json"
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
	bookingctrl "shareit/app/echoServer/controller/booking"
	"shareit/model"
	bookingrepo "shareit/repository/booking"
	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"
)

type svcMock struct {
	createFn      func(ctx context.Context, bookerID int64, in bookingsvc.CreateInput) (*bookingsvc.View, error)
	approveFn     func(ctx context.Context, userID, bookingID int64, approved bool) (*bookingsvc.View, error)
	getFn         func(ctx context.Context, userID, bookingID int64) (*bookingsvc.View, error)
	getForUserFn  func(ctx context.Context, userID int64, state string, from, size int) ([]bookingsvc.View, error)
	getForOwnerFn func(ctx context.Context, userID int64, state string, from, size int) ([]bookingsvc.View, error)
}

func (m *svcMock) Create(ctx context.Context, bookerID int64, in bookingsvc.CreateInput) (*bookingsvc.View, error) {
	return m.createFn(ctx, bookerID, in)
}
func (m *svcMock) Approve(ctx context.Context, userID, bookingID int64, approved bool) (*bookingsvc.View, error) {
	return m.approveFn(ctx, userID, bookingID, approved)
}
func (m *svcMock) Get(ctx context.Context, userID, bookingID int64) (*bookingsvc.View, error) {
	return m.getFn(ctx, userID, bookingID)
}
func (m *svcMock) GetForUser(ctx context.Context, userID int64, state string, from, size int) ([]bookingsvc.View, error) {
	return m.getForUserFn(ctx, userID, state, from, size)
}
func (m *svcMock) GetForOwner(ctx context.Context, userID int64, state string, from, size int) ([]bookingsvc.View, error) {
	return m.getForOwnerFn(ctx, userID, state, from, size)
}
func (m *svcMock) NextForItem(ctx context.Context, itemID int64) (*bookingrepo.Short, error) {
	return nil, nil
}
func (m *svcMock) LastForItem(ctx context.Context, itemID int64) (*bookingrepo.Short, error) {
	return nil, nil
}
func (m *svcMock) HasPastForItem(ctx context.Context, userID, itemID int64) (bool, error) {
	return false, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, svc bookingsvc.Service, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	h := &bookingctrl.Controller{Svc: svc, V: validator.New(), Log: testLogger()}
	echoServer.Register(e, echoServer.C{Booking: h})

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echoServer.UserHeader, "5")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func view(id int64) *bookingsvc.View {
	return &bookingsvc.View{
		Booking: model.Booking{
			ID:       id,
			Start:    time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC),
			ItemID:   1,
			BookerID: 5,
			Status:   model.StatusWaiting,
		},
		ItemName:    "drill",
		ItemOwnerID: 2,
		BookerName:  "Bob",
	}
}

func TestCreate_Created(t *testing.T) {
	m := &svcMock{createFn: func(ctx context.Context, bookerID int64, in bookingsvc.CreateInput) (*bookingsvc.View, error) {
		require.Equal(t, int64(5), bookerID)
		require.Equal(t, int64(1), in.ItemID)
		return view(9), nil
	}}

	rec := serve(t, m, http.MethodPost, "/bookings",
		`{"itemId":1,"start":"2024-06-02T10:00:00Z","end":"2024-06-02T12:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp bookingctrl.BookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(9), resp.ID)
	require.Equal(t, "drill", resp.Item.Name)
	require.Equal(t, "Bob", resp.Booker.Name)
	require.Equal(t, model.StatusWaiting, resp.Status)
}

func TestCreate_MissingItemID(t *testing.T) {
	rec := serve(t, &svcMock{}, http.MethodPost, "/bookings",
		`{"start":"2024-06-02T10:00:00Z","end":"2024-06-02T12:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_MissingHeader(t *testing.T) {
	e := echo.New()
	h := &bookingctrl.Controller{Svc: &svcMock{}, V: validator.New(), Log: testLogger()}
	echoServer.Register(e, echoServer.C{Booking: h})

	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"itemId":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate_ServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperr.NotFound("item 1 not found"), http.StatusNotFound},
		{apperr.BadRequest("item 1 is not available"), http.StatusBadRequest},
		{apperr.Conflict("x"), http.StatusConflict},
	}
	for _, tc := range cases {
		m := &svcMock{createFn: func(ctx context.Context, bookerID int64, in bookingsvc.CreateInput) (*bookingsvc.View, error) {
			return nil, tc.err
		}}
		rec := serve(t, m, http.MethodPost, "/bookings",
			`{"itemId":1,"start":"2024-06-02T10:00:00Z","end":"2024-06-02T12:00:00Z"}`)
		require.Equal(t, tc.code, rec.Code)
	}
}

func TestApprove(t *testing.T) {
	m := &svcMock{approveFn: func(ctx context.Context, userID, bookingID int64, approved bool) (*bookingsvc.View, error) {
		require.Equal(t, int64(5), userID)
		require.Equal(t, int64(9), bookingID)
		require.True(t, approved)
		v := view(9)
		v.Status = model.StatusApproved
		return v, nil
	}}

	rec := serve(t, m, http.MethodPatch, "/bookings/9?approved=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"APPROVED"`)
}

func TestApprove_BadFlag(t *testing.T) {
	rec := serve(t, &svcMock{}, http.MethodPatch, "/bookings/9?approved=maybe", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListing_Defaults(t *testing.T) {
	m := &svcMock{getForUserFn: func(ctx context.Context, userID int64, state string, from, size int) ([]bookingsvc.View, error) {
		require.Equal(t, int64(5), userID)
		require.Equal(t, "ALL", state)
		require.Equal(t, 0, from)
		require.Equal(t, 100, size)
		return []bookingsvc.View{*view(3), *view(1)}, nil
	}}

	rec := serve(t, m, http.MethodGet, "/bookings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []bookingctrl.BookingResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
}

func TestListing_OwnerView(t *testing.T) {
	m := &svcMock{getForOwnerFn: func(ctx context.Context, userID int64, state string, from, size int) ([]bookingsvc.View, error) {
		require.Equal(t, "PAST", state)
		require.Equal(t, 2, from)
		require.Equal(t, 10, size)
		return nil, nil
	}}

	rec := serve(t, m, http.MethodGet, "/bookings/owner?state=PAST&from=2&size=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestListing_UnknownState(t *testing.T) {
	m := &svcMock{getForUserFn: func(ctx context.Context, userID int64, state string, from, size int) ([]bookingsvc.View, error) {
		_, err := model.ParseState(state)
		return nil, err
	}}

	rec := serve(t, m, http.MethodGet, "/bookings?state=SOON", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Unknown state: SOON")
}

func TestListing_NegativeFrom(t *testing.T) {
	rec := serve(t, &svcMock{}, http.MethodGet, "/bookings?from=-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListing_ZeroSize(t *testing.T) {
	rec := serve(t, &svcMock{}, http.MethodGet, "/bookings?size=0", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGet(t *testing.T) {
	m := &svcMock{getFn: func(ctx context.Context, userID, bookingID int64) (*bookingsvc.View, error) {
		return view(9), nil
	}}

	rec := serve(t, m, http.MethodGet, "/bookings/9", "")
	require.Equal(t, http.StatusOK, rec.Code)
}
