package booking

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
// @Summary  Book an item for a time window
// @Tags     bookings
// @Success  201 {object} BookingResp
// @Failure  400 {object} map[string]any
// @Failure  404 {object} map[string]any
// @Router   /bookings [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error: " + err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	v, err := h.Svc.Create(c.Request().Context(), uid, bookingsvc.CreateInput{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	})
	if err != nil {
		return h.fail(c, "booking create", err)
	}
	return c.JSON(http.StatusCreated, toResp(v))
}

// PATCH /bookings/:id?approved=bool
func (h *Controller) Approve(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be a boolean"})
	}
	uid, _ := c.Get("user_id").(int64)

	v, err := h.Svc.Approve(c.Request().Context(), uid, id, approved)
	if err != nil {
		return h.fail(c, "booking approve", err)
	}
	return c.JSON(http.StatusOK, toResp(v))
}

// GET /bookings/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	v, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "booking get", err)
	}
	return c.JSON(http.StatusOK, toResp(v))
}

// GET /bookings?state=&from=&size=
func (h *Controller) GetForUser(c echo.Context) error {
	return h.list(c, h.Svc.GetForUser)
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) GetForOwner(c echo.Context) error {
	return h.list(c, h.Svc.GetForOwner)
}

func (h *Controller) list(c echo.Context, fetch func(ctx context.Context, userID int64, state string, from, size int) ([]bookingsvc.View, error)) error {
	state := c.QueryParam("state")
	if state == "" {
		state = "ALL"
	}
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	vs, err := fetch(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return h.fail(c, "booking list", err)
	}
	return c.JSON(http.StatusOK, toResps(vs))
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	if apperr.KindOf(err) == apperr.KindUnknown {
		h.Log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(apperr.HTTPStatus(err), echo.Map{"error": err.Error()})
}
