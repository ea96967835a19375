package gateway

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer"
	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
	"shareit/model"
)

// Handlers validate the request shape (reusing the service's own DTO types)
// and forward. Stricter than the backend on one point: a booking window must
// lie entirely in the future to even reach the service.
type Handlers struct {
	Client *Client
	V      *validator.Validate
	Log    *slog.Logger
}

func Register(e *echo.Echo, h *Handlers) {
	users := e.Group("/users")
	users.POST("", h.createUser)
	users.GET("", h.forward)
	users.GET("/:id", h.forward)
	users.PATCH("/:id", h.updateUser)
	users.DELETE("/:id", h.forward)

	items := e.Group("/items", echoServer.CurrentUser())
	items.POST("", h.createItem)
	items.GET("", h.paged)
	items.GET("/search", h.paged)
	items.GET("/:id", h.forward)
	items.PATCH("/:id", h.updateItem)
	items.DELETE("/:id", h.forward)
	items.POST("/:id/comment", h.createComment)

	bookings := e.Group("/bookings", echoServer.CurrentUser())
	bookings.POST("", h.createBooking)
	bookings.GET("", h.bookingListing)
	bookings.GET("/owner", h.bookingListing)
	bookings.GET("/:id", h.forward)
	bookings.PATCH("/:id", h.approveBooking)

	requests := e.Group("/requests", echoServer.CurrentUser())
	requests.POST("", h.createRequest)
	requests.GET("", h.forward)
	requests.GET("/all", h.paged)
	requests.GET("/:id", h.forward)
}

func (h *Handlers) forward(c echo.Context) error {
	return h.Client.Forward(c, nil)
}

func (h *Handlers) createUser(c echo.Context) error {
	var req userctrl.CreateUserReq
	return h.validated(c, &req)
}

func (h *Handlers) updateUser(c echo.Context) error {
	var req userctrl.UpdateUserReq
	return h.validated(c, &req)
}

func (h *Handlers) createItem(c echo.Context) error {
	var req itemctrl.CreateItemReq
	return h.validated(c, &req)
}

func (h *Handlers) updateItem(c echo.Context) error {
	var req itemctrl.UpdateItemReq
	return h.validated(c, &req)
}

func (h *Handlers) createComment(c echo.Context) error {
	var req itemctrl.CreateCommentReq
	return h.validated(c, &req)
}

func (h *Handlers) createRequest(c echo.Context) error {
	var req requestctrl.CreateRequestReq
	return h.validated(c, &req)
}

func (h *Handlers) createBooking(c echo.Context) error {
	var req bookingctrl.CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error: " + err.Error()})
	}
	now := time.Now().UTC()
	if !req.Start.After(now) || !req.End.After(now) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking window must be in the future"})
	}
	return h.Client.Forward(c, req)
}

func (h *Handlers) approveBooking(c echo.Context) error {
	if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be a boolean"})
	}
	return h.Client.Forward(c, nil)
}

func (h *Handlers) bookingListing(c echo.Context) error {
	if state := c.QueryParam("state"); state != "" {
		if _, err := model.ParseState(state); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
	}
	return h.paged(c)
}

func (h *Handlers) paged(c echo.Context) error {
	if raw := c.QueryParam("from"); raw != "" {
		if from, err := strconv.Atoi(raw); err != nil || from < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be a non-negative integer"})
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err != nil || size < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "size must be a positive integer"})
		}
	}
	return h.Client.Forward(c, nil)
}

// validated binds, validates and forwards the re-marshalled payload.
func (h *Handlers) validated(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error: " + err.Error()})
	}
	return h.Client.Forward(c, req)
}
