package request

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/model"
	requestsvc "shareit/service/request"
	"shareit/util/apperr"
)

type CreateRequestReq struct {
	Description string `json:"description" validate:"required"`
}

type RequestResp struct {
	ID          int64        `json:"id"`
	Description string       `json:"description"`
	Created     time.Time    `json:"created"`
	Items       []model.Item `json:"items"`
}

func toResp(v *requestsvc.View) RequestResp {
	return RequestResp{
		ID:          v.Request.ID,
		Description: v.Request.Description,
		Created:     v.Request.Created,
		Items:       v.Items,
	}
}

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
// @Summary  Broadcast a request for an item
// @Tags     requests
// @Success  201 {object} model.Request
// @Router   /requests [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error: " + err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	rq, err := h.Svc.Add(c.Request().Context(), uid, req.Description)
	if err != nil {
		return h.fail(c, "request create", err)
	}
	return c.JSON(http.StatusCreated, rq)
}

// GET /requests
func (h *Controller) GetForAuthor(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	vs, err := h.Svc.GetForAuthor(c.Request().Context(), uid)
	if err != nil {
		return h.fail(c, "request list", err)
	}
	return c.JSON(http.StatusOK, toResps(vs))
}

// GET /requests/all?from=&size=
func (h *Controller) GetAll(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	vs, err := h.Svc.GetAll(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, "request list all", err)
	}
	return c.JSON(http.StatusOK, toResps(vs))
}

// GET /requests/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	v, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "request get", err)
	}
	return c.JSON(http.StatusOK, toResp(v))
}

func toResps(vs []requestsvc.View) []RequestResp {
	out := make([]RequestResp, 0, len(vs))
	for i := range vs {
		out = append(out, toResp(&vs[i]))
	}
	return out
}

func pageParams(c echo.Context) (from, size int, err error) {
	from, size = 0, 100
	if raw := c.QueryParam("from"); raw != "" {
		from, err = strconv.Atoi(raw)
		if err != nil || from < 0 {
			return 0, 0, errors.New("from must be a non-negative integer")
		}
	}
	if raw := c.QueryParam("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 {
			return 0, 0, errors.New("size must be a positive integer")
		}
	}
	return from, size, nil
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	if apperr.KindOf(err) == apperr.KindUnknown {
		h.Log.Error(op, "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(apperr.HTTPStatus(err), echo.Map{"error": err.Error()})
}
