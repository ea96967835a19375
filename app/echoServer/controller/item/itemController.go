package item

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/model"
	itemsvc "shareit/service/item"
	"shareit/util/apperr"
)

type Controller struct {
	Svc itemsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /items
// @Summary  List an item for sharing
// @Tags     items
// @Success  201 {object} model.Item
// @Router   /items [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error: " + err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	i, err := h.Svc.Add(c.Request().Context(), uid, itemsvc.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return h.fail(c, "item create", err)
	}
	return c.JSON(http.StatusCreated, i)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	i, err := h.Svc.Update(c.Request().Context(), uid, id, itemsvc.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return h.fail(c, "item update", err)
	}
	return c.JSON(http.StatusOK, i)
}

// DELETE /items/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Delete(c.Request().Context(), uid, id); err != nil {
		return h.fail(c, "item delete", err)
	}
	return c.NoContent(http.StatusOK)
}

// GET /items/:id
func (h *Controller) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	v, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return h.fail(c, "item get", err)
	}
	return c.JSON(http.StatusOK, toDetailResp(v))
}

// GET /items?from=&size=
func (h *Controller) GetAll(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	vs, err := h.Svc.GetAll(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, "item list", err)
	}
	return c.JSON(http.StatusOK, toDetailResps(vs))
}

// GET /items/search?text=&from=&size=
func (h *Controller) Search(c echo.Context) error {
	from, size, err := pageParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return h.fail(c, "item search", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items/:id/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation error: " + err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	v, err := h.Svc.AddComment(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return h.fail(c, "comment create", err)
	}
	return c.JSON(http.StatusCreated, toCommentResp(v))
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
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
