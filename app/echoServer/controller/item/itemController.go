package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	is "shareit/service/item"
	"shareit/util/errs"
	"shareit/util/pages"
)

type Controller struct {
	Svc is.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create a new item
// @Summary      List an item
// @Description  Create an item owned by the calling user; optionally bound to an item request
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        X-Sharer-User-Id  header  integer  true  "Caller id"
// @Param        payload  body  CreateItemReq  true  "Item payload"
// @Success      200  {object}  model.ItemView
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /items [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Add(c.Request().Context(), uid, is.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return h.fail(c, "item create", err)
	}
	return c.JSON(http.StatusOK, out)
}

// PATCH /items/:itemId
func (h *Controller) Update(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Update(c.Request().Context(), id, uid, is.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return h.fail(c, "item update", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /items/:itemId
func (h *Controller) ByID(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByID(c.Request().Context(), id, uid)
	if err != nil {
		return h.fail(c, "item by id", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /items?from=&size=
func (h *Controller) AllByOwner(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	from, size, err := pages.FromQuery(c.QueryParam("from"), c.QueryParam("size"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.AllByOwner(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, "items by owner", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /items/search?text=&from=&size=
func (h *Controller) Search(c echo.Context) error {
	from, size, err := pages.FromQuery(c.QueryParam("from"), c.QueryParam("size"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return h.fail(c, "item search", err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /items/:itemId/comment
func (h *Controller) CreateComment(c echo.Context) error {
	id, err := itemID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req CreateCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.AddComment(c.Request().Context(), id, uid, req.Text)
	if err != nil {
		return h.fail(c, "comment create", err)
	}
	return c.JSON(http.StatusOK, out)
}

func itemID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("itemId"), 10, 64)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	if k := errs.KindOf(err); k != "" {
		return c.JSON(errs.HTTPStatus(k), echo.Map{"error": err.Error()})
	}
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	h.Log.Error(op, "err", err, "req_id", rid)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
