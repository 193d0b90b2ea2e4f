package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	rs "shareit/service/request"
	"shareit/util/errs"
	"shareit/util/pages"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return h.fail(c, "request create", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/:requestId
func (h *Controller) ByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByID(c.Request().Context(), id, uid)
	if err != nil {
		return h.fail(c, "request by id", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests
func (h *Controller) AllByUser(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.AllByUser(c.Request().Context(), uid)
	if err != nil {
		return h.fail(c, "requests by user", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /requests/all?from=&size=
func (h *Controller) All(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	from, size, err := pages.FromQuery(c.QueryParam("from"), c.QueryParam("size"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.All(c.Request().Context(), uid, from, size)
	if err != nil {
		return h.fail(c, "requests list", err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	if k := errs.KindOf(err); k != "" {
		return c.JSON(errs.HTTPStatus(k), echo.Map{"error": err.Error()})
	}
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	h.Log.Error(op, "err", err, "req_id", rid)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
