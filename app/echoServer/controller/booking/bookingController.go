package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	bs "shareit/service/booking"
	"shareit/util/errs"
	"shareit/util/pages"
)

type Controller struct {
	Svc bs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start.Time, req.End.Time)
	if err != nil {
		return h.fail(c, "booking create", err)
	}
	return c.JSON(http.StatusOK, out)
}

// PATCH /bookings/:bookingId?approved=bool
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "approved must be true or false"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.UpdateStatus(c.Request().Context(), id, uid, approved)
	if err != nil {
		return h.fail(c, "booking update status", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings/:bookingId
func (h *Controller) ByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	uid, _ := c.Get("user_id").(int64)

	out, err := h.Svc.ByID(c.Request().Context(), id, uid)
	if err != nil {
		return h.fail(c, "booking by id", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings?state=&from=&size=
func (h *Controller) AllByBooker(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	state, from, size, err := listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.AllByBooker(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return h.fail(c, "bookings by booker", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) AllByOwner(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	state, from, size, err := listParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.AllByOwner(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return h.fail(c, "bookings by owner", err)
	}
	return c.JSON(http.StatusOK, out)
}

func listParams(c echo.Context) (string, int, int, error) {
	state := c.QueryParam("state")
	if state == "" {
		state = "ALL"
	}
	from, size, err := pages.FromQuery(c.QueryParam("from"), c.QueryParam("size"))
	return state, from, size, err
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	if k := errs.KindOf(err); k != "" {
		return c.JSON(errs.HTTPStatus(k), echo.Map{"error": err.Error()})
	}
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	h.Log.Error(op, "err", err, "req_id", rid)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
