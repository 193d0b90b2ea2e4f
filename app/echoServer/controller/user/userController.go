package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	us "shareit/service/user"
	"shareit/util/errs"
)

type Controller struct {
	Svc us.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Register a new user
// @Summary      Create user
// @Description  Register a user with a unique email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateUserReq  true  "User payload"
// @Success      200  {object}  model.User
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email already registered"
// @Router       /users [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.Add(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return h.fail(c, "user create", err)
	}
	return c.JSON(http.StatusOK, out)
}

// PATCH /users/:userId
func (h *Controller) Update(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	out, err := h.Svc.Update(c.Request().Context(), id, req.Name, req.Email)
	if err != nil {
		return h.fail(c, "user update", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /users/:userId
func (h *Controller) ByID(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	out, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "user by id", err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /users/:userId
func (h *Controller) Delete(c echo.Context) error {
	id, err := userID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	out, err := h.Svc.Delete(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "user delete", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /users
func (h *Controller) All(c echo.Context) error {
	out, err := h.Svc.All(c.Request().Context())
	if err != nil {
		return h.fail(c, "users list", err)
	}
	return c.JSON(http.StatusOK, out)
}

func userID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("userId"), 10, 64)
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	if k := errs.KindOf(err); k != "" {
		return c.JSON(errs.HTTPStatus(k), echo.Map{"error": err.Error()})
	}
	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	h.Log.Error(op, "err", err, "req_id", rid)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
