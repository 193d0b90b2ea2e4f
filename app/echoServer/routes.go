package echoServer

import (
	"github.com/labstack/echo/v4"

	bookingctrl "shareit/app/echoServer/controller/booking"
	itemctrl "shareit/app/echoServer/controller/item"
	requestctrl "shareit/app/echoServer/controller/request"
	userctrl "shareit/app/echoServer/controller/user"
)

type C struct {
	User    *userctrl.Controller
	Item    *itemctrl.Controller
	Booking *bookingctrl.Controller
	Request *requestctrl.Controller
}

func Register(e *echo.Echo, c C) {
	// User CRUD carries no caller identity.
	users := e.Group("/users")
	users.POST("", c.User.Create)
	users.PATCH("/:userId", c.User.Update)
	users.GET("/:userId", c.User.ByID)
	users.DELETE("/:userId", c.User.Delete)
	users.GET("", c.User.All)

	items := e.Group("/items", SharerID())
	items.POST("", c.Item.Create)
	items.PATCH("/:itemId", c.Item.Update)
	items.GET("/:itemId", c.Item.ByID)
	items.GET("", c.Item.AllByOwner)
	items.GET("/search", c.Item.Search)
	items.POST("/:itemId/comment", c.Item.CreateComment)

	bookings := e.Group("/bookings", SharerID())
	bookings.POST("", c.Booking.Create)
	bookings.PATCH("/:bookingId", c.Booking.UpdateStatus)
	bookings.GET("/owner", c.Booking.AllByOwner)
	bookings.GET("/:bookingId", c.Booking.ByID)
	bookings.GET("", c.Booking.AllByBooker)

	requests := e.Group("/requests", SharerID())
	requests.POST("", c.Request.Create)
	requests.GET("/all", c.Request.All)
	requests.GET("/:requestId", c.Request.ByID)
	requests.GET("", c.Request.AllByUser)
}
