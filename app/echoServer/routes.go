package echoServer

import (
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// user administration does not require the sharer header
	users := e.Group("/users")
	users.POST("", c.User.Create)
	users.GET("", c.User.GetAll)
	users.GET("/:id", c.User.Get)
	users.PATCH("/:id", c.User.Update)
	users.DELETE("/:id", c.User.Delete)

	items := e.Group("/items", CurrentUser())
	items.POST("", c.Item.Create)
	items.GET("", c.Item.GetAll)
	items.GET("/search", c.Item.Search)
	items.GET("/:id", c.Item.Get)
	items.PATCH("/:id", c.Item.Update)
	items.DELETE("/:id", c.Item.Delete)
	items.POST("/:id/comment", c.Item.AddComment)

	bookings := e.Group("/bookings", CurrentUser())
	bookings.POST("", c.Booking.Create)
	bookings.GET("", c.Booking.GetForUser)
	bookings.GET("/owner", c.Booking.GetForOwner)
	bookings.GET("/:id", c.Booking.Get)
	bookings.PATCH("/:id", c.Booking.Approve)

	requests := e.Group("/requests", CurrentUser())
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.GetForAuthor)
	requests.GET("/all", c.Request.GetAll)
	requests.GET("/:id", c.Request.Get)
}
