package main

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer"
	"shareit/app/echoServer/validation"
	"shareit/config"
	"shareit/gateway"
)

func main() {
	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	h := &gateway.Handlers{
		Client: gateway.NewClient(cfg.BackendURL),
		V:      validator.New(),
		Log:    log,
	}
	gateway.Register(e, h)

	log.Info("starting gateway", "port", cfg.Port, "backend", cfg.BackendURL)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
