package http

import (
	"log/slog"
	"strings"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	ActorHeader = "X-Actor-ID"
	actorKey    = "actor"
)

// requireActor resolves the calling user from the X-Actor-ID header.
// Authentication happens upstream; the header is trusted.
func requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := strings.TrimSpace(c.Request().Header.Get(ActorHeader))
		if raw == "" {
			return errs.NewValueIsRequiredError(ActorHeader)
		}
		actor, err := kernel.UUIDFromString(raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause(ActorHeader, err)
		}
		c.Set(actorKey, actor)
		return next(c)
	}
}

func actorFrom(c echo.Context) kernel.UUID {
	actor, _ := c.Get(actorKey).(kernel.UUID)
	return actor
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("duration_ms", v.Latency.Milliseconds()),
				slog.String("actor", c.Request().Header.Get(ActorHeader)),
			)
			return nil
		},
	})
}
