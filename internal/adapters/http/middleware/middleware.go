package middleware

import (
	"errors"
	"time"

	"chatarra-market/internal/config"
	"chatarra-market/internal/pkg/metrics"
	"chatarra-market/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures all middlewares for the application
func Setup(app *fiber.App, cfg *config.Config) {
	// panics become errors handled by CustomErrorHandler
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDev()}))

	app.Use(requestid.New())
	app.Use(RequestLogger())
	app.Use(metrics.Middleware())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(helmet.New(helmet.Config{
		XSSProtection:             "1; mode=block",
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "SAMEORIGIN",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "cross-origin", // images under /uploads are embedded by the frontend
		PermissionPolicy:          "geolocation=(), microphone=(), camera=()",
	}))

	if cfg.RateLimit.General > 0 {
		app.Use(newLimiter(cfg.RateLimit.General, "", "Demasiadas solicitudes, intente nuevamente en un momento"))
	}

	if cfg.IsDev() {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     "*",
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: false, // cannot be true with AllowOrigins "*"
		}))
	} else {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.GetAllowedOrigins(),
			AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
			AllowCredentials: true,
		}))
	}
}

// RequestLogger logs every request with zerolog and stores a request scoped
// logger in the user context
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)

		l := log.With().Str("request_id", rid).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))

		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = l.Error().Err(err)
		case status >= 400:
			event = l.Warn()
		default:
			event = l.Info()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")

		return err
	}
}

// AuthRateLimiter creates a stricter rate limiter for login and register.
// perMinute <= 0 disables it.
func AuthRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return newLimiter(perMinute, "-auth", "Demasiados intentos, espere un minuto")
}

func newLimiter(perMinute int, keySuffix, mensaje string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + keySuffix
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, mensaje)
		},
	})
}

// CustomErrorHandler renders errors that reach fiber with the API error shape
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	mensaje := "Error interno del servidor"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		mensaje = fe.Message
	} else {
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	return response.Error(c, code, mensaje)
}
