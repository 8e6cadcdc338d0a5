package routes

import (
	"time"

	"chatarra-market/internal/adapters/http/handlers"
	"chatarra-market/internal/adapters/http/middleware"
	"chatarra-market/internal/adapters/persistence/repositories"
	"chatarra-market/internal/adapters/storage"
	"chatarra-market/internal/config"
	"chatarra-market/internal/core/services"
	"chatarra-market/internal/pkg/cache"
	"chatarra-market/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Deps are the infrastructure handles the routes are built from
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Cache   *cache.Cache
	Storage storage.Storage
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Deps) {
	cfg := deps.Config

	// Initialize repositories
	usuarioRepo := repositories.NewUsuarioRepository(deps.DB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(deps.DB)
	ofertaRepo := repositories.NewOfertaRepository(deps.DB)

	// Initialize services
	authService := services.NewAuthService(usuarioRepo, refreshTokenRepo, deps.Cache, cfg)
	usuarioService := services.NewUsuarioService(usuarioRepo, refreshTokenRepo)
	imagenService := services.NewImagenService(deps.Storage)
	ofertaService := services.NewOfertaService(ofertaRepo, deps.Cache, imagenService)
	dashboardService := services.NewDashboardService(
		usuarioRepo,
		ofertaRepo,
		deps.Cache,
		time.Duration(cfg.Redis.StatsTTLSecs)*time.Second,
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler()
	vendedorHandler := handlers.NewVendedorHandler(ofertaService, dashboardService, imagenService)
	adminHandler := handlers.NewAdminHandler(usuarioService, ofertaService, dashboardService)
	webHandler := handlers.NewWebHandler(ofertaService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", metrics.Handler())

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded images, only when stored on local disk
	if root, ok := storage.LocalRoot(deps.Storage); ok {
		app.Static(cfg.Storage.PublicURL, root, fiber.Static{MaxAge: 3600})
	}

	api := app.Group("/api")
	auth := middleware.AuthMiddleware(authService)

	setupAuthRoutes(api.Group("/auth"), authHandler, auth, cfg)

	users := api.Group("/users", auth)
	users.Get("/me", userHandler.Profile)

	vendedor := api.Group("/vendedor", auth, middleware.VendedorOrAdmin())
	setupVendedorRoutes(vendedor, vendedorHandler)

	admin := api.Group("/admin", auth, middleware.AdminOnly())
	setupAdminRoutes(admin, adminHandler)

	web := api.Group("/web")
	web.Get("/ofertas", middleware.PublicCache(30*time.Second), webHandler.Catalogo)
	web.Get("/ofertas/:id", webHandler.Detalle)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler, cfg *config.Config) {
	limit := middleware.AuthRateLimiter(cfg.RateLimit.Auth)

	// Public routes
	router.Post("/register", limit, handler.Register)
	router.Post("/login", limit, handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)
	router.Get("/test", handler.Test)
	router.Get("/info", handler.Info)

	// Protected routes
	router.Get("/me", auth, middleware.NoCacheHeaders(), handler.Me)
	router.Post("/logout-all", auth, handler.LogoutAll)
}

// setupVendedorRoutes configures /api/vendedor, VENDEDOR or ADMIN
func setupVendedorRoutes(router fiber.Router, handler *handlers.VendedorHandler) {
	router.Get("/estadisticas", middleware.NoCacheHeaders(), handler.Estadisticas)

	router.Get("/ofertas", handler.MisOfertas)
	router.Post("/ofertas", handler.CrearOferta)
	// static segments before :id
	router.Get("/ofertas/recientes", handler.Recientes)
	router.Post("/ofertas/imagen", handler.SubirImagen)

	router.Get("/ofertas/:id", handler.ObtenerOferta)
	router.Put("/ofertas/:id", handler.ActualizarOferta)
	router.Put("/ofertas/:id/cancelar", handler.CancelarOferta)
	router.Delete("/ofertas/:id", handler.EliminarOferta)
}

// setupAdminRoutes configures /api/admin, ADMIN only
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Get("/dashboard", handler.Dashboard)

	router.Get("/usuarios", handler.ListarUsuarios)
	router.Get("/usuarios/:id", handler.ObtenerUsuario)
	router.Put("/usuarios/:id/rol", handler.CambiarRol)
	router.Put("/usuarios/:id/estado", handler.CambiarEstadoUsuario)

	router.Get("/ofertas", handler.ListarOfertas)
	router.Get("/ofertas/:id", handler.ObtenerOferta)
	router.Put("/ofertas/:id", handler.CambiarEstadoOferta)
	router.Put("/ofertas/:id/aprobar", handler.Aprobar)
	router.Put("/ofertas/:id/rechazar", handler.Rechazar)
	router.Put("/ofertas/:id/vendida", handler.Vendida)
}
