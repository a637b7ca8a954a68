package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/kedaipos/counter/internal/api/handler"
	"github.com/kedaipos/counter/internal/api/middleware"
	"github.com/kedaipos/counter/internal/api/ws"
	"github.com/kedaipos/counter/internal/core/domain"
	"github.com/kedaipos/counter/internal/core/ports"
)

// Dependencies bundles everything the router wires together.
type Dependencies struct {
	Auth     ports.AuthService
	Catalog  ports.CatalogService
	Checkout ports.CheckoutService
	Hub      *ws.Hub
	Redis    *redis.Client
	Cookie   handler.CookieConfig
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("pos"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Cookie)
	storeHandler := handler.NewStoreHandler(deps.Catalog)
	cartHandler := handler.NewCartHandler(deps.Checkout)
	checkoutHandler := handler.NewCheckoutHandler(deps.Checkout)

	sessionMiddleware := middleware.Session(deps.Cookie.Name, deps.Auth)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, sessionMiddleware)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the session store up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Counter surface (session required) ---
	pos := e.Group("/pos", sessionMiddleware)

	// Store selection is only meaningful for roles that can work across
	// stores. Store-bound roles are assigned their store at login.
	multiStore := middleware.RoleGate(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleCompanyRep)
	pos.GET("/stores", storeHandler.List, multiStore)
	pos.POST("/stores/select", storeHandler.Select, multiStore)
	pos.GET("/catalog", storeHandler.Catalog)

	pos.GET("/state", cartHandler.State)
	pos.POST("/cart/items", cartHandler.Add)
	pos.PUT("/cart/items/:menuID", cartHandler.SetQuantity)
	pos.DELETE("/cart/items/:menuID", cartHandler.Remove)
	pos.DELETE("/cart", cartHandler.Clear)

	pos.POST("/checkout/order", checkoutHandler.PlaceOrder)
	pos.POST("/checkout/payment", checkoutHandler.ConfirmPayment)
	pos.DELETE("/checkout/payment", checkoutHandler.CancelPayment)

	pos.GET("/ws", ws.Serve(deps.Hub))

	return e
}
