package server

import (
	"pharmacy-store/internal/auth"
	"pharmacy-store/internal/handler"
	"pharmacy-store/internal/middleware"
	"pharmacy-store/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo           *echo.Echo
	tokenMaker     *auth.TokenMaker
	authHandler    *handler.AuthHandler
	productHandler *handler.ProductHandler
	orderHandler   *handler.OrderHandler
	paymentHandler *handler.PaymentHandler
	contactHandler *handler.ContactHandler
}

func NewServer(
	tokenMaker *auth.TokenMaker,
	authService service.AuthService,
	catalogService service.CatalogService,
	orderService service.OrderService,
	paymentService service.PaymentService,
	contactService service.ContactService,
) *Server {
	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		tokenMaker:     tokenMaker,
		authHandler:    handler.NewAuthHandler(authService),
		productHandler: handler.NewProductHandler(catalogService),
		orderHandler:   handler.NewOrderHandler(orderService),
		paymentHandler: handler.NewPaymentHandler(paymentService),
		contactHandler: handler.NewContactHandler(contactService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	authed := middleware.Auth(s.tokenMaker)
	admin := middleware.AdminOnly()

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.authHandler.Register)
	authGroup.POST("/login", s.authHandler.Login)
	authGroup.GET("/profile", s.authHandler.Profile, authed)

	// -------- catalog --------
	products := api.Group("/products")
	products.GET("", s.productHandler.List)
	products.GET("/featured", s.productHandler.Featured)
	products.GET("/categories", s.productHandler.Categories)
	products.GET("/category/:categoryId", s.productHandler.ByCategory)
	products.GET("/:id", s.productHandler.Get)
	products.POST("", s.productHandler.Create, authed, admin)
	products.PUT("/:id", s.productHandler.Update, authed, admin)
	products.DELETE("/:id", s.productHandler.Delete, authed, admin)

	// -------- orders --------
	orders := api.Group("/orders", authed)
	orders.POST("", s.orderHandler.Create)
	orders.GET("", s.orderHandler.ListMine)
	orders.GET("/all", s.orderHandler.ListAll, admin)
	orders.GET("/:id", s.orderHandler.Get)
	orders.PUT("/:id/status", s.orderHandler.UpdateStatus, admin)

	api.GET("/addresses", s.orderHandler.ListAddresses, authed)

	// -------- payment --------
	payment := api.Group("/payment", authed)
	payment.POST("/create-order", s.paymentHandler.CreateGatewayOrder)
	payment.POST("/verify", s.paymentHandler.Verify)
	payment.POST("/refund", s.paymentHandler.Refund, admin)
	payment.GET("/:paymentId", s.paymentHandler.GetPayment, admin)

	// -------- contact --------
	contact := api.Group("/contact")
	contact.POST("", s.contactHandler.Submit)
	contact.GET("/team", s.contactHandler.Team)
	contact.GET("", s.contactHandler.ListMessages, authed, admin)
	contact.PUT("/:id/status", s.contactHandler.UpdateMessageStatus, authed, admin)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
