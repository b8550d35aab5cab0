package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/wildeats-cart/cart"
	"github.com/yeremiapane/wildeats-cart/controllers"
	"github.com/yeremiapane/wildeats-cart/middlewares"
	"github.com/yeremiapane/wildeats-cart/notify"
	"github.com/yeremiapane/wildeats-cart/services"
	"gorm.io/gorm"
)

// Dependencies are the long-lived objects the handlers share.
type Dependencies struct {
	DB          *gorm.DB
	Registry    *cart.Registry
	Hub         *notify.Hub
	Checkout    *services.CheckoutService
	RateLimiter *middlewares.RateLimiter
	CORSOrigins []string
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.CORSOrigins...))
	r.Use(middlewares.LoggerMiddleware())

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middlewares.NewRateLimiter(20, 40)
	}
	checkout := deps.Checkout
	if checkout == nil {
		checkout = services.NewCheckoutService(deps.DB, nil)
	}

	catalog := services.NewCatalogService(deps.DB)
	sessionCtrl := controllers.NewSessionController(deps.Registry)
	menuCtrl := controllers.NewMenuController(catalog)
	cartCtrl := controllers.NewCartController(deps.Registry, catalog)
	orderCtrl := controllers.NewOrderController(deps.Registry, checkout, deps.Hub)
	socketCtrl := controllers.NewSocketController(deps.Registry, deps.Hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(limiter.RateLimit())
	{
		public.POST("/session", sessionCtrl.CreateSession)

		public.GET("/shops", menuCtrl.ListShops)
		public.GET("/shops/:shop_id/menu-items", menuCtrl.ListMenuItems)
		public.GET("/menu-items/:item_id", menuCtrl.GetMenuItem)
		public.GET("/menu-items/:item_id/options", menuCtrl.GetMenuItemOptions)
	}

	// ----------------------------------------------------------------
	//                      SESSION ROUTES
	// ----------------------------------------------------------------
	session := r.Group("/")
	session.Use(middlewares.SessionAuth(), limiter.RateLimit())
	{
		session.DELETE("/session", sessionCtrl.EndSession)

		session.GET("/cart", cartCtrl.GetCart)
		session.POST("/cart/items", cartCtrl.AddItem)
		session.PATCH("/cart/items/:key", cartCtrl.UpdateItem)
		session.DELETE("/cart/items/:key", cartCtrl.RemoveItem)
		session.DELETE("/cart", cartCtrl.ClearCart)

		session.POST("/checkout", orderCtrl.PlaceOrder)
		session.GET("/orders/:order_id", orderCtrl.GetOrder)
	}

	if deps.Hub != nil {
		r.GET("/ws/cart", middlewares.WebSocketSessionAuth(), socketCtrl.CartSocket)
	}

	return r
}
