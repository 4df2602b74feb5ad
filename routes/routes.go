package routes

import (
	"github.com/gin-gonic/gin"

	commonmw "github.com/yashrajoria/streetwear-backend/common/middleware"
	"github.com/yashrajoria/streetwear-backend/controllers"
	"github.com/yashrajoria/streetwear-backend/metrics"
	"github.com/yashrajoria/streetwear-backend/middleware"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	Health         *controllers.HealthController
	Products       *controllers.ProductController
	Categories     *controllers.CategoryController
	Cart           *controllers.CartController
	Orders         *controllers.OrderController
	Customizations *controllers.DesignRequestController
	CustomPrints   *controllers.DesignRequestController
	Contact        *controllers.ContactController
	BulkOrders     *controllers.BulkOrderController
	Announcement   *controllers.AnnouncementController
	AdminAuth      *controllers.AdminAuthController
	Uploads        *controllers.UploadController
	Analytics      *controllers.AnalyticsController
}

// RegisterRoutes mounts the storefront API. loginLimiter may be nil.
func RegisterRoutes(r *gin.Engine, c Controllers, loginLimiter *commonmw.RateLimiter) {
	r.GET("/health", c.Health.Health)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	admin := middleware.RequireAdmin()

	products := api.Group("/products")
	{
		products.GET("", c.Products.ListProducts)
		products.GET("/:id", c.Products.GetProduct)
		products.POST("", admin, c.Products.CreateProduct)
		products.PUT("/:id", admin, c.Products.UpdateProduct)
		products.DELETE("/:id", admin, c.Products.DeleteProduct)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", c.Categories.ListCategories)
		categories.POST("", admin, c.Categories.CreateCategory)
		categories.PUT("/:id", admin, c.Categories.UpdateCategory)
		categories.DELETE("/:id", admin, c.Categories.DeleteCategory)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", c.Cart.GetCart)
		cart.DELETE("", c.Cart.ClearCart)
		cart.POST("/items", c.Cart.AddItem)
		cart.PUT("/items/:id", c.Cart.UpdateItem)
		cart.DELETE("/items/:id", c.Cart.RemoveItem)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", c.Orders.PlaceOrder)
		orders.GET("/mine", middleware.RequireActor(), c.Orders.ListMyOrders)
		orders.GET("/:id/track", c.Orders.TrackOrder)

		orders.GET("", admin, c.Orders.ListOrders)
		orders.GET("/:id", admin, c.Orders.GetOrder)
		orders.PUT("/:id", admin, c.Orders.UpdateOrder)
		orders.PUT("/:id/status", admin, c.Orders.UpdateOrderStatus)
		orders.GET("/:id/events", admin, c.Orders.ListOrderEvents)
	}

	registerDesignRoutes(api.Group("/customizations"), c.Customizations, admin)
	registerDesignRoutes(api.Group("/custom-prints"), c.CustomPrints, admin)

	contact := api.Group("/contact")
	{
		contact.POST("", c.Contact.Submit)
		contact.GET("", admin, c.Contact.List)
		contact.GET("/:id", admin, c.Contact.Get)
		contact.PUT("/:id", admin, c.Contact.Update)
	}

	bulk := api.Group("/bulk-orders")
	{
		bulk.POST("", c.BulkOrders.Submit)
		bulk.GET("", admin, c.BulkOrders.List)
		bulk.PUT("/:id/status", admin, c.BulkOrders.UpdateStatus)
	}

	api.GET("/announcement", c.Announcement.Get)
	api.POST("/analytics/events", c.Analytics.Track)

	adminAPI := api.Group("/admin")
	{
		login := []gin.HandlerFunc{c.AdminAuth.Login}
		if loginLimiter != nil {
			login = append([]gin.HandlerFunc{commonmw.RateLimit(loginLimiter)}, login...)
		}
		adminAPI.POST("/login", login...)
		adminAPI.POST("/logout", c.AdminAuth.Logout)
		adminAPI.GET("/session", c.AdminAuth.Session)

		adminAPI.PUT("/announcement", admin, c.Announcement.Update)
		adminAPI.POST("/uploads", admin, c.Uploads.Upload)
		adminAPI.POST("/uploads/presign", admin, c.Uploads.Presign)
		adminAPI.GET("/analytics", admin, c.Analytics.Dashboard)
	}
}

func registerDesignRoutes(g *gin.RouterGroup, dc *controllers.DesignRequestController, admin gin.HandlerFunc) {
	g.POST("", dc.Submit)
	g.GET("", admin, dc.List)
	g.PUT("/:id/status", admin, dc.UpdateStatus)
}
