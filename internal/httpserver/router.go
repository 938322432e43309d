package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bakeshop/internal/auth"
	"bakeshop/internal/db"
	"bakeshop/internal/domain"
	ordersvc "bakeshop/internal/service/order"
)

// cartService and orderService are what the handlers need from the
// service layer; tests substitute stubs.
type cartService interface {
	Get(ctx context.Context, ownerID string) (*domain.Cart, error)
	AddItem(ctx context.Context, ownerID string, item domain.CartItem) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, ownerID, productID string, qty int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, ownerID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, ownerID string) (*domain.Cart, error)
	Merge(ctx context.Context, ownerID string, local []domain.CartItem) (*domain.Cart, error)
}

type orderService interface {
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	Get(ctx context.Context, id, userID string, admin bool) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id, statusRaw, actorID string) (*domain.Order, error)
}

// Deps carries the collaborators the router wires into handlers.
type Deps struct {
	CartSvc     cartService
	OrderSvc    orderService
	Verifier    auth.TokenVerifier
	Logger      *log.Logger
	CORSOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(fs *firestore.Client, d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(d.Logger.Writer()), gin.Recovery())

	if len(d.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", "Idempotency-Key"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(fs))

	authed := router.Group("", authRequired(d.Verifier))
	{
		authed.GET("/cart", getCartHandler(d.CartSvc, d))
		authed.POST("/cart/items", addCartItemHandler(d.CartSvc, d))
		authed.PUT("/cart/items/:id", updateCartItemHandler(d.CartSvc, d))
		authed.DELETE("/cart/items/:id", removeCartItemHandler(d.CartSvc, d))
		authed.DELETE("/cart", clearCartHandler(d.CartSvc, d))
		authed.POST("/cart/merge", mergeCartHandler(d.CartSvc, d))

		authed.POST("/orders", createOrderHandler(d.OrderSvc, d))
		authed.GET("/orders/user", listUserOrdersHandler(d.OrderSvc, d))
		// Kept under /orders/user so the static /orders/all and /orders/user
		// segments never collide with a wildcard sibling in gin's tree.
		authed.GET("/orders/user/:id", getOrderHandler(d.OrderSvc, d))

		admin := authed.Group("", adminRequired())
		{
			admin.GET("/orders/all", listAllOrdersHandler(d.OrderSvc, d))
			admin.PUT("/orders/:id/status", updateOrderStatusHandler(d.OrderSvc, d))
		}
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(fs *firestore.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if fs == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "store not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx, fs); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "store not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
