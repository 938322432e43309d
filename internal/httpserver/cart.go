package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bakeshop/internal/domain"
)

type cartResponse struct {
	Items         []domain.CartItem `json:"items"`
	SubtotalCents int64             `json:"subtotalCents"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		Items:         items,
		SubtotalCents: cart.SubtotalCents(),
		UpdatedAt:     cart.UpdatedAt,
	}
}

func getCartHandler(svc cartService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		cart, err := svc.Get(c.Request.Context(), claims.UID)
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(cart))
	}
}

func addCartItemHandler(svc cartService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		var item domain.CartItem
		if err := c.ShouldBindJSON(&item); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		cart, err := svc.AddItem(c.Request.Context(), claims.UID, item)
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(cart))
	}
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(svc cartService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		cart, err := svc.UpdateQuantity(c.Request.Context(), claims.UID, c.Param("id"), req.Quantity)
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(cart))
	}
}

func removeCartItemHandler(svc cartService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		cart, err := svc.RemoveItem(c.Request.Context(), claims.UID, c.Param("id"))
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(cart))
	}
}

func clearCartHandler(svc cartService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		cart, err := svc.Clear(c.Request.Context(), claims.UID)
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(cart))
	}
}

type mergeRequest struct {
	Items []domain.CartItem `json:"items"`
}

// mergeCartHandler folds the client's anonymous cart into the server
// cart. The client clears its local copy only after a success response;
// on any error the local cart stays put for retry.
func mergeCartHandler(svc cartService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		var req mergeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		cart, err := svc.Merge(c.Request.Context(), claims.UID, req.Items)
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		respondOK(c, http.StatusOK, toCartResponse(cart))
	}
}
