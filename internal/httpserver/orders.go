package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bakeshop/internal/domain"
	ordersvc "bakeshop/internal/service/order"
)

type createOrderRequest struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

func createOrderHandler(svc orderService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		order, err := svc.Create(c.Request.Context(), ordersvc.CreateInput{
			UserID:         claims.UID,
			Email:          claims.Email,
			Address:        req.Address,
			Phone:          req.Phone,
			Notes:          req.Notes,
			IdempotencyKey: c.GetHeader("Idempotency-Key"),
		})
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		respondOK(c, http.StatusCreated, order)
	}
}

func listUserOrdersHandler(svc orderService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		orders, err := svc.ListByUser(c.Request.Context(), claims.UID)
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		respondOK(c, http.StatusOK, orders)
	}
}

func getOrderHandler(svc orderService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		order, err := svc.Get(c.Request.Context(), c.Param("id"), claims.UID, claims.Admin)
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		respondOK(c, http.StatusOK, order)
	}
}

func listAllOrdersHandler(svc orderService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAll(c.Request.Context())
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		respondOK(c, http.StatusOK, orders)
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func updateOrderStatusHandler(svc orderService, d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		order, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, claims.UID)
		if err != nil {
			respondServiceError(c, d.Logger, err)
			return
		}
		respondOK(c, http.StatusOK, order)
	}
}
