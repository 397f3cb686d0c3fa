package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/services"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

type OrderController struct {
	Repo    *repositories.OrderRepository
	Service *services.OrderService
}

func NewOrderController(repo *repositories.OrderRepository, svc *services.OrderService) *OrderController {
	return &OrderController{Repo: repo, Service: svc}
}

// CreateOrder -> checkout for the signed-in user.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.Checkout(c.Request.Context(), uid, req)
	if err != nil {
		var notFound *services.FoodNotFoundError
		var unavailable *services.FoodUnavailableError
		var minOrder *services.MinOrderError
		switch {
		case errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrCouponNotValid),
			errors.As(err, &minOrder):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.As(err, &notFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.As(err, &unavailable):
			utils.RespondError(c, http.StatusConflict, err)
		case errors.Is(err, services.ErrStoreClosed):
			utils.RespondError(c, http.StatusServiceUnavailable, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetOrderByID -> owners see their own orders, admins see all.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id := c.Param("order_id")

	order, err := oc.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if order == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if c.GetString("role") != "admin" && order.UserID != c.GetString("uid") {
		utils.RespondError(c, http.StatusForbidden, errors.New("not your order"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetMyOrders
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	orders, err := oc.Repo.ListByUser(c.Request.Context(), uid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My orders", orders)
}

// GetAllOrders -> recent orders across all users, admin only.
// Endpoint: GET /admin/orders?limit=<n>
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		limit = n
	}

	orders, err := oc.Repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Recent orders", orders)
}

// GetPendingOrders -> the admin work queue, oldest first.
func (oc *OrderController) GetPendingOrders(c *gin.Context) {
	orders, err := oc.Repo.ListByStatus(c.Request.Context(), models.OrderPending)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending orders", orders)
}

// UpdateOrderStatus -> admin sets any status on any order.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("order_id")

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.UpdateStatus(c.Request.Context(), id, models.OrderStatus(body.Status))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if order == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
