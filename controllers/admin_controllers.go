package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

type AdminController struct {
	Orders *repositories.OrderRepository
	Food   *repositories.FoodRepository
}

func NewAdminController(orders *repositories.OrderRepository, food *repositories.FoodRepository) *AdminController {
	return &AdminController{Orders: orders, Food: food}
}

// GetDashboardStats aggregates counts and revenue over the most recent
// orders for the admin dashboard.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	orders, err := ac.Orders.ListRecent(c.Request.Context(), 500)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var stats struct {
		TotalOrders  int     `json:"total_orders"`
		TodayOrders  int     `json:"today_orders"`
		TotalRevenue float64 `json:"total_revenue"`
		TodayRevenue float64 `json:"today_revenue"`
		OrderStats   struct {
			Pending   int `json:"pending"`
			Confirmed int `json:"confirmed"`
			Preparing int `json:"preparing"`
			Ready     int `json:"ready"`
			Delivered int `json:"delivered"`
			Cancelled int `json:"cancelled"`
		} `json:"order_stats"`
		FoodCount int `json:"food_count"`
	}

	today := time.Now().Format("2006-01-02")
	for _, o := range orders {
		stats.TotalOrders++
		isToday := o.CreatedAt.Format("2006-01-02") == today
		if isToday {
			stats.TodayOrders++
		}
		if o.Status != models.OrderCancelled {
			stats.TotalRevenue += o.Total
			if isToday {
				stats.TodayRevenue += o.Total
			}
		}

		switch o.Status {
		case models.OrderPending:
			stats.OrderStats.Pending++
		case models.OrderConfirmed:
			stats.OrderStats.Confirmed++
		case models.OrderPreparing:
			stats.OrderStats.Preparing++
		case models.OrderReady:
			stats.OrderStats.Ready++
		case models.OrderDelivered:
			stats.OrderStats.Delivered++
		case models.OrderCancelled:
			stats.OrderStats.Cancelled++
		}
	}

	if items, err := ac.Food.ListAll(c.Request.Context()); err == nil {
		stats.FoodCount = len(items)
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}
