package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/services"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

type DiscountController struct {
	Repo    *repositories.DiscountRepository
	Food    *repositories.FoodRepository
	Service *services.DiscountService
}

func NewDiscountController(repo *repositories.DiscountRepository, food *repositories.FoodRepository, svc *services.DiscountService) *DiscountController {
	return &DiscountController{Repo: repo, Food: food, Service: svc}
}

// GetRegularDiscounts returns the discounts every customer sees. Coupons and
// customer-specific records are excluded from this listing.
func (dc *DiscountController) GetRegularDiscounts(c *gin.Context) {
	discounts, err := dc.Repo.ListRegular(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active discounts", discounts)
}

// ValidateCoupon
// Endpoint: GET /coupons/validate?code=<coupon code>
func (dc *DiscountController) ValidateCoupon(c *gin.Context) {
	code := c.Query("code")

	discount, err := dc.Service.ValidateCoupon(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrBlankCouponCode) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Expired and unknown coupons are the same empty result on purpose.
	if discount == nil {
		utils.RespondJSON(c, http.StatusOK, "No matching coupon", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Coupon is valid", discount)
}

// EvaluateCart computes the per-category deductions for a cart without
// placing an order, so the app can show the discount line live.
func (dc *DiscountController) EvaluateCart(c *gin.Context) {
	var body struct {
		Items []services.CheckoutLine `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart := make([]models.CartItem, 0, len(body.Items))
	for _, line := range body.Items {
		if line.Quantity <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("quantity must be greater than 0"))
			return
		}
		food, err := dc.Food.GetByID(c.Request.Context(), line.FoodID)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if food == nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("food "+line.FoodID+" not found"))
			return
		}
		cart = append(cart, models.CartItem{Food: *food, Quantity: line.Quantity})
	}

	applied, err := dc.Service.CartDiscounts(c.Request.Context(), cart)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	amounts := make(map[string]float64, len(applied))
	for categoryID, a := range applied {
		v, _ := a.Amount.Round(2).Float64()
		amounts[categoryID] = v
	}
	utils.RespondJSON(c, http.StatusOK, "Cart discounts", amounts)
}

type discountRequest struct {
	Name               string     `json:"name" binding:"required"`
	Description        string     `json:"description"`
	CategoryID         string     `json:"category_id"`
	PercentOff         float64    `json:"percent_off" binding:"required"`
	MinQuantity        int        `json:"min_quantity"`
	Active             bool       `json:"active"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	SpecificFoodIDs    []string   `json:"specific_food_ids"`
	CouponCode         string     `json:"coupon_code"`
	IsCustomerSpecific bool       `json:"is_customer_specific"`
}

func (req *discountRequest) validate() error {
	if req.PercentOff <= 0 || req.PercentOff > 100 {
		return errors.New("percent_off must be in (0, 100]")
	}
	if req.MinQuantity < 0 {
		return errors.New("min_quantity must not be negative")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return errors.New("end_date must not precede start_date")
	}
	return nil
}

func (req *discountRequest) toModel() models.Discount {
	return models.Discount{
		Name:               req.Name,
		Description:        req.Description,
		CategoryID:         req.CategoryID,
		PercentOff:         req.PercentOff,
		MinQuantity:        req.MinQuantity,
		Active:             req.Active,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		SpecificFoodIDs:    req.SpecificFoodIDs,
		CouponCode:         req.CouponCode,
		IsCustomerSpecific: req.IsCustomerSpecific,
	}
}

// GetAllDiscounts -> admin listing including coupons and inactive records.
func (dc *DiscountController) GetAllDiscounts(c *gin.Context) {
	discounts, err := dc.Repo.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All discounts", discounts)
}

// CreateDiscount
func (dc *DiscountController) CreateDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := uuid.NewString()
	if err := dc.Repo.Create(c.Request.Context(), id, req.toModel()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Discount created", gin.H{"discount_id": id})
}

// UpdateDiscount
func (dc *DiscountController) UpdateDiscount(c *gin.Context) {
	id := c.Param("discount_id")

	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := dc.Repo.Update(c.Request.Context(), id, req.toModel()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Discount updated", gin.H{"discount_id": id})
}

// DeleteDiscount
func (dc *DiscountController) DeleteDiscount(c *gin.Context) {
	id := c.Param("discount_id")

	if err := dc.Repo.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Discount deleted", gin.H{"discount_id": id})
}
