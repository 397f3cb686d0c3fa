package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

type FoodController struct {
	Repo *repositories.FoodRepository
}

func NewFoodController(repo *repositories.FoodRepository) *FoodController {
	return &FoodController{Repo: repo}
}

// GetAllFood
func (fc *FoodController) GetAllFood(c *gin.Context) {
	items, err := fc.Repo.ListAll(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of food items", items)
}

// GetFoodByCategory
// Endpoint: GET /food/by-category?category=<category id>
func (fc *FoodController) GetFoodByCategory(c *gin.Context) {
	categoryID := c.Query("category")
	if categoryID == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'category' is required"))
		return
	}

	items, err := fc.Repo.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of food items for category "+categoryID, items)
}

// GetFoodByID
func (fc *FoodController) GetFoodByID(c *gin.Context) {
	id := c.Param("food_id")

	item, err := fc.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if item == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food detail", item)
}

type foodRequest struct {
	Translations    map[string]models.Translation `json:"translations" binding:"required"`
	Price           float64                       `json:"price" binding:"required"`
	CategoryID      string                        `json:"category_id" binding:"required"`
	ImageURL        string                        `json:"image_url"`
	Available       *bool                         `json:"available"`
	DiscountedPrice *float64                      `json:"discounted_price"`
	DiscountPercent *float64                      `json:"discount_percent"`
	DiscountEndDate *time.Time                    `json:"discount_end_date"`
	DiscountMessage string                        `json:"discount_message"`
}

func (req *foodRequest) toModel() models.FoodItem {
	item := models.FoodItem{
		Translations:    req.Translations,
		Price:           req.Price,
		CategoryID:      req.CategoryID,
		ImageURL:        req.ImageURL,
		Available:       true,
		DiscountedPrice: req.DiscountedPrice,
		DiscountPercent: req.DiscountPercent,
		DiscountEndDate: req.DiscountEndDate,
		DiscountMessage: req.DiscountMessage,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	return item
}

// CreateFood
func (fc *FoodController) CreateFood(c *gin.Context) {
	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must be greater than 0"))
		return
	}

	id := uuid.NewString()
	if err := fc.Repo.Create(c.Request.Context(), id, req.toModel()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("food %s created", id)
	utils.RespondJSON(c, http.StatusCreated, "Food created", gin.H{"food_id": id})
}

// UpdateFood
func (fc *FoodController) UpdateFood(c *gin.Context) {
	id := c.Param("food_id")

	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	existing, err := fc.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return
	}

	if err := fc.Repo.Update(c.Request.Context(), id, req.toModel()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food updated", gin.H{"food_id": id})
}

// SetFoodAvailability
// Endpoint: PATCH /admin/food/:food_id/availability
func (fc *FoodController) SetFoodAvailability(c *gin.Context) {
	id := c.Param("food_id")

	var body struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := fc.Repo.SetAvailability(c.Request.Context(), id, *body.Available); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Availability updated", gin.H{"food_id": id, "available": *body.Available})
}

// DeleteFood
func (fc *FoodController) DeleteFood(c *gin.Context) {
	id := c.Param("food_id")

	if err := fc.Repo.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food deleted", gin.H{"food_id": id})
}
