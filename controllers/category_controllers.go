package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

type CategoryController struct {
	Repo *repositories.CategoryRepository
}

func NewCategoryController(repo *repositories.CategoryRepository) *CategoryController {
	return &CategoryController{Repo: repo}
}

// GetAllCategories
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	categories, err := cc.Repo.ListActive(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

type categoryRequest struct {
	Names     map[string]string `json:"names" binding:"required"`
	ImageURL  string            `json:"image_url"`
	SortOrder int               `json:"sort_order"`
	Active    *bool             `json:"active"`
}

func (req *categoryRequest) toModel() models.Category {
	cat := models.Category{
		Names:     req.Names,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
		Active:    true,
	}
	if req.Active != nil {
		cat.Active = *req.Active
	}
	return cat
}

// CreateCategory
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := uuid.NewString()
	if err := cc.Repo.Create(c.Request.Context(), id, req.toModel()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", gin.H{"category_id": id})
}

// GetCategoryByID
func (cc *CategoryController) GetCategoryByID(c *gin.Context) {
	id := c.Param("cat_id")

	cat, err := cc.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if cat == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category detail", cat)
}

// UpdateCategory
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id := c.Param("cat_id")

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	existing, err := cc.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	if err := cc.Repo.Update(c.Request.Context(), id, req.toModel()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", gin.H{"category_id": id})
}

// DeleteCategory
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id := c.Param("cat_id")

	if err := cc.Repo.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}
