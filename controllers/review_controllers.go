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

type ReviewController struct {
	Repo *repositories.ReviewRepository
}

func NewReviewController(repo *repositories.ReviewRepository) *ReviewController {
	return &ReviewController{Repo: repo}
}

// GetReviewsByFood
// Endpoint: GET /reviews?food=<food id>
func (rc *ReviewController) GetReviewsByFood(c *gin.Context) {
	foodID := c.Query("food")
	if foodID == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'food' is required"))
		return
	}

	reviews, err := rc.Repo.ListByFood(c.Request.Context(), foodID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reviews for food "+foodID, reviews)
}

// CreateReview
func (rc *ReviewController) CreateReview(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		FoodID  string `json:"food_id" binding:"required"`
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
		return
	}

	id := uuid.NewString()
	review := models.Review{
		FoodID:  body.FoodID,
		UserID:  uid,
		Rating:  body.Rating,
		Comment: body.Comment,
	}
	if err := rc.Repo.Create(c.Request.Context(), id, review); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Review created", gin.H{"review_id": id})
}

// DeleteReview -> admin only.
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	id := c.Param("review_id")

	if err := rc.Repo.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Review deleted", gin.H{"review_id": id})
}
