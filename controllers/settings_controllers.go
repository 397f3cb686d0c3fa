package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

type SettingsController struct {
	Repo *repositories.SettingsRepository
}

func NewSettingsController(repo *repositories.SettingsRepository) *SettingsController {
	return &SettingsController{Repo: repo}
}

// GetSettings
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.Repo.Get(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "App settings", settings)
}

// UpdateSettings -> admin only.
func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	var body models.AppSettings
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Repo.Set(c.Request.Context(), body); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "App settings updated", body)
}
