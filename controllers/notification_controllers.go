package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/services"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

type NotificationController struct {
	Tokens  *repositories.TokenRepository
	Service *services.NotificationService
}

func NewNotificationController(tokens *repositories.TokenRepository, svc *services.NotificationService) *NotificationController {
	return &NotificationController{Tokens: tokens, Service: svc}
}

// RegisterToken upserts a device token for the signed-in user. Rotation is
// the same call with the new token value.
func (nc *NotificationController) RegisterToken(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		Token    string `json:"token" binding:"required"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	t := models.FCMToken{Token: body.Token, UID: uid, Platform: body.Platform}
	if err := nc.Tokens.Register(c.Request.Context(), t); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Token registered", nil)
}

// SendPromo broadcasts a promotional push to every registered device. Admin
// only.
func (nc *NotificationController) SendPromo(c *gin.Context) {
	var body struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	sent, err := nc.Service.SendPromo(c.Request.Context(), body.Title, body.Body)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("promo %q sent to %d devices", body.Title, sent)
	utils.RespondJSON(c, http.StatusOK, "Promo sent", gin.H{"sent": sent})
}
