package controllers

import (
	"errors"
	"net/http"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/repositories"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

type UserController struct {
	Repo *repositories.UserRepository
}

func NewUserController(repo *repositories.UserRepository) *UserController {
	return &UserController{Repo: repo}
}

// GetProfile returns the signed-in user's profile, served from the short
// TTL cache when fresh.
func (uc *UserController) GetProfile(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	user, err := uc.Repo.GetUser(c.Request.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserFetchTimeout):
			utils.RespondError(c, http.StatusGatewayTimeout, errors.New("please check your connection and try again"))
		case errors.Is(err, repositories.ErrUserNotFound):
			utils.RespondError(c, http.StatusNotFound, errors.New("profile not found"))
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}

// CreateProfile writes the profile document after the first sign-in. The
// email comes from the verified token, never the body.
func (uc *UserController) CreateProfile(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user := models.User{
		UID:      uid,
		Name:     body.Name,
		Email:    c.GetString("email"),
		Phone:    body.Phone,
		Address:  body.Address,
		Role:     "customer",
		Language: body.Language,
	}
	if user.Language == "" {
		user.Language = "en"
	}

	if err := uc.Repo.CreateUser(c.Request.Context(), user); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("profile created for %s", uid)
	utils.RespondJSON(c, http.StatusCreated, "Profile created", user)
}

// UpdateProfile merges the editable fields and invalidates the cache entry so
// the next read is forced remote.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	uid := c.GetString("uid")
	if uid == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var body struct {
		Name     *string `json:"name"`
		Phone    *string `json:"phone"`
		Address  *string `json:"address"`
		Language *string `json:"language"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var updates []firestore.Update
	if body.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *body.Name})
	}
	if body.Phone != nil {
		updates = append(updates, firestore.Update{Path: "phone", Value: *body.Phone})
	}
	if body.Address != nil {
		updates = append(updates, firestore.Update{Path: "address", Value: *body.Address})
	}
	if body.Language != nil {
		updates = append(updates, firestore.Update{Path: "language", Value: *body.Language})
	}
	if len(updates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no fields to update"))
		return
	}

	if err := uc.Repo.UpdateUser(c.Request.Context(), uid, updates); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Forced refresh: the mutation invalidated the cache, this read
	// repopulates it and returns the fresh document.
	user, err := uc.Repo.RefreshUser(c.Request.Context(), uid)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile updated", user)
}

// GetAllUsers -> admin only.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.Repo.ListUsers(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}
