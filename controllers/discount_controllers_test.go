package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farshidfarahtaj/sofreh-messina-sub001/models"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/services"
	"github.com/farshidfarahtaj/sofreh-messina-sub001/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	os.Exit(m.Run())
}

type stubDiscountSource struct {
	coupons map[string]*models.Discount
}

func (s *stubDiscountSource) ActiveForCategory(ctx context.Context, categoryID string) ([]models.Discount, error) {
	return nil, nil
}

func (s *stubDiscountSource) CouponByCode(ctx context.Context, code string) (*models.Discount, error) {
	return s.coupons[code], nil
}

func validateCouponRouter(coupons map[string]*models.Discount) *gin.Engine {
	svc := services.NewDiscountService(&stubDiscountSource{coupons: coupons})
	ctrl := NewDiscountController(nil, nil, svc)

	r := gin.New()
	r.GET("/coupons/validate", ctrl.ValidateCoupon)
	return r
}

func TestValidateCouponBlankCode(t *testing.T) {
	r := validateCouponRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/coupons/validate", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateCouponValid(t *testing.T) {
	r := validateCouponRouter(map[string]*models.Discount{
		"WELCOME10": {ID: "c1", CouponCode: "WELCOME10", PercentOff: 10, Active: true},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/coupons/validate?code=WELCOME10", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.Equal(t, "Coupon is valid", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestValidateCouponUnknownCode(t *testing.T) {
	r := validateCouponRouter(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/coupons/validate?code=NOPE", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No matching coupon", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestDiscountRequestValidate(t *testing.T) {
	base := discountRequest{Name: "deal", PercentOff: 10}
	assert.NoError(t, base.validate())

	zero := base
	zero.PercentOff = 0
	assert.Error(t, zero.validate())

	over := base
	over.PercentOff = 120
	assert.Error(t, over.validate())

	negQty := base
	negQty.MinQuantity = -1
	assert.Error(t, negQty.validate())

	start := time.Now()
	end := start.Add(-time.Hour)
	backwards := base
	backwards.StartDate = &start
	backwards.EndDate = &end
	assert.Error(t, backwards.validate())
}
