package controller

import (
	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

// SaleController 收银与销售报表
type SaleController struct {
	saleService *service.SaleService
}

func NewSaleController(saleService *service.SaleService) *SaleController {
	return &SaleController{saleService: saleService}
}

// Checkout 收银结账
// @Summary 收银结账
// @Description 明细与收款在同一事务内保存；按效期先出库，库存不足整单回滚；处方药需要 prescription_id
// @Tags Sale
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.CheckoutRequest true "结账"
// @Success 201 {object} model.Sale
// @Failure 400 {object} map[string]interface{} "库存不足/缺少处方"
// @Router /pharmacies/{pharmacy_id}/sales [post]
func (ctrl *SaleController) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sale, err := ctrl.saleService.Checkout(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, sale)
}

// List 销售列表
// @Summary 销售列表
// @Tags Sale
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param cashier_id query int false "收银员"
// @Param customer_id query int false "顾客"
// @Param status query string false "状态"
// @Param channel query string false "渠道 counter/online"
// @Param from query string false "开始日期"
// @Param to query string false "结束日期"
// @Success 200 {object} dto.PageResult[model.Sale]
// @Router /pharmacies/{pharmacy_id}/sales [get]
func (ctrl *SaleController) List(c *gin.Context) {
	var req dto.SaleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.saleService.List(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// Get 销售详情
// @Summary 销售详情
// @Tags Sale
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "销售 ID"
// @Success 200 {object} model.Sale
// @Router /pharmacies/{pharmacy_id}/sales/{id} [get]
func (ctrl *SaleController) Get(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	sale, err := ctrl.saleService.Get(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, sale)
}

// Cancel 作废销售，退回库存与积分
// @Summary 作废销售
// @Tags Sale
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "销售 ID"
// @Param request body dto.CancelSaleRequest true "原因"
// @Success 200 {object} model.Sale
// @Router /pharmacies/{pharmacy_id}/sales/{id}/cancel [post]
func (ctrl *SaleController) Cancel(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sale, err := ctrl.saleService.Cancel(c.Request.Context(), middleware.GetPharmacyID(c), id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, sale)
}

// DailySummary 日报
// @Summary 销售日报
// @Tags Sale
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param date query string false "日期 2006-01-02，默认今天"
// @Success 200 {object} dto.SalesSummary
// @Router /pharmacies/{pharmacy_id}/sales/summary/daily [get]
func (ctrl *SaleController) DailySummary(c *gin.Context) {
	var req dto.DailySummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	sum, err := ctrl.saleService.DailySummary(c.Request.Context(), middleware.GetPharmacyID(c), req.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, sum)
}

// MonthlySummary 月报
// @Summary 销售月报
// @Tags Sale
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param month query string false "月份 2006-01，默认本月"
// @Success 200 {object} dto.SalesSummary
// @Router /pharmacies/{pharmacy_id}/sales/summary/monthly [get]
func (ctrl *SaleController) MonthlySummary(c *gin.Context) {
	var req dto.MonthlySummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	sum, err := ctrl.saleService.MonthlySummary(c.Request.Context(), middleware.GetPharmacyID(c), req.Month)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, sum)
}

// TopProducts 畅销商品
// @Summary 畅销商品
// @Tags Sale
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param limit query int false "数量，默认 10"
// @Success 200 {array} repository.TopProduct
// @Router /pharmacies/{pharmacy_id}/sales/top-products [get]
func (ctrl *SaleController) TopProducts(c *gin.Context) {
	var req dto.TopProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	list, err := ctrl.saleService.TopProducts(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}
