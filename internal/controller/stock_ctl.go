package controller

import (
	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

// StockController 批次、库存流水、采购
type StockController struct {
	stockService    *service.StockService
	purchaseService *service.PurchaseService
}

func NewStockController(stockService *service.StockService, purchaseService *service.PurchaseService) *StockController {
	return &StockController{stockService: stockService, purchaseService: purchaseService}
}

// ==================== 库存 ====================

// Receive 直接入库
// @Summary 直接入库（新建批次）
// @Tags Stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.ReceiveStockRequest true "批次"
// @Success 201 {object} model.StockBatch
// @Router /pharmacies/{pharmacy_id}/stock/receive [post]
func (ctrl *StockController) Receive(c *gin.Context) {
	var req dto.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := ctrl.stockService.Receive(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, b)
}

// Adjust 批次库存调整
// @Summary 批次库存调整
// @Description delta 为负时不能超过批次余量
// @Tags Stock
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "批次 ID"
// @Param request body dto.AdjustStockRequest true "调整"
// @Success 200 {object} model.StockBatch
// @Failure 400 {object} map[string]interface{} "库存不足"
// @Router /pharmacies/{pharmacy_id}/batches/{id}/adjust [post]
func (ctrl *StockController) Adjust(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := ctrl.stockService.Adjust(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, b)
}

// ListBatches 批次列表
// @Summary 批次列表
// @Tags Stock
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param product_id query int false "商品"
// @Param only_available query bool false "仅有余量"
// @Success 200 {object} dto.PageResult[model.StockBatch]
// @Router /pharmacies/{pharmacy_id}/batches [get]
func (ctrl *StockController) ListBatches(c *gin.Context) {
	var req dto.BatchListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.stockService.ListBatches(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetBatch 批次详情
// @Summary 批次详情
// @Tags Stock
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "批次 ID"
// @Success 200 {object} model.StockBatch
// @Router /pharmacies/{pharmacy_id}/batches/{id} [get]
func (ctrl *StockController) GetBatch(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	b, err := ctrl.stockService.GetBatch(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, b)
}

// ListMovements 库存流水
// @Summary 库存流水
// @Tags Stock
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param product_id query int false "商品"
// @Param batch_id query int false "批次"
// @Param type query string false "类型"
// @Success 200 {object} dto.PageResult[model.StockMovement]
// @Router /pharmacies/{pharmacy_id}/stock/movements [get]
func (ctrl *StockController) ListMovements(c *gin.Context) {
	var req dto.MovementListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.stockService.ListMovements(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// Expiring 近效期批次
// @Summary 近效期批次
// @Tags Stock
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param days query int false "天数，默认 30"
// @Success 200 {array} model.StockBatch
// @Router /pharmacies/{pharmacy_id}/stock/expiring [get]
func (ctrl *StockController) Expiring(c *gin.Context) {
	var req dto.ExpiringRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	list, err := ctrl.stockService.Expiring(c.Request.Context(), middleware.GetPharmacyID(c), req.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}

// ExpireBatches 过期批次出库
// @Summary 过期批次出库
// @Tags Stock
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} dto.ExpireResult
// @Router /pharmacies/{pharmacy_id}/stock/expire [post]
func (ctrl *StockController) ExpireBatches(c *gin.Context) {
	result, err := ctrl.stockService.ExpireBatches(c.Request.Context(), middleware.GetPharmacyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// LowStock 低库存商品
// @Summary 低库存商品
// @Tags Stock
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} dto.PageResult[model.Product]
// @Router /pharmacies/{pharmacy_id}/stock/low [get]
func (ctrl *StockController) LowStock(c *gin.Context) {
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.stockService.LowStock(c.Request.Context(), middleware.GetPharmacyID(c), page)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// Valuation 库存估值
// @Summary 库存估值
// @Tags Stock
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} dto.ValuationReport
// @Router /pharmacies/{pharmacy_id}/stock/valuation [get]
func (ctrl *StockController) Valuation(c *gin.Context) {
	report, err := ctrl.stockService.Valuation(c.Request.Context(), middleware.GetPharmacyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, report)
}

// ==================== 采购 ====================

// CreatePurchaseOrder 新建采购单（草稿）
// @Summary 新建采购单
// @Tags Purchase
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.PurchaseOrderRequest true "采购单"
// @Success 201 {object} model.PurchaseOrder
// @Router /pharmacies/{pharmacy_id}/purchase-orders [post]
func (ctrl *StockController) CreatePurchaseOrder(c *gin.Context) {
	var req dto.PurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	po, err := ctrl.purchaseService.Create(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, po)
}

// ListPurchaseOrders 采购单列表
// @Summary 采购单列表
// @Tags Purchase
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param supplier_id query int false "供应商"
// @Param status query string false "状态"
// @Success 200 {object} dto.PageResult[model.PurchaseOrder]
// @Router /pharmacies/{pharmacy_id}/purchase-orders [get]
func (ctrl *StockController) ListPurchaseOrders(c *gin.Context) {
	var req dto.PurchaseOrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.purchaseService.List(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetPurchaseOrder 采购单详情
// @Summary 采购单详情
// @Tags Purchase
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "采购单 ID"
// @Success 200 {object} model.PurchaseOrder
// @Router /pharmacies/{pharmacy_id}/purchase-orders/{id} [get]
func (ctrl *StockController) GetPurchaseOrder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	po, err := ctrl.purchaseService.Get(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, po)
}

// UpdatePurchaseOrder 修改草稿采购单
// @Summary 修改采购单
// @Tags Purchase
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "采购单 ID"
// @Param request body dto.PurchaseOrderRequest true "采购单"
// @Success 200 {object} model.PurchaseOrder
// @Router /pharmacies/{pharmacy_id}/purchase-orders/{id} [put]
func (ctrl *StockController) UpdatePurchaseOrder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.PurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	po, err := ctrl.purchaseService.Update(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, po)
}

// SendPurchaseOrder 发出采购单
// @Summary 发出采购单
// @Tags Purchase
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "采购单 ID"
// @Success 200 {object} model.PurchaseOrder
// @Router /pharmacies/{pharmacy_id}/purchase-orders/{id}/send [post]
func (ctrl *StockController) SendPurchaseOrder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	po, err := ctrl.purchaseService.Send(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, po)
}

// CancelPurchaseOrder 取消采购单
// @Summary 取消采购单
// @Tags Purchase
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "采购单 ID"
// @Success 200 {object} model.PurchaseOrder
// @Router /pharmacies/{pharmacy_id}/purchase-orders/{id}/cancel [post]
func (ctrl *StockController) CancelPurchaseOrder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	po, err := ctrl.purchaseService.Cancel(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, po)
}

// ReceivePurchaseOrder 采购收货，可部分收货
// @Summary 采购收货
// @Tags Purchase
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "采购单 ID"
// @Param request body dto.ReceiveLinesRequest true "收货明细"
// @Success 200 {object} model.PurchaseOrder
// @Failure 400 {object} map[string]interface{} "超量收货"
// @Router /pharmacies/{pharmacy_id}/purchase-orders/{id}/receive [post]
func (ctrl *StockController) ReceivePurchaseOrder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.ReceiveLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	po, err := ctrl.purchaseService.Receive(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, po)
}
