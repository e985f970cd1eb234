package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

// FinanceController 发票、费用、财务汇总
type FinanceController struct {
	financeService *service.FinanceService
}

func NewFinanceController(financeService *service.FinanceService) *FinanceController {
	return &FinanceController{financeService: financeService}
}

// ==================== 发票 ====================

// CreateFromSale 由销售开票
// @Summary 由销售开票
// @Description 柜台已收款项（现金扣除找零）计入发票；issue=true 时直接开具
// @Tags Finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.InvoiceFromSaleRequest true "销售"
// @Success 201 {object} model.Invoice
// @Failure 400 {object} map[string]interface{} "销售已开票"
// @Router /pharmacies/{pharmacy_id}/invoices/from-sale [post]
func (ctrl *FinanceController) CreateFromSale(c *gin.Context) {
	var req dto.InvoiceFromSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	inv, err := ctrl.financeService.CreateFromSale(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, inv)
}

// CreateInvoice 手工发票
// @Summary 手工发票（草稿）
// @Tags Finance
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.InvoiceRequest true "发票"
// @Success 201 {object} model.Invoice
// @Router /pharmacies/{pharmacy_id}/invoices [post]
func (ctrl *FinanceController) CreateInvoice(c *gin.Context) {
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	inv, err := ctrl.financeService.CreateInvoice(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, inv)
}

// UpdateInvoice 修改草稿发票
// @Summary 修改草稿发票
// @Tags Finance
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "发票 ID"
// @Param request body dto.InvoiceRequest true "发票"
// @Success 200 {object} model.Invoice
// @Router /pharmacies/{pharmacy_id}/invoices/{id} [put]
func (ctrl *FinanceController) UpdateInvoice(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	inv, err := ctrl.financeService.UpdateInvoice(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, inv)
}

// IssueInvoice 开具
// @Summary 开具发票
// @Tags Finance
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "发票 ID"
// @Success 200 {object} model.Invoice
// @Router /pharmacies/{pharmacy_id}/invoices/{id}/issue [post]
func (ctrl *FinanceController) IssueInvoice(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	inv, err := ctrl.financeService.IssueInvoice(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, inv)
}

// CancelInvoice 作废，已有收款时拒绝
// @Summary 作废发票
// @Tags Finance
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "发票 ID"
// @Success 200 {object} model.Invoice
// @Router /pharmacies/{pharmacy_id}/invoices/{id}/cancel [post]
func (ctrl *FinanceController) CancelInvoice(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	inv, err := ctrl.financeService.CancelInvoice(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, inv)
}

// AddPayment 发票收款
// @Summary 发票收款
// @Tags Finance
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "发票 ID"
// @Param request body dto.InvoicePaymentRequest true "收款"
// @Success 200 {object} model.Invoice
// @Failure 400 {object} map[string]interface{} "超额收款"
// @Router /pharmacies/{pharmacy_id}/invoices/{id}/payments [post]
func (ctrl *FinanceController) AddPayment(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.InvoicePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	inv, err := ctrl.financeService.AddPayment(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, inv)
}

// GetInvoice 发票详情
// @Summary 发票详情
// @Tags Finance
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "发票 ID"
// @Success 200 {object} model.Invoice
// @Router /pharmacies/{pharmacy_id}/invoices/{id} [get]
func (ctrl *FinanceController) GetInvoice(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	inv, err := ctrl.financeService.GetInvoice(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, inv)
}

// ListInvoices 发票列表
// @Summary 发票列表
// @Tags Finance
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param customer_id query int false "顾客"
// @Param status query string false "状态"
// @Param overdue query bool false "仅逾期"
// @Success 200 {object} dto.PageResult[model.Invoice]
// @Router /pharmacies/{pharmacy_id}/invoices [get]
func (ctrl *FinanceController) ListInvoices(c *gin.Context) {
	var req dto.InvoiceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.financeService.ListInvoices(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// ==================== 费用 ====================

// CreateExpense 新建费用
// @Summary 新建费用
// @Tags Finance
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.ExpenseRequest true "费用"
// @Success 201 {object} model.Expense
// @Router /pharmacies/{pharmacy_id}/expenses [post]
func (ctrl *FinanceController) CreateExpense(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := ctrl.financeService.CreateExpense(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, e)
}

// ListExpenses 费用列表
// @Summary 费用列表
// @Tags Finance
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param category query string false "类别"
// @Success 200 {object} dto.PageResult[model.Expense]
// @Router /pharmacies/{pharmacy_id}/expenses [get]
func (ctrl *FinanceController) ListExpenses(c *gin.Context) {
	var req dto.ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.financeService.ListExpenses(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetExpense 费用详情
// @Summary 费用详情
// @Tags Finance
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "费用 ID"
// @Success 200 {object} model.Expense
// @Router /pharmacies/{pharmacy_id}/expenses/{id} [get]
func (ctrl *FinanceController) GetExpense(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	e, err := ctrl.financeService.GetExpense(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, e)
}

// UpdateExpense 修改费用
// @Summary 修改费用
// @Tags Finance
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "费用 ID"
// @Param request body dto.ExpenseRequest true "费用"
// @Success 200 {object} model.Expense
// @Router /pharmacies/{pharmacy_id}/expenses/{id} [put]
func (ctrl *FinanceController) UpdateExpense(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := ctrl.financeService.UpdateExpense(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, e)
}

// DeleteExpense 删除费用
// @Summary 删除费用
// @Tags Finance
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "费用 ID"
// @Router /pharmacies/{pharmacy_id}/expenses/{id} [delete]
func (ctrl *FinanceController) DeleteExpense(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := ctrl.financeService.DeleteExpense(c.Request.Context(), middleware.GetPharmacyID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}

// UploadExpenseReceipt 上传票据（图片或 PDF）
// @Summary 上传费用票据
// @Tags Finance
// @Accept multipart/form-data
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "费用 ID"
// @Param file formData file true "票据"
// @Success 200 {object} model.Expense
// @Router /pharmacies/{pharmacy_id}/expenses/{id}/receipt [post]
func (ctrl *FinanceController) UploadExpenseReceipt(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	data, filename, valid := readUpload(c)
	if !valid {
		return
	}
	e, err := ctrl.financeService.UploadExpenseReceipt(c.Request.Context(), middleware.GetPharmacyID(c), id, data, filename)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, e)
}

// Summary 区间财务汇总
// @Summary 财务汇总
// @Description 营业额、增值税、费用、按批次成本计算的毛利
// @Tags Finance
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param from query string false "开始日期"
// @Param to query string false "结束日期"
// @Success 200 {object} dto.FinancialSummary
// @Router /pharmacies/{pharmacy_id}/finance/summary [get]
func (ctrl *FinanceController) Summary(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	sum, err := ctrl.financeService.Summary(c.Request.Context(), middleware.GetPharmacyID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, sum)
}
