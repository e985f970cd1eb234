package controller

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

// ReportController 看板、审计日志、Excel 导出
type ReportController struct {
	dashboardService *service.DashboardService
	exportService    *service.ExportService
}

func NewReportController(dashboardService *service.DashboardService, exportService *service.ExportService) *ReportController {
	return &ReportController{
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

// Dashboard 药房看板
// @Summary 药房看板
// @Tags Report
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} dto.Dashboard
// @Router /pharmacies/{pharmacy_id}/dashboard [get]
func (ctrl *ReportController) Dashboard(c *gin.Context) {
	d, err := ctrl.dashboardService.Dashboard(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, d)
}

// ListActivity 审计日志
// @Summary 审计日志
// @Tags Report
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param user_id query int false "操作人"
// @Param entity query string false "表名"
// @Param record_id query int false "记录 ID"
// @Success 200 {object} dto.PageResult[model.ActivityLog]
// @Router /pharmacies/{pharmacy_id}/activity [get]
func (ctrl *ReportController) ListActivity(c *gin.Context) {
	var req dto.ActivityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.dashboardService.ListActivity(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// ExportSales 销售流水 Excel
// @Summary 导出销售流水
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param from query string false "开始日期"
// @Param to query string false "结束日期"
// @Router /pharmacies/{pharmacy_id}/exports/sales [get]
func (ctrl *ReportController) ExportSales(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	file, err := ctrl.exportService.SalesJournal(c.Request.Context(), middleware.GetPharmacyID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, file)
}

// ExportInvoices 发票 Excel
// @Summary 导出发票
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param from query string false "开始日期"
// @Param to query string false "结束日期"
// @Router /pharmacies/{pharmacy_id}/exports/invoices [get]
func (ctrl *ReportController) ExportInvoices(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	file, err := ctrl.exportService.Invoices(c.Request.Context(), middleware.GetPharmacyID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, file)
}

// ExportValuation 库存估值 Excel
// @Summary 导出库存估值
// @Tags Report
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Router /pharmacies/{pharmacy_id}/exports/stock-valuation [get]
func (ctrl *ReportController) ExportValuation(c *gin.Context) {
	file, err := ctrl.exportService.StockValuation(c.Request.Context(), middleware.GetPharmacyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	attachment(c, file)
}

func attachment(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(200, service.ContentTypeXLSX, file.Data)
}
