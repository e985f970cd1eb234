package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

// CRMController 顾客、处方、预约、病历备注、积分
type CRMController struct {
	crmService *service.CRMService
}

func NewCRMController(crmService *service.CRMService) *CRMController {
	return &CRMController{crmService: crmService}
}

// ==================== 顾客 ====================

// CreateCustomer 新建顾客档案
// @Summary 新建顾客
// @Tags CRM
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.CustomerRequest true "顾客"
// @Success 201 {object} model.Customer
// @Router /pharmacies/{pharmacy_id}/customers [post]
func (ctrl *CRMController) CreateCustomer(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cust, err := ctrl.crmService.CreateCustomer(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, cust)
}

// ListCustomers 顾客列表
// @Summary 顾客列表
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param keyword query string false "姓名/电话/医保号"
// @Success 200 {object} dto.PageResult[model.Customer]
// @Router /pharmacies/{pharmacy_id}/customers [get]
func (ctrl *CRMController) ListCustomers(c *gin.Context) {
	var req dto.CustomerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.crmService.ListCustomers(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetCustomer 顾客详情
// @Summary 顾客详情
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "顾客 ID"
// @Success 200 {object} model.Customer
// @Router /pharmacies/{pharmacy_id}/customers/{id} [get]
func (ctrl *CRMController) GetCustomer(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	cust, err := ctrl.crmService.GetCustomer(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cust)
}

// UpdateCustomer 修改顾客
// @Summary 修改顾客
// @Tags CRM
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "顾客 ID"
// @Param request body dto.CustomerRequest true "顾客"
// @Success 200 {object} model.Customer
// @Router /pharmacies/{pharmacy_id}/customers/{id} [put]
func (ctrl *CRMController) UpdateCustomer(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cust, err := ctrl.crmService.UpdateCustomer(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cust)
}

// DeleteCustomer 删除顾客
// @Summary 删除顾客
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "顾客 ID"
// @Router /pharmacies/{pharmacy_id}/customers/{id} [delete]
func (ctrl *CRMController) DeleteCustomer(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := ctrl.crmService.DeleteCustomer(c.Request.Context(), middleware.GetPharmacyID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}

// CustomerHistory 顾客购买、处方、预约、积分
// @Summary 顾客历史
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "顾客 ID"
// @Success 200 {object} dto.CustomerHistory
// @Router /pharmacies/{pharmacy_id}/customers/{id}/history [get]
func (ctrl *CRMController) CustomerHistory(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	h, err := ctrl.crmService.CustomerHistory(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, h)
}

// ==================== 处方 ====================

// CreatePrescription 登记处方
// @Summary 登记处方
// @Tags CRM
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.PrescriptionRequest true "处方"
// @Success 201 {object} model.Prescription
// @Router /pharmacies/{pharmacy_id}/prescriptions [post]
func (ctrl *CRMController) CreatePrescription(c *gin.Context) {
	var req dto.PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.crmService.CreatePrescription(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, p)
}

// ListPrescriptions 处方列表
// @Summary 处方列表
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param customer_id query int false "顾客"
// @Param status query string false "状态"
// @Success 200 {object} dto.PageResult[model.Prescription]
// @Router /pharmacies/{pharmacy_id}/prescriptions [get]
func (ctrl *CRMController) ListPrescriptions(c *gin.Context) {
	var req dto.PrescriptionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.crmService.ListPrescriptions(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetPrescription 处方详情
// @Summary 处方详情
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "处方 ID"
// @Success 200 {object} model.Prescription
// @Router /pharmacies/{pharmacy_id}/prescriptions/{id} [get]
func (ctrl *CRMController) GetPrescription(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := ctrl.crmService.GetPrescription(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// UpdatePrescription 修改未使用的处方
// @Summary 修改处方
// @Tags CRM
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "处方 ID"
// @Param request body dto.PrescriptionRequest true "处方"
// @Success 200 {object} model.Prescription
// @Router /pharmacies/{pharmacy_id}/prescriptions/{id} [put]
func (ctrl *CRMController) UpdatePrescription(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.crmService.UpdatePrescription(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// UploadPrescriptionScan 上传处方扫描件
// @Summary 上传处方扫描件
// @Tags CRM
// @Accept multipart/form-data
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "处方 ID"
// @Param file formData file true "扫描件（图片或 PDF）"
// @Success 200 {object} model.Prescription
// @Router /pharmacies/{pharmacy_id}/prescriptions/{id}/scan [post]
func (ctrl *CRMController) UploadPrescriptionScan(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	data, filename, valid := readUpload(c)
	if !valid {
		return
	}
	p, err := ctrl.crmService.UploadPrescriptionScan(c.Request.Context(), middleware.GetPharmacyID(c), id, data, filename)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// ==================== 预约 ====================

// CreateAppointment 新建预约
// @Summary 新建预约
// @Tags CRM
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.AppointmentRequest true "预约"
// @Success 201 {object} model.Appointment
// @Failure 409 {object} map[string]interface{} "时段冲突"
// @Router /pharmacies/{pharmacy_id}/appointments [post]
func (ctrl *CRMController) CreateAppointment(c *gin.Context) {
	var req dto.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := ctrl.crmService.CreateAppointment(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, a)
}

// ListAppointments 预约列表
// @Summary 预约列表
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param customer_id query int false "顾客"
// @Param staff_user_id query int false "接待员工"
// @Param status query string false "状态"
// @Param type query string false "类型"
// @Param upcoming query bool false "仅未来"
// @Success 200 {object} dto.PageResult[model.Appointment]
// @Router /pharmacies/{pharmacy_id}/appointments [get]
func (ctrl *CRMController) ListAppointments(c *gin.Context) {
	var req dto.AppointmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.crmService.ListAppointments(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetAppointment 预约详情
// @Summary 预约详情
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "预约 ID"
// @Success 200 {object} model.Appointment
// @Router /pharmacies/{pharmacy_id}/appointments/{id} [get]
func (ctrl *CRMController) GetAppointment(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	a, err := ctrl.crmService.GetAppointment(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, a)
}

// UpdateAppointment 改期或修改
// @Summary 修改预约
// @Tags CRM
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "预约 ID"
// @Param request body dto.AppointmentRequest true "预约"
// @Success 200 {object} model.Appointment
// @Router /pharmacies/{pharmacy_id}/appointments/{id} [put]
func (ctrl *CRMController) UpdateAppointment(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := ctrl.crmService.UpdateAppointment(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, a)
}

// SetAppointmentStatus 完成、取消、缺席
// @Summary 预约状态
// @Tags CRM
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "预约 ID"
// @Param request body dto.AppointmentStatusRequest true "状态"
// @Success 200 {object} model.Appointment
// @Router /pharmacies/{pharmacy_id}/appointments/{id}/status [post]
func (ctrl *CRMController) SetAppointmentStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.AppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := ctrl.crmService.SetAppointmentStatus(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, a)
}

// ==================== 病历备注 / 积分 ====================

// AddNote 添加病历备注
// @Summary 添加病历备注
// @Tags CRM
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "顾客 ID"
// @Param request body dto.MedicalNoteRequest true "备注"
// @Success 201 {object} model.MedicalNote
// @Router /pharmacies/{pharmacy_id}/customers/{id}/notes [post]
func (ctrl *CRMController) AddNote(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.MedicalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	note, err := ctrl.crmService.AddNote(c.Request.Context(), middleware.GetPharmacyID(c), id, middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, note)
}

// ListNotes 病历备注列表
// @Summary 病历备注列表
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "顾客 ID"
// @Success 200 {object} dto.PageResult[model.MedicalNote]
// @Router /pharmacies/{pharmacy_id}/customers/{id}/notes [get]
func (ctrl *CRMController) ListNotes(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.crmService.ListNotes(c.Request.Context(), middleware.GetPharmacyID(c), id, page)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetLoyalty 积分账户
// @Summary 积分账户
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "顾客 ID"
// @Success 200 {object} model.LoyaltyAccount
// @Router /pharmacies/{pharmacy_id}/customers/{id}/loyalty [get]
func (ctrl *CRMController) GetLoyalty(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	acc, err := ctrl.crmService.GetLoyalty(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, acc)
}

// AdjustLoyalty 手工调整积分
// @Summary 调整积分
// @Tags CRM
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "顾客 ID"
// @Param request body dto.LoyaltyAdjustRequest true "调整"
// @Success 200 {object} model.LoyaltyAccount
// @Router /pharmacies/{pharmacy_id}/customers/{id}/loyalty/adjust [post]
func (ctrl *CRMController) AdjustLoyalty(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.LoyaltyAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	acc, err := ctrl.crmService.AdjustLoyalty(c.Request.Context(), middleware.GetPharmacyID(c), id, middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, acc)
}

// ListLoyaltyTransactions 积分流水
// @Summary 积分流水
// @Tags CRM
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "顾客 ID"
// @Success 200 {object} dto.PageResult[model.LoyaltyTransaction]
// @Router /pharmacies/{pharmacy_id}/customers/{id}/loyalty/transactions [get]
func (ctrl *CRMController) ListLoyaltyTransactions(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.crmService.ListLoyaltyTransactions(c.Request.Context(), middleware.GetPharmacyID(c), id, page)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}
