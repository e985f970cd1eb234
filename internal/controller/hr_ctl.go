package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

// HRController 员工、考勤、请假、工资
type HRController struct {
	hrService *service.HRService
}

func NewHRController(hrService *service.HRService) *HRController {
	return &HRController{hrService: hrService}
}

// ==================== 员工 ====================

// CreateEmployee 新建员工
// @Summary 新建员工
// @Tags HR
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.EmployeeRequest true "员工信息"
// @Success 201 {object} model.Employee
// @Router /pharmacies/{pharmacy_id}/employees [post]
func (ctrl *HRController) CreateEmployee(c *gin.Context) {
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := ctrl.hrService.CreateEmployee(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, e)
}

// ListEmployees 员工列表
// @Summary 员工列表
// @Tags HR
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} dto.PageResult[model.Employee]
// @Router /pharmacies/{pharmacy_id}/employees [get]
func (ctrl *HRController) ListEmployees(c *gin.Context) {
	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.hrService.ListEmployees(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetEmployee 员工详情
// @Summary 员工详情
// @Tags HR
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "员工 ID"
// @Success 200 {object} model.Employee
// @Router /pharmacies/{pharmacy_id}/employees/{id} [get]
func (ctrl *HRController) GetEmployee(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	e, err := ctrl.hrService.GetEmployee(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, e)
}

// UpdateEmployee 修改员工
// @Summary 修改员工
// @Tags HR
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "员工 ID"
// @Param request body dto.EmployeeRequest true "员工信息"
// @Success 200 {object} model.Employee
// @Router /pharmacies/{pharmacy_id}/employees/{id} [put]
func (ctrl *HRController) UpdateEmployee(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := ctrl.hrService.UpdateEmployee(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, e)
}

// DeleteEmployee 删除员工
// @Summary 删除员工
// @Tags HR
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "员工 ID"
// @Router /pharmacies/{pharmacy_id}/employees/{id} [delete]
func (ctrl *HRController) DeleteEmployee(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := ctrl.hrService.DeleteEmployee(c.Request.Context(), middleware.GetPharmacyID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}

// ==================== 考勤 ====================

// ClockIn 上班打卡
// @Summary 上班打卡
// @Tags HR
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.ClockRequest true "打卡"
// @Success 201 {object} model.Attendance
// @Failure 400 {object} map[string]interface{} "已有未下班的打卡"
// @Failure 403 {object} map[string]interface{} "非店长只能为本人打卡"
// @Router /pharmacies/{pharmacy_id}/attendance/clock-in [post]
func (ctrl *HRController) ClockIn(c *gin.Context) {
	var req dto.ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := ctrl.hrService.ClockIn(c.Request.Context(), middleware.GetPharmacyID(c), clocker(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, a)
}

// ClockOut 下班打卡
// @Summary 下班打卡
// @Tags HR
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.ClockRequest true "打卡"
// @Success 200 {object} model.Attendance
// @Failure 403 {object} map[string]interface{} "非店长只能为本人打卡"
// @Router /pharmacies/{pharmacy_id}/attendance/clock-out [post]
func (ctrl *HRController) ClockOut(c *gin.Context) {
	var req dto.ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := ctrl.hrService.ClockOut(c.Request.Context(), middleware.GetPharmacyID(c), clocker(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, a)
}

func clocker(c *gin.Context) service.Clocker {
	return service.Clocker{UserID: middleware.GetUserID(c), MemberRole: middleware.GetMemberRole(c)}
}

// ListAttendance 考勤记录
// @Summary 考勤记录
// @Tags HR
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param employee_id query int false "员工 ID"
// @Param from query string false "开始日期 2006-01-02"
// @Param to query string false "结束日期 2006-01-02"
// @Success 200 {object} dto.PageResult[model.Attendance]
// @Router /pharmacies/{pharmacy_id}/attendance [get]
func (ctrl *HRController) ListAttendance(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.hrService.ListAttendance(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// ==================== 请假 ====================

// CreateLeave 提交请假
// @Summary 提交请假
// @Tags HR
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.LeaveRequestCreate true "请假"
// @Success 201 {object} model.LeaveRequest
// @Failure 409 {object} map[string]interface{} "日期重叠"
// @Router /pharmacies/{pharmacy_id}/leaves [post]
func (ctrl *HRController) CreateLeave(c *gin.Context) {
	var req dto.LeaveRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	l, err := ctrl.hrService.CreateLeave(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, l)
}

// ListLeaves 请假列表
// @Summary 请假列表
// @Tags HR
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} dto.PageResult[model.LeaveRequest]
// @Router /pharmacies/{pharmacy_id}/leaves [get]
func (ctrl *HRController) ListLeaves(c *gin.Context) {
	var req dto.LeaveListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.hrService.ListLeaves(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// ReviewLeave 审批请假
// @Summary 审批请假
// @Tags HR
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "请假 ID"
// @Param request body dto.LeaveReviewRequest true "审批"
// @Success 200 {object} model.LeaveRequest
// @Router /pharmacies/{pharmacy_id}/leaves/{id}/review [post]
func (ctrl *HRController) ReviewLeave(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.LeaveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	l, err := ctrl.hrService.ReviewLeave(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, l)
}

// CancelLeave 撤销请假
// @Summary 撤销请假
// @Tags HR
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "请假 ID"
// @Success 200 {object} model.LeaveRequest
// @Router /pharmacies/{pharmacy_id}/leaves/{id}/cancel [post]
func (ctrl *HRController) CancelLeave(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	l, err := ctrl.hrService.CancelLeave(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, l)
}

// ==================== 工资 ====================

// GeneratePayslips 生成月度工资单
// @Summary 生成月度工资单
// @Description 已存在的工资单跳过；月薪为 0 时按工时乘时薪
// @Tags HR
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.GeneratePayslipsRequest true "期间"
// @Success 201 {array} model.Payslip
// @Router /pharmacies/{pharmacy_id}/payslips/generate [post]
func (ctrl *HRController) GeneratePayslips(c *gin.Context) {
	var req dto.GeneratePayslipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	list, err := ctrl.hrService.GeneratePayslips(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, list)
}

// ListPayslips 工资单列表
// @Summary 工资单列表
// @Tags HR
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param period query string false "期间 2006-01"
// @Success 200 {object} dto.PageResult[model.Payslip]
// @Router /pharmacies/{pharmacy_id}/payslips [get]
func (ctrl *HRController) ListPayslips(c *gin.Context) {
	var req dto.PayslipListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.hrService.ListPayslips(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetPayslip 工资单详情
// @Summary 工资单详情
// @Tags HR
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "工资单 ID"
// @Success 200 {object} model.Payslip
// @Router /pharmacies/{pharmacy_id}/payslips/{id} [get]
func (ctrl *HRController) GetPayslip(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := ctrl.hrService.GetPayslip(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// UpdatePayslip 调整奖金与扣款
// @Summary 调整工资单
// @Tags HR
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "工资单 ID"
// @Param request body dto.UpdatePayslipRequest true "调整"
// @Success 200 {object} model.Payslip
// @Router /pharmacies/{pharmacy_id}/payslips/{id} [put]
func (ctrl *HRController) UpdatePayslip(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.UpdatePayslipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.hrService.UpdatePayslip(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// ValidatePayslip 确认工资单
// @Summary 确认工资单
// @Tags HR
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "工资单 ID"
// @Success 200 {object} model.Payslip
// @Router /pharmacies/{pharmacy_id}/payslips/{id}/validate [post]
func (ctrl *HRController) ValidatePayslip(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := ctrl.hrService.ValidatePayslip(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}
