package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

// PharmacyController 药房与成员管理
type PharmacyController struct {
	pharmacyService *service.PharmacyService
}

func NewPharmacyController(pharmacyService *service.PharmacyService) *PharmacyController {
	return &PharmacyController{pharmacyService: pharmacyService}
}

// Create 创建药房，创建人成为 owner
// @Summary 创建药房
// @Tags Pharmacy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePharmacyRequest true "药房信息"
// @Success 201 {object} model.Pharmacy
// @Failure 409 {object} map[string]interface{}
// @Router /pharmacies [post]
func (ctrl *PharmacyController) Create(c *gin.Context) {
	var req dto.CreatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ph, err := ctrl.pharmacyService.Create(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, ph)
}

// List 全部药房（超级管理员）
// @Summary 药房列表
// @Tags Pharmacy
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "名称/许可证号"
// @Param city query string false "城市"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.PageResult[model.Pharmacy]
// @Router /pharmacies [get]
func (ctrl *PharmacyController) List(c *gin.Context) {
	var req dto.PharmacyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := ctrl.pharmacyService.List(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// ListMine 我所属的药房及角色
// @Summary 我的药房
// @Tags Pharmacy
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.MyPharmacy
// @Router /pharmacies/mine [get]
func (ctrl *PharmacyController) ListMine(c *gin.Context) {
	list, err := ctrl.pharmacyService.ListMine(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}

// Get 药房详情
// @Summary 药房详情
// @Tags Pharmacy
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} model.Pharmacy
// @Failure 403 {object} map[string]interface{}
// @Router /pharmacies/{pharmacy_id} [get]
func (ctrl *PharmacyController) Get(c *gin.Context) {
	ph, err := ctrl.pharmacyService.Get(c.Request.Context(), middleware.GetPharmacyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, ph)
}

// Update 修改药房
// @Summary 修改药房
// @Tags Pharmacy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.UpdatePharmacyRequest true "修改内容"
// @Success 200 {object} model.Pharmacy
// @Router /pharmacies/{pharmacy_id} [put]
func (ctrl *PharmacyController) Update(c *gin.Context) {
	var req dto.UpdatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ph, err := ctrl.pharmacyService.Update(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, ph)
}

// Delete 删除药房（owner）
// @Summary 删除药房
// @Tags Pharmacy
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} map[string]interface{}
// @Router /pharmacies/{pharmacy_id} [delete]
func (ctrl *PharmacyController) Delete(c *gin.Context) {
	if err := ctrl.pharmacyService.Delete(c.Request.Context(), middleware.GetPharmacyID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}

// ==================== 成员 ====================

// ListMembers 成员列表
// @Summary 成员列表
// @Tags Pharmacy
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {array} model.PharmacyMember
// @Router /pharmacies/{pharmacy_id}/members [get]
func (ctrl *PharmacyController) ListMembers(c *gin.Context) {
	list, err := ctrl.pharmacyService.ListMembers(c.Request.Context(), middleware.GetPharmacyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}

// AddMember 添加成员
// @Summary 添加成员
// @Tags Pharmacy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.AddMemberRequest true "成员"
// @Success 201 {object} model.PharmacyMember
// @Failure 409 {object} map[string]interface{}
// @Router /pharmacies/{pharmacy_id}/members [post]
func (ctrl *PharmacyController) AddMember(c *gin.Context) {
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	m, err := ctrl.pharmacyService.AddMember(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetMemberRole(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, m)
}

// UpdateMember 修改成员角色或停用
// @Summary 修改成员
// @Tags Pharmacy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param user_id path int true "用户 ID"
// @Param request body dto.UpdateMemberRequest true "修改内容"
// @Success 200 {object} model.PharmacyMember
// @Failure 400 {object} map[string]interface{} "最后一个 owner"
// @Router /pharmacies/{pharmacy_id}/members/{user_id} [put]
func (ctrl *PharmacyController) UpdateMember(c *gin.Context) {
	userID, valid := pathID(c, "user_id")
	if !valid {
		return
	}
	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	m, err := ctrl.pharmacyService.UpdateMember(c.Request.Context(), middleware.GetPharmacyID(c), userID, middleware.GetMemberRole(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, m)
}

// RemoveMember 移除成员
// @Summary 移除成员
// @Tags Pharmacy
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param user_id path int true "用户 ID"
// @Success 200 {object} map[string]interface{}
// @Router /pharmacies/{pharmacy_id}/members/{user_id} [delete]
func (ctrl *PharmacyController) RemoveMember(c *gin.Context) {
	userID, valid := pathID(c, "user_id")
	if !valid {
		return
	}
	if err := ctrl.pharmacyService.RemoveMember(c.Request.Context(), middleware.GetPharmacyID(c), userID, middleware.GetMemberRole(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "已移除"})
}
