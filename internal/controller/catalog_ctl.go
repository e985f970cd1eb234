package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

// CatalogController 分类、商品、供应商
type CatalogController struct {
	catalogService *service.CatalogService
	aiService      *service.AIService
}

func NewCatalogController(catalogService *service.CatalogService, aiService *service.AIService) *CatalogController {
	return &CatalogController{catalogService: catalogService, aiService: aiService}
}

// ==================== 分类 ====================

// ListCategories 分类列表
// @Summary 分类列表
// @Tags Catalog
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {array} model.Category
// @Router /pharmacies/{pharmacy_id}/categories [get]
func (ctrl *CatalogController) ListCategories(c *gin.Context) {
	list, err := ctrl.catalogService.ListCategories(c.Request.Context(), middleware.GetPharmacyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, list)
}

// CreateCategory 新建分类
// @Summary 新建分类
// @Tags Catalog
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.CategoryRequest true "分类"
// @Success 201 {object} model.Category
// @Router /pharmacies/{pharmacy_id}/categories [post]
func (ctrl *CatalogController) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := ctrl.catalogService.CreateCategory(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, cat)
}

// UpdateCategory 修改分类
// @Summary 修改分类
// @Tags Catalog
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "分类 ID"
// @Param request body dto.CategoryRequest true "分类"
// @Success 200 {object} model.Category
// @Router /pharmacies/{pharmacy_id}/categories/{id} [put]
func (ctrl *CatalogController) UpdateCategory(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := ctrl.catalogService.UpdateCategory(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cat)
}

// DeleteCategory 删除分类，分类下有商品时拒绝
// @Summary 删除分类
// @Tags Catalog
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "分类 ID"
// @Router /pharmacies/{pharmacy_id}/categories/{id} [delete]
func (ctrl *CatalogController) DeleteCategory(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := ctrl.catalogService.DeleteCategory(c.Request.Context(), middleware.GetPharmacyID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}

// ==================== 商品 ====================

// ListProducts 商品搜索（名称、通用名、条码、SKU）
// @Summary 商品列表
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param keyword query string false "名称/DCI/条码/SKU"
// @Param category_id query int false "分类"
// @Param low_stock query bool false "仅低库存"
// @Param published query bool false "是否上架网店"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} dto.PageResult[model.Product]
// @Router /pharmacies/{pharmacy_id}/products [get]
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	var req dto.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.catalogService.ListProducts(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// CreateProduct 新建商品
// @Summary 新建商品
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.ProductRequest true "商品"
// @Success 201 {object} model.Product
// @Failure 409 {object} map[string]interface{} "SKU 已存在"
// @Router /pharmacies/{pharmacy_id}/products [post]
func (ctrl *CatalogController) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.catalogService.CreateProduct(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, p)
}

// GetProductByBarcode 扫码查询
// @Summary 按条码查询商品
// @Tags Catalog
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param barcode path string true "条码"
// @Success 200 {object} model.Product
// @Router /pharmacies/{pharmacy_id}/products/barcode/{barcode} [get]
func (ctrl *CatalogController) GetProductByBarcode(c *gin.Context) {
	p, err := ctrl.catalogService.GetProductByBarcode(c.Request.Context(), middleware.GetPharmacyID(c), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// GetProduct 商品详情
// @Summary 商品详情
// @Tags Catalog
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "商品 ID"
// @Success 200 {object} model.Product
// @Router /pharmacies/{pharmacy_id}/products/{id} [get]
func (ctrl *CatalogController) GetProduct(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := ctrl.catalogService.GetProduct(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// UpdateProduct 修改商品
// @Summary 修改商品
// @Tags Catalog
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "商品 ID"
// @Param request body dto.ProductRequest true "商品"
// @Success 200 {object} model.Product
// @Router /pharmacies/{pharmacy_id}/products/{id} [put]
func (ctrl *CatalogController) UpdateProduct(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.catalogService.UpdateProduct(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// DeleteProduct 删除商品，仍有库存时拒绝
// @Summary 删除商品
// @Tags Catalog
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "商品 ID"
// @Router /pharmacies/{pharmacy_id}/products/{id} [delete]
func (ctrl *CatalogController) DeleteProduct(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := ctrl.catalogService.DeleteProduct(c.Request.Context(), middleware.GetPharmacyID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}

// UploadProductImage 上传商品图片
// @Summary 上传商品图片
// @Tags Catalog
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "商品 ID"
// @Param file formData file true "图片"
// @Success 200 {object} model.Product
// @Router /pharmacies/{pharmacy_id}/products/{id}/image [post]
func (ctrl *CatalogController) UploadProductImage(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	data, filename, valid := readUpload(c)
	if !valid {
		return
	}
	p, err := ctrl.catalogService.UploadProductImage(c.Request.Context(), middleware.GetPharmacyID(c), id, data, filename)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// ImportProductImage 从远程地址导入商品图片
// @Summary 导入商品图片
// @Tags Catalog
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "商品 ID"
// @Param request body dto.ImportImageRequest true "图片地址"
// @Success 200 {object} model.Product
// @Router /pharmacies/{pharmacy_id}/products/{id}/image/import [post]
func (ctrl *CatalogController) ImportProductImage(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.ImportImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := ctrl.catalogService.ImportProductImage(c.Request.Context(), middleware.GetPharmacyID(c), id, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// GenerateDescription AI 生成网店描述
// @Summary AI 生成商品网店描述
// @Description 调用 Gemini 生成描述，save=true 时写回商品；未配置 API Key 返回 400，模型失败返回 502
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "商品 ID"
// @Param request body dto.GenerateDescriptionRequest true "语言与是否保存"
// @Success 200 {object} dto.GenerateDescriptionResponse
// @Failure 502 {object} map[string]interface{}
// @Router /pharmacies/{pharmacy_id}/products/{id}/ai-description [post]
func (ctrl *CatalogController) GenerateDescription(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.GenerateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := ctrl.aiService.GenerateDescription(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, resp)
}

// AIUsage 药房 AI 调用统计
// @Summary AI 用量
// @Tags Catalog
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param from query string false "开始日期"
// @Param to query string false "结束日期"
// @Success 200 {object} repository.AIUsageReport
// @Router /pharmacies/{pharmacy_id}/ai/usage [get]
func (ctrl *CatalogController) AIUsage(c *gin.Context) {
	var q dto.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	stats, err := ctrl.aiService.Usage(c.Request.Context(), middleware.GetPharmacyID(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, stats)
}

// ==================== 供应商 ====================

// ListSuppliers 供应商列表
// @Summary 供应商列表
// @Tags Catalog
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} dto.PageResult[model.Supplier]
// @Router /pharmacies/{pharmacy_id}/suppliers [get]
func (ctrl *CatalogController) ListSuppliers(c *gin.Context) {
	var req dto.SupplierListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.catalogService.ListSuppliers(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// CreateSupplier 新建供应商
// @Summary 新建供应商
// @Tags Catalog
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param request body dto.SupplierRequest true "供应商"
// @Success 201 {object} model.Supplier
// @Router /pharmacies/{pharmacy_id}/suppliers [post]
func (ctrl *CatalogController) CreateSupplier(c *gin.Context) {
	var req dto.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := ctrl.catalogService.CreateSupplier(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, s)
}

// GetSupplier 供应商详情
// @Summary 供应商详情
// @Tags Catalog
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "供应商 ID"
// @Success 200 {object} model.Supplier
// @Router /pharmacies/{pharmacy_id}/suppliers/{id} [get]
func (ctrl *CatalogController) GetSupplier(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	s, err := ctrl.catalogService.GetSupplier(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, s)
}

// UpdateSupplier 修改供应商
// @Summary 修改供应商
// @Tags Catalog
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "供应商 ID"
// @Param request body dto.SupplierRequest true "供应商"
// @Success 200 {object} model.Supplier
// @Router /pharmacies/{pharmacy_id}/suppliers/{id} [put]
func (ctrl *CatalogController) UpdateSupplier(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s, err := ctrl.catalogService.UpdateSupplier(c.Request.Context(), middleware.GetPharmacyID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, s)
}

// DeleteSupplier 删除供应商
// @Summary 删除供应商
// @Tags Catalog
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "供应商 ID"
// @Router /pharmacies/{pharmacy_id}/suppliers/{id} [delete]
func (ctrl *CatalogController) DeleteSupplier(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := ctrl.catalogService.DeleteSupplier(c.Request.Context(), middleware.GetPharmacyID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}
