package controller

import (
	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/service"
)

// StorefrontController 网店：公开目录、购物车、下单、员工处理订单
type StorefrontController struct {
	storefrontService *service.StorefrontService
}

func NewStorefrontController(storefrontService *service.StorefrontService) *StorefrontController {
	return &StorefrontController{storefrontService: storefrontService}
}

// ==================== 公开目录 ====================

// ListPharmacies 开通网店的药房
// @Summary 网店药房列表
// @Tags Storefront
// @Produce json
// @Param city query string false "城市"
// @Param keyword query string false "关键词"
// @Success 200 {object} dto.PageResult[dto.StorefrontPharmacy]
// @Router /shop/pharmacies [get]
func (ctrl *StorefrontController) ListPharmacies(c *gin.Context) {
	var req dto.PharmacyListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.storefrontService.ListPharmacies(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// ListProducts 药房上架商品
// @Summary 网店商品列表
// @Tags Storefront
// @Produce json
// @Param pharmacy_id path int true "药房 ID"
// @Param keyword query string false "关键词"
// @Param category_id query int false "分类"
// @Success 200 {object} dto.PageResult[dto.StorefrontProduct]
// @Router /shop/pharmacies/{pharmacy_id}/products [get]
func (ctrl *StorefrontController) ListProducts(c *gin.Context) {
	pharmacyID, valid := pathID(c, "pharmacy_id")
	if !valid {
		return
	}
	var req dto.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.storefrontService.ListProducts(c.Request.Context(), pharmacyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetProduct 商品详情
// @Summary 网店商品详情
// @Tags Storefront
// @Produce json
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "商品 ID"
// @Success 200 {object} dto.StorefrontProduct
// @Router /shop/pharmacies/{pharmacy_id}/products/{id} [get]
func (ctrl *StorefrontController) GetProduct(c *gin.Context) {
	pharmacyID, valid := pathID(c, "pharmacy_id")
	if !valid {
		return
	}
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p, err := ctrl.storefrontService.GetProduct(c.Request.Context(), pharmacyID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, p)
}

// ==================== 购物车 ====================

// CreateCart 新建购物车，返回 token
// @Summary 新建购物车
// @Tags Storefront
// @Accept json
// @Param request body dto.CreateCartRequest true "药房"
// @Success 201 {object} dto.CartView
// @Router /shop/carts [post]
func (ctrl *StorefrontController) CreateCart(c *gin.Context) {
	var req dto.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cart, err := ctrl.storefrontService.CreateCart(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, cart)
}

// GetCart 查看购物车
// @Summary 查看购物车
// @Tags Storefront
// @Param token path string true "购物车 token"
// @Success 200 {object} dto.CartView
// @Router /shop/carts/{token} [get]
func (ctrl *StorefrontController) GetCart(c *gin.Context) {
	cart, err := ctrl.storefrontService.GetCart(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cart)
}

// SetCartItem 加购或修改数量
// @Summary 加购
// @Tags Storefront
// @Accept json
// @Param token path string true "购物车 token"
// @Param request body dto.CartItemRequest true "商品"
// @Success 200 {object} dto.CartView
// @Router /shop/carts/{token}/items [put]
func (ctrl *StorefrontController) SetCartItem(c *gin.Context) {
	var req dto.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cart, err := ctrl.storefrontService.SetCartItem(c.Request.Context(), c.Param("token"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cart)
}

// RemoveCartItem 移除商品
// @Summary 移除购物车商品
// @Tags Storefront
// @Param token path string true "购物车 token"
// @Param product_id path int true "商品 ID"
// @Success 200 {object} dto.CartView
// @Router /shop/carts/{token}/items/{product_id} [delete]
func (ctrl *StorefrontController) RemoveCartItem(c *gin.Context) {
	productID, valid := pathID(c, "product_id")
	if !valid {
		return
	}
	cart, err := ctrl.storefrontService.RemoveCartItem(c.Request.Context(), c.Param("token"), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, cart)
}

// CheckoutCart 购物车下单（需顾客登录）
// @Summary 下单
// @Description 处方药需要已登记的有效处方；库存在员工确认时扣减
// @Tags Storefront
// @Accept json
// @Security BearerAuth
// @Param token path string true "购物车 token"
// @Param request body dto.CheckoutCartRequest true "配送"
// @Success 201 {object} model.OnlineOrder
// @Router /shop/carts/{token}/checkout [post]
func (ctrl *StorefrontController) CheckoutCart(c *gin.Context) {
	var req dto.CheckoutCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := ctrl.storefrontService.CheckoutCart(c.Request.Context(), c.Param("token"), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, order)
}

// MyOrders 我的订单
// @Summary 我的订单
// @Tags Storefront
// @Security BearerAuth
// @Param status query string false "状态"
// @Success 200 {object} dto.PageResult[model.OnlineOrder]
// @Router /shop/orders [get]
func (ctrl *StorefrontController) MyOrders(c *gin.Context) {
	var req dto.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.storefrontService.MyOrders(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// MyOrder 我的订单详情
// @Summary 我的订单详情
// @Tags Storefront
// @Security BearerAuth
// @Param id path int true "订单 ID"
// @Success 200 {object} model.OnlineOrder
// @Router /shop/orders/{id} [get]
func (ctrl *StorefrontController) MyOrder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	order, err := ctrl.storefrontService.MyOrder(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, order)
}

// ==================== 员工处理 ====================

// ListOrders 药房网店订单
// @Summary 网店订单列表
// @Tags Storefront
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param status query string false "状态"
// @Success 200 {object} dto.PageResult[model.OnlineOrder]
// @Router /pharmacies/{pharmacy_id}/online-orders [get]
func (ctrl *StorefrontController) ListOrders(c *gin.Context) {
	var req dto.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}
	result, err := ctrl.storefrontService.ListOrders(c.Request.Context(), middleware.GetPharmacyID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, result)
}

// GetOrder 网店订单详情
// @Summary 网店订单详情
// @Tags Storefront
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "订单 ID"
// @Success 200 {object} model.OnlineOrder
// @Router /pharmacies/{pharmacy_id}/online-orders/{id} [get]
func (ctrl *StorefrontController) GetOrder(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	order, err := ctrl.storefrontService.GetOrder(c.Request.Context(), middleware.GetPharmacyID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, order)
}

// UpdateOrderStatus 推进订单状态，confirmed 时生成销售并扣库存
// @Summary 网店订单状态
// @Tags Storefront
// @Accept json
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Param id path int true "订单 ID"
// @Param request body dto.OrderStatusRequest true "状态"
// @Success 200 {object} model.OnlineOrder
// @Router /pharmacies/{pharmacy_id}/online-orders/{id}/status [post]
func (ctrl *StorefrontController) UpdateOrderStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req dto.OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	order, err := ctrl.storefrontService.UpdateStatus(c.Request.Context(), middleware.GetPharmacyID(c), middleware.GetUserID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, order)
}

// PendingCount 待处理订单数
// @Summary 待处理网店订单数
// @Tags Storefront
// @Security BearerAuth
// @Param pharmacy_id path int true "药房 ID"
// @Success 200 {object} map[string]interface{}
// @Router /pharmacies/{pharmacy_id}/online-orders/pending-count [get]
func (ctrl *StorefrontController) PendingCount(c *gin.Context) {
	n, err := ctrl.storefrontService.PendingCount(c.Request.Context(), middleware.GetPharmacyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"pending": n})
}
