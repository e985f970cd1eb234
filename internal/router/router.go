package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "pharmacy_erp/docs"
	"pharmacy_erp/internal/controller"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/model"
)

// Controllers 控制器集合
type Controllers struct {
	User       *controller.UserController
	Pharmacy   *controller.PharmacyController
	HR         *controller.HRController
	Catalog    *controller.CatalogController
	Stock      *controller.StockController
	Sale       *controller.SaleController
	Finance    *controller.FinanceController
	CRM        *controller.CRMController
	Message    *controller.MessageController
	Storefront *controller.StorefrontController
	Report     *controller.ReportController

	// 定时任务禁用时为 nil
	Task *controller.TaskController
}

// Options 路由级依赖
type Options struct {
	Log          *zap.Logger
	AllowOrigins []string
	Members      middleware.MembershipLookup
	// UploadDir 非空时以 /uploads 提供本地存储文件
	UploadDir    string
	AuthLimiter  *middleware.KeyedLimiter
	OrderLimiter *middleware.KeyedLimiter
	Cooldown     *middleware.Cooldown
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctl *Controllers, opts Options) *gin.Engine {
	if opts.AuthLimiter == nil {
		opts.AuthLimiter = middleware.NewKeyedLimiter(6*time.Second, 10)
	}
	if opts.OrderLimiter == nil {
		opts.OrderLimiter = middleware.NewKeyedLimiter(10*time.Second, 5)
	}
	if opts.Cooldown == nil {
		opts.Cooldown = &middleware.Cooldown{}
	}

	r := gin.New()
	r.Use(middleware.Recovery(opts.Log))
	r.Use(middleware.RequestLogger(opts.Log))
	r.Use(cors.New(corsConfig(opts.AllowOrigins)))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/notifications/stream"})))

	// Swagger: http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	api := r.Group("/api")
	api.Use(middleware.AuditContext())

	registerAuthRoutes(api, ctl, opts)
	registerShopRoutes(api, ctl, opts)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth())
	registerAccountRoutes(authed, ctl)
	registerNotificationRoutes(authed, ctl)

	// 药房范围：成员校验 + 角色校验
	ph := authed.Group("/pharmacies/:pharmacy_id")
	ph.Use(middleware.PharmacyScope(opts.Members))
	registerPharmacyRoutes(ph, ctl, opts)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.ExposeHeaders = []string{"Content-Disposition"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}

// ==================== 公开 / 认证 ====================

func registerAuthRoutes(api *gin.RouterGroup, ctl *Controllers, opts Options) {
	auth := api.Group("/auth")
	{
		limited := middleware.RateLimitByIP(opts.AuthLimiter)
		auth.POST("/register", limited, ctl.User.Register)
		auth.POST("/login", limited, ctl.User.Login)
		auth.POST("/refresh", ctl.User.RefreshToken)

		me := auth.Group("", middleware.JWTAuth())
		me.GET("/profile", ctl.User.GetProfile)
		me.PUT("/profile", ctl.User.UpdateProfile)
		me.PUT("/password", ctl.User.ChangePassword)
		me.PUT("/device-token", ctl.User.UpdateDeviceToken)
	}
}

// registerShopRoutes 网店：目录与购物车公开，下单与订单查询需登录
func registerShopRoutes(api *gin.RouterGroup, ctl *Controllers, opts Options) {
	shop := api.Group("/shop")
	{
		shop.POST("/register", middleware.RateLimitByIP(opts.AuthLimiter), ctl.User.RegisterCustomer)

		shop.GET("/pharmacies", ctl.Storefront.ListPharmacies)
		shop.GET("/pharmacies/:pharmacy_id/products", ctl.Storefront.ListProducts)
		shop.GET("/pharmacies/:pharmacy_id/products/:id", ctl.Storefront.GetProduct)

		carts := shop.Group("/carts")
		carts.POST("", middleware.RateLimitByIP(opts.OrderLimiter), ctl.Storefront.CreateCart)
		carts.GET("/:token", ctl.Storefront.GetCart)
		carts.PUT("/:token/items", ctl.Storefront.SetCartItem)
		carts.DELETE("/:token/items/:product_id", ctl.Storefront.RemoveCartItem)
		carts.POST("/:token/checkout",
			middleware.JWTAuth(),
			middleware.RateLimitByIP(opts.OrderLimiter),
			ctl.Storefront.CheckoutCart,
		)

		orders := shop.Group("/orders", middleware.JWTAuth())
		orders.GET("", ctl.Storefront.MyOrders)
		orders.GET("/:id", ctl.Storefront.MyOrder)
	}
}

// ==================== 账户 ====================

func registerAccountRoutes(authed *gin.RouterGroup, ctl *Controllers) {
	users := authed.Group("/users", middleware.RequireRole(model.RoleSuperAdmin))
	{
		users.POST("", ctl.User.CreateUser)
		users.GET("", ctl.User.ListUsers)
		users.GET("/:id", ctl.User.GetUser)
		users.PUT("/:id", ctl.User.UpdateUser)
		users.PUT("/:id/password", ctl.User.ResetPassword)
		users.DELETE("/:id", ctl.User.DeleteUser)
	}

	if ctl.Task != nil {
		tasks := authed.Group("/tasks", middleware.RequireRole(model.RoleSuperAdmin))
		tasks.GET("", ctl.Task.ListTasks)
		tasks.POST("/:name/run", ctl.Task.RunTask)
	}

	staff := middleware.RequireRole(model.RoleSuperAdmin, model.RoleStaff)
	authed.POST("/pharmacies", staff, ctl.Pharmacy.Create)
	authed.GET("/pharmacies", middleware.RequireRole(model.RoleSuperAdmin), ctl.Pharmacy.List)
	authed.GET("/pharmacies/mine", staff, ctl.Pharmacy.ListMine)
}

func registerNotificationRoutes(authed *gin.RouterGroup, ctl *Controllers) {
	n := authed.Group("/notifications")
	{
		n.GET("", ctl.Message.ListNotifications)
		n.GET("/unread-count", ctl.Message.UnreadCount)
		n.POST("/read", ctl.Message.MarkRead)
		n.GET("/stream", ctl.Message.Stream)
	}
}

// ==================== 药房范围 ====================

func registerPharmacyRoutes(ph *gin.RouterGroup, ctl *Controllers, opts Options) {
	managers := middleware.RequireMemberRole(model.ManagerRoles...)
	stockRoles := middleware.RequireMemberRole(model.StockRoles...)
	salesRoles := middleware.RequireMemberRole(model.SalesRoles...)
	clinical := middleware.RequireMemberRole(model.ClinicalRoles...)
	finance := middleware.RequireMemberRole(model.FinanceRoles...)

	// 药房与成员
	ph.GET("", ctl.Pharmacy.Get)
	ph.PUT("", managers, ctl.Pharmacy.Update)
	ph.DELETE("", middleware.RequireMemberRole(model.MemberOwner), ctl.Pharmacy.Delete)
	ph.GET("/members", ctl.Pharmacy.ListMembers)
	ph.POST("/members", managers, ctl.Pharmacy.AddMember)
	ph.PUT("/members/:user_id", managers, ctl.Pharmacy.UpdateMember)
	ph.DELETE("/members/:user_id", managers, ctl.Pharmacy.RemoveMember)

	// HR：考勤与请假对所有成员开放，其余仅管理者
	ph.POST("/attendance/clock-in", ctl.HR.ClockIn)
	ph.POST("/attendance/clock-out", ctl.HR.ClockOut)
	ph.GET("/attendance", ctl.HR.ListAttendance)
	ph.POST("/leaves", ctl.HR.CreateLeave)
	ph.GET("/leaves", ctl.HR.ListLeaves)
	ph.POST("/leaves/:id/cancel", ctl.HR.CancelLeave)
	ph.POST("/leaves/:id/review", managers, ctl.HR.ReviewLeave)
	hr := ph.Group("", managers)
	{
		hr.POST("/employees", ctl.HR.CreateEmployee)
		hr.GET("/employees", ctl.HR.ListEmployees)
		hr.GET("/employees/:id", ctl.HR.GetEmployee)
		hr.PUT("/employees/:id", ctl.HR.UpdateEmployee)
		hr.DELETE("/employees/:id", ctl.HR.DeleteEmployee)
		hr.POST("/payslips/generate", ctl.HR.GeneratePayslips)
		hr.GET("/payslips", ctl.HR.ListPayslips)
		hr.GET("/payslips/:id", ctl.HR.GetPayslip)
		hr.PUT("/payslips/:id", ctl.HR.UpdatePayslip)
		hr.POST("/payslips/:id/validate", ctl.HR.ValidatePayslip)
	}

	// 目录：查询对所有成员开放
	ph.GET("/categories", ctl.Catalog.ListCategories)
	ph.GET("/products", ctl.Catalog.ListProducts)
	ph.GET("/products/barcode/:barcode", ctl.Catalog.GetProductByBarcode)
	ph.GET("/products/:id", ctl.Catalog.GetProduct)
	ph.GET("/suppliers", ctl.Catalog.ListSuppliers)
	ph.GET("/suppliers/:id", ctl.Catalog.GetSupplier)
	catalog := ph.Group("", stockRoles)
	{
		catalog.POST("/categories", ctl.Catalog.CreateCategory)
		catalog.PUT("/categories/:id", ctl.Catalog.UpdateCategory)
		catalog.DELETE("/categories/:id", ctl.Catalog.DeleteCategory)
		catalog.POST("/products", ctl.Catalog.CreateProduct)
		catalog.PUT("/products/:id", ctl.Catalog.UpdateProduct)
		catalog.DELETE("/products/:id", ctl.Catalog.DeleteProduct)
		catalog.POST("/products/:id/image", ctl.Catalog.UploadProductImage)
		catalog.POST("/products/:id/image/import", ctl.Catalog.ImportProductImage)
		catalog.POST("/suppliers", ctl.Catalog.CreateSupplier)
		catalog.PUT("/suppliers/:id", ctl.Catalog.UpdateSupplier)
		catalog.DELETE("/suppliers/:id", ctl.Catalog.DeleteSupplier)
	}
	ph.POST("/products/:id/ai-description", managers,
		middleware.CooldownPerPharmacy(opts.Cooldown, "ai", 5*time.Second),
		ctl.Catalog.GenerateDescription,
	)
	ph.GET("/ai/usage", managers, ctl.Catalog.AIUsage)

	// 库存与采购
	stock := ph.Group("", stockRoles)
	{
		stock.POST("/stock/receive", ctl.Stock.Receive)
		stock.POST("/batches/:id/adjust", ctl.Stock.Adjust)
		stock.POST("/stock/expire", ctl.Stock.ExpireBatches)
		stock.GET("/stock/movements", ctl.Stock.ListMovements)
		stock.GET("/stock/valuation", ctl.Stock.Valuation)

		stock.POST("/purchase-orders", ctl.Stock.CreatePurchaseOrder)
		stock.GET("/purchase-orders", ctl.Stock.ListPurchaseOrders)
		stock.GET("/purchase-orders/:id", ctl.Stock.GetPurchaseOrder)
		stock.PUT("/purchase-orders/:id", ctl.Stock.UpdatePurchaseOrder)
		stock.POST("/purchase-orders/:id/send", ctl.Stock.SendPurchaseOrder)
		stock.POST("/purchase-orders/:id/cancel", ctl.Stock.CancelPurchaseOrder)
		stock.POST("/purchase-orders/:id/receive", ctl.Stock.ReceivePurchaseOrder)
	}
	ph.GET("/batches", ctl.Stock.ListBatches)
	ph.GET("/batches/:id", ctl.Stock.GetBatch)
	ph.GET("/stock/expiring", ctl.Stock.Expiring)
	ph.GET("/stock/low", ctl.Stock.LowStock)

	// 销售
	sales := ph.Group("/sales", salesRoles)
	{
		sales.POST("", ctl.Sale.Checkout)
		sales.GET("", ctl.Sale.List)
		sales.GET("/summary/daily", ctl.Sale.DailySummary)
		sales.GET("/summary/monthly", ctl.Sale.MonthlySummary)
		sales.GET("/top-products", ctl.Sale.TopProducts)
		sales.GET("/:id", ctl.Sale.Get)
		sales.POST("/:id/cancel", managers, ctl.Sale.Cancel)
	}

	// 财务
	inv := ph.Group("/invoices", salesRoles)
	{
		inv.POST("/from-sale", ctl.Finance.CreateFromSale)
		inv.GET("", ctl.Finance.ListInvoices)
		inv.GET("/:id", ctl.Finance.GetInvoice)
		inv.POST("", finance, ctl.Finance.CreateInvoice)
		inv.PUT("/:id", finance, ctl.Finance.UpdateInvoice)
		inv.POST("/:id/issue", finance, ctl.Finance.IssueInvoice)
		inv.POST("/:id/cancel", finance, ctl.Finance.CancelInvoice)
		inv.POST("/:id/payments", finance, ctl.Finance.AddPayment)
	}
	exp := ph.Group("/expenses", finance)
	{
		exp.POST("", ctl.Finance.CreateExpense)
		exp.GET("", ctl.Finance.ListExpenses)
		exp.GET("/:id", ctl.Finance.GetExpense)
		exp.PUT("/:id", ctl.Finance.UpdateExpense)
		exp.DELETE("/:id", ctl.Finance.DeleteExpense)
		exp.POST("/:id/receipt", ctl.Finance.UploadExpenseReceipt)
	}
	ph.GET("/finance/summary", finance, ctl.Finance.Summary)

	// CRM：顾客查询对收银开放，病历与处方限临床角色
	ph.GET("/customers", salesRoles, ctl.CRM.ListCustomers)
	ph.POST("/customers", salesRoles, ctl.CRM.CreateCustomer)
	ph.GET("/customers/:id", salesRoles, ctl.CRM.GetCustomer)
	ph.PUT("/customers/:id", salesRoles, ctl.CRM.UpdateCustomer)
	ph.DELETE("/customers/:id", managers, ctl.CRM.DeleteCustomer)
	ph.GET("/customers/:id/loyalty", salesRoles, ctl.CRM.GetLoyalty)
	ph.GET("/customers/:id/loyalty/transactions", salesRoles, ctl.CRM.ListLoyaltyTransactions)
	ph.POST("/customers/:id/loyalty/adjust", managers, ctl.CRM.AdjustLoyalty)
	crm := ph.Group("", clinical)
	{
		crm.GET("/customers/:id/history", ctl.CRM.CustomerHistory)
		crm.POST("/customers/:id/notes", ctl.CRM.AddNote)
		crm.GET("/customers/:id/notes", ctl.CRM.ListNotes)

		crm.POST("/prescriptions", ctl.CRM.CreatePrescription)
		crm.GET("/prescriptions", ctl.CRM.ListPrescriptions)
		crm.GET("/prescriptions/:id", ctl.CRM.GetPrescription)
		crm.PUT("/prescriptions/:id", ctl.CRM.UpdatePrescription)
		crm.POST("/prescriptions/:id/scan", ctl.CRM.UploadPrescriptionScan)

		crm.POST("/appointments", ctl.CRM.CreateAppointment)
		crm.GET("/appointments", ctl.CRM.ListAppointments)
		crm.GET("/appointments/:id", ctl.CRM.GetAppointment)
		crm.PUT("/appointments/:id", ctl.CRM.UpdateAppointment)
		crm.POST("/appointments/:id/status", ctl.CRM.SetAppointmentStatus)
	}

	// 内部会话
	conv := ph.Group("/conversations")
	{
		conv.POST("", ctl.Message.CreateConversation)
		conv.GET("", ctl.Message.ListConversations)
		conv.GET("/:id", ctl.Message.GetConversation)
		conv.POST("/:id/participants", ctl.Message.AddParticipants)
		conv.POST("/:id/messages", ctl.Message.PostMessage)
		conv.GET("/:id/messages", ctl.Message.ListMessages)
		conv.POST("/:id/read", ctl.Message.MarkConversationRead)
	}

	// 网店订单
	orders := ph.Group("/online-orders", salesRoles)
	{
		orders.GET("", ctl.Storefront.ListOrders)
		orders.GET("/pending-count", ctl.Storefront.PendingCount)
		orders.GET("/:id", ctl.Storefront.GetOrder)
		orders.POST("/:id/status", ctl.Storefront.UpdateOrderStatus)
	}

	// 报表
	ph.GET("/dashboard", ctl.Report.Dashboard)
	ph.GET("/activity", managers, ctl.Report.ListActivity)
	exports := ph.Group("/exports", finance)
	{
		exports.GET("/sales", middleware.CooldownPerPharmacy(opts.Cooldown, "export:sales", 10*time.Second), ctl.Report.ExportSales)
		exports.GET("/invoices", middleware.CooldownPerPharmacy(opts.Cooldown, "export:invoices", 10*time.Second), ctl.Report.ExportInvoices)
		exports.GET("/stock-valuation", middleware.CooldownPerPharmacy(opts.Cooldown, "export:valuation", 10*time.Second), ctl.Report.ExportValuation)
	}
}
