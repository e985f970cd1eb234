package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pharmacy_erp/internal/config"
	"pharmacy_erp/internal/controller"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/internal/router"
	"pharmacy_erp/internal/service"
	"pharmacy_erp/internal/task"
	"pharmacy_erp/pkg/database"
	"pharmacy_erp/pkg/logger"
	"pharmacy_erp/pkg/telemetry"
)

// @title 药房连锁 ERP API
// @version 1.0
// @description 多门店药房管理系统 API
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 配置与日志
	cfg, err := config.Load()
	if err != nil {
		panic("配置加载失败: " + err.Error())
	}
	log := logger.Init(cfg.Server.Mode, cfg.Server.LogLevel)
	defer logger.Sync()
	gin.SetMode(cfg.Server.Mode)

	ctx := context.Background()
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Options{
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		log.Warn("链路追踪初始化失败", zap.Error(err))
	}

	// 2. 初始化数据库
	db, partitions := initDatabase(ctx, cfg, log)

	// 3. 初始化依赖
	deps := initDependencies(ctx, cfg, db, log)

	// 4. 启动定时任务
	tasks := initTasks(cfg, deps, partitions, log)
	if tasks != nil {
		deps.Controllers.Task = controller.NewTaskController(tasks)
	}

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers, router.Options{
		Log:          log,
		AllowOrigins: cfg.Server.AllowOrigins,
		Members:      deps.Store.Members,
		UploadDir:    uploadDir(cfg.Storage),
		AuthLimiter:  deps.AuthLimiter,
	})

	// 6. 启动服务
	startServer(cfg, r, log, func(ctx context.Context) {
		if tasks != nil {
			tasks.Stop(ctx)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("链路追踪关闭失败", zap.Error(err))
		}
	})
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Store       *repository.Store
	Services    *Services
	Controllers *router.Controllers
	AuthLimiter *middleware.KeyedLimiter
}

// Services 服务集合
type Services struct {
	User       *service.UserService
	Pharmacy   *service.PharmacyService
	HR         *service.HRService
	Catalog    *service.CatalogService
	Stock      *service.StockService
	Purchase   *service.PurchaseService
	Sale       *service.SaleService
	Finance    *service.FinanceService
	CRM        *service.CRMService
	Message    *service.MessageService
	Notify     *service.NotifyService
	Storefront *service.StorefrontService
	Dashboard  *service.DashboardService
	Export     *service.ExportService
	Storage    *service.StorageService
	AI         *service.AIService
}

// ==================== 初始化函数 ====================

// initDatabase 连接、审计回调、建表与分区
func initDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, *database.PartitionManager) {
	db, err := database.Open(database.Options{
		DSN:          cfg.Database.DSN,
		MaxIdleConns: cfg.Database.MaxIdle,
		MaxOpenConns: cfg.Database.MaxOpen,
		LogLevel:     cfg.Database.LogLevel,
	}, log)
	if err != nil {
		log.Fatal("数据库初始化失败", zap.Error(err))
	}
	if err := middleware.RegisterAuditCallbacks(db); err != nil {
		log.Fatal("审计回调注册失败", zap.Error(err))
	}

	partitions, err := database.Migrate(ctx, db, log, database.MigrateOptions{
		Models:            model.Models(),
		PartitionedModels: model.PartitionedModels(),
		FutureMonths:      cfg.Database.FutureMonths,
	})
	if err != nil {
		log.Fatal("数据库迁移失败", zap.Error(err))
	}
	return db, partitions
}

// initDependencies 初始化所有依赖
func initDependencies(ctx context.Context, cfg *config.Config, db *gorm.DB, log *zap.Logger) *Dependencies {
	middleware.SetJWTConfig(&middleware.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTTL,
		Issuer:          cfg.JWT.Issuer,
	})
	model.SetLoyaltyPolicy(model.LoyaltyPolicy{
		CentsPerPoint:   cfg.Loyalty.CentsPerPoint,
		PointValueCents: cfg.Loyalty.PointValueCents,
		SilverThreshold: cfg.Loyalty.SilverThreshold,
		GoldThreshold:   cfg.Loyalty.GoldThreshold,
	})

	// -------- Repo 层 --------
	store := repository.NewStore(db)

	// -------- 存储 & AI & 推送 --------
	storage, err := service.NewStorageService(cfg.Storage)
	if err != nil {
		log.Warn("存储服务初始化失败，上传功能不可用", zap.Error(err))
	}

	var gen service.TextGenerator
	if g := service.NewGeminiGenerator(cfg.AI); g != nil {
		gen = g
	}

	var push service.PushSender
	if cfg.Notify.FirebaseCredentials != "" {
		fp, err := service.NewFirebasePush(ctx, cfg.Notify.FirebaseCredentials)
		if err != nil {
			log.Warn("Firebase 推送初始化失败", zap.Error(err))
		} else {
			push = fp
		}
	}

	// -------- 业务服务 --------
	authLimiter := middleware.NewKeyedLimiter(6*time.Second, 10)
	stock := service.NewStockService(store)
	svc := &Services{
		User:       service.NewUserService(store.Users, authLimiter),
		Pharmacy:   service.NewPharmacyService(store),
		HR:         service.NewHRService(store),
		Catalog:    service.NewCatalogService(store, storage),
		Stock:      stock,
		Purchase:   service.NewPurchaseService(store),
		Sale:       service.NewSaleService(store),
		Finance:    service.NewFinanceService(store, storage),
		CRM:        service.NewCRMService(store, storage),
		Message:    service.NewMessageService(store),
		Notify:     service.NewNotifyService(store, service.NewBroadcaster(), push, service.NewGatewaySender(cfg.Notify), cfg.Notify),
		Storefront: service.NewStorefrontService(store),
		Dashboard:  service.NewDashboardService(store, cfg.Tasks.ExpiryDays),
		Export:     service.NewExportService(store, stock),
		Storage:    storage,
		AI:         service.NewAIService(store, gen),
	}

	return &Dependencies{
		DB:          db,
		Store:       store,
		Services:    svc,
		Controllers: initControllers(svc),
		AuthLimiter: authLimiter,
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		User:       controller.NewUserController(svc.User),
		Pharmacy:   controller.NewPharmacyController(svc.Pharmacy),
		HR:         controller.NewHRController(svc.HR),
		Catalog:    controller.NewCatalogController(svc.Catalog, svc.AI),
		Stock:      controller.NewStockController(svc.Stock, svc.Purchase),
		Sale:       controller.NewSaleController(svc.Sale),
		Finance:    controller.NewFinanceController(svc.Finance),
		CRM:        controller.NewCRMController(svc.CRM),
		Message:    controller.NewMessageController(svc.Message, svc.Notify.Broadcaster()),
		Storefront: controller.NewStorefrontController(svc.Storefront),
		Report:     controller.NewReportController(svc.Dashboard, svc.Export),
	}
}

func uploadDir(cfg config.StorageConfig) string {
	if cfg.Provider == "local" {
		return cfg.BasePath
	}
	return ""
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(cfg *config.Config, deps *Dependencies, partitions *database.PartitionManager, log *zap.Logger) *task.TaskManager {
	if !cfg.Tasks.Enabled {
		log.Info("定时任务已禁用")
		return nil
	}

	svc := deps.Services
	taskDeps := task.Deps{
		Stock:         svc.Stock,
		Prescriptions: svc.CRM,
		Reminders:     svc.CRM,
		Notify:        svc.Notify,
		Carts:         svc.Storefront,
		FutureMonths:  cfg.Database.FutureMonths,
	}
	// 非 PostgreSQL 时 partitions 为 nil
	if partitions != nil {
		taskDeps.Partitions = partitions
	}

	tm, err := task.Setup(log, cfg.Tasks, taskDeps)
	if err != nil {
		log.Fatal("定时任务注册失败", zap.Error(err))
	}
	tm.Start()
	return tm
}

// ==================== 服务启动 ====================

// startServer 启动服务并在收到退出信号后优雅关闭
func startServer(cfg *config.Config, r *gin.Engine, log *zap.Logger, cleanup func(context.Context)) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           telemetry.WrapHandler(r, "pharmacy-erp"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
	}
	cleanup(ctx)

	log.Info("服务已退出")
}
