package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pharmacy_erp/internal/config"
	"pharmacy_erp/internal/controller"
	"pharmacy_erp/internal/middleware"
	"pharmacy_erp/internal/model"
	"pharmacy_erp/internal/repository"
	"pharmacy_erp/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ==================== 测试环境 ====================

func setupEngine(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(append(model.Models(), model.PartitionedModels()...)...))

	store := repository.NewStore(db)
	stock := service.NewStockService(store)
	crm := service.NewCRMService(store, nil)
	notify := service.NewNotifyService(store, service.NewBroadcaster(), nil, nil, config.NotifyConfig{})
	limiter := middleware.NewKeyedLimiter(time.Millisecond, 100)

	ctl := &Controllers{
		User:       controller.NewUserController(service.NewUserService(store.Users, limiter)),
		Pharmacy:   controller.NewPharmacyController(service.NewPharmacyService(store)),
		HR:         controller.NewHRController(service.NewHRService(store)),
		Catalog:    controller.NewCatalogController(service.NewCatalogService(store, nil), service.NewAIService(store, nil)),
		Stock:      controller.NewStockController(stock, service.NewPurchaseService(store)),
		Sale:       controller.NewSaleController(service.NewSaleService(store)),
		Finance:    controller.NewFinanceController(service.NewFinanceService(store, nil)),
		CRM:        controller.NewCRMController(crm),
		Message:    controller.NewMessageController(service.NewMessageService(store), notify.Broadcaster()),
		Storefront: controller.NewStorefrontController(service.NewStorefrontService(store)),
		Report:     controller.NewReportController(service.NewDashboardService(store, 30), service.NewExportService(store, stock)),
	}
	return SetupRouter(ctl, Options{
		Log:          zap.NewNop(),
		Members:      store.Members,
		AuthLimiter:  limiter,
		OrderLimiter: limiter,
	})
}

func perform(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out), w.Body.String())
	}
}

func register(t *testing.T, r http.Handler, username string) string {
	t.Helper()
	w := perform(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret-pass-1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

type fixture struct {
	engine     *gin.Engine
	token      string
	pharmacyID int64
	productID  int64
}

// 注册 owner，创建药房与已入库商品
func setupPharmacy(t *testing.T) *fixture {
	t.Helper()
	r := setupEngine(t)
	token := register(t, r, "alice")

	w := perform(r, http.MethodPost, "/api/pharmacies", token, gin.H{
		"name":               "Pharmacie Centrale",
		"license_number":     "LIC-001",
		"storefront_enabled": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ph struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &ph)

	base := fmt.Sprintf("/api/pharmacies/%d", ph.ID)
	w = perform(r, http.MethodPost, base+"/products", token, gin.H{
		"sku":            "PARA-500",
		"name":           "Paracétamol 500mg",
		"sale_price":     500,
		"purchase_price": 200,
		"published":      true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p struct {
		ID int64 `json:"id"`
	}
	decode(t, w, &p)

	expiry := time.Now().AddDate(1, 0, 0)
	w = perform(r, http.MethodPost, base+"/stock/receive", token, gin.H{
		"product_id":  p.ID,
		"lot_number":  "LOT-A",
		"quantity":    5,
		"unit_cost":   200,
		"expiry_date": expiry,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return &fixture{engine: r, token: token, pharmacyID: ph.ID, productID: p.ID}
}

// ==================== 测试用例 ====================

func TestHealthz(t *testing.T) {
	r := setupEngine(t)
	w := perform(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_RequiresToken(t *testing.T) {
	r := setupEngine(t)
	w := perform(r, http.MethodGet, "/api/pharmacies/mine", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/api/pharmacies/mine", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_LoginAfterRegister(t *testing.T) {
	r := setupEngine(t)
	register(t, r, "carol")

	w := perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"login": "carol", "password": "secret-pass-1"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = perform(r, http.MethodPost, "/api/auth/login", "", gin.H{"login": "carol", "password": "wrong-pass-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckout_Flow(t *testing.T) {
	f := setupPharmacy(t)
	base := fmt.Sprintf("/api/pharmacies/%d", f.pharmacyID)

	w := perform(f.engine, http.MethodPost, base+"/sales", f.token, gin.H{
		"lines":    []gin.H{{"product_id": f.productID, "quantity": 2}},
		"payments": []gin.H{{"method": "cash", "amount": 1000}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var sale struct {
		ID     int64  `json:"id"`
		Number string `json:"number"`
		Status string `json:"status"`
	}
	decode(t, w, &sale)
	assert.NotEmpty(t, sale.Number)
	assert.Equal(t, model.SaleCompleted, sale.Status)

	// 剩余 3，超量销售被拒
	w = perform(f.engine, http.MethodPost, base+"/sales", f.token, gin.H{
		"lines":    []gin.H{{"product_id": f.productID, "quantity": 10}},
		"payments": []gin.H{{"method": "cash", "amount": 5000}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = perform(f.engine, http.MethodGet, fmt.Sprintf("%s/sales/%d", base, sale.ID), f.token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(f.engine, http.MethodGet, base+"/sales/abc", f.token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPharmacyScope_NonMemberForbidden(t *testing.T) {
	f := setupPharmacy(t)
	other := register(t, f.engine, "bob")

	w := perform(f.engine, http.MethodGet, fmt.Sprintf("/api/pharmacies/%d/dashboard", f.pharmacyID), other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(f.engine, http.MethodGet, fmt.Sprintf("/api/pharmacies/%d/dashboard", f.pharmacyID), f.token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestExport_StockValuation(t *testing.T) {
	f := setupPharmacy(t)

	w := perform(f.engine, http.MethodGet, fmt.Sprintf("/api/pharmacies/%d/exports/stock-valuation", f.pharmacyID), f.token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, service.ContentTypeXLSX, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())

	// 冷却期内重复导出
	w = perform(f.engine, http.MethodGet, fmt.Sprintf("/api/pharmacies/%d/exports/stock-valuation", f.pharmacyID), f.token, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestStorefront_Cart(t *testing.T) {
	f := setupPharmacy(t)

	w := perform(f.engine, http.MethodPost, "/api/shop/carts", "", gin.H{"pharmacy_id": f.pharmacyID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cart struct {
		Token     string `json:"token"`
		ItemCount int    `json:"item_count"`
		Total     int64  `json:"total"`
	}
	decode(t, w, &cart)
	require.NotEmpty(t, cart.Token)

	w = perform(f.engine, http.MethodPut, "/api/shop/carts/"+cart.Token+"/items", "", gin.H{
		"product_id": f.productID,
		"quantity":   2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &cart)
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, int64(1000), cart.Total)

	// 下单需登录
	w = perform(f.engine, http.MethodPost, "/api/shop/carts/"+cart.Token+"/checkout", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(f.engine, http.MethodGet, "/api/shop/carts/unknown-token", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
