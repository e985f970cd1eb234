package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTokenPair_RoundTrip(t *testing.T) {
	pair, err := GenerateTokenPair(7, "alice", model.RoleStaff)
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	claims, err := ParseToken(pair.AccessToken, TokenAccess)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ParseToken(pair.RefreshToken, TokenAccess); err != ErrTokenWrongType {
		t.Errorf("refresh as access: err = %v, want ErrTokenWrongType", err)
	}
	if _, err := ParseToken("garbage", TokenAccess); err != ErrTokenInvalid {
		t.Errorf("garbage: err = %v, want ErrTokenInvalid", err)
	}
}

func TestJWTAuth(t *testing.T) {
	pair, _ := GenerateTokenPair(1, "bob", model.RoleStaff)

	r := gin.New()
	r.GET("/me", JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	r.GET("/admin", JWTAuth(), RequireRole(model.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"bad scheme", "/me", "Basic abc", http.StatusUnauthorized},
		{"refresh token", "/me", "Bearer " + pair.RefreshToken, http.StatusUnauthorized},
		{"ok", "/me", "Bearer " + pair.AccessToken, http.StatusOK},
		{"role denied", "/admin", "Bearer " + pair.AccessToken, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

type stubMembership struct {
	members map[int64]*model.PharmacyMember
}

func (s stubMembership) GetActiveMember(_ context.Context, pharmacyID, userID int64) (*model.PharmacyMember, error) {
	m := s.members[userID]
	if m == nil || m.PharmacyID != pharmacyID {
		return nil, nil
	}
	return m, nil
}

func TestPharmacyScope(t *testing.T) {
	lookup := stubMembership{members: map[int64]*model.PharmacyMember{
		1: {PharmacyID: 10, UserID: 1, Role: model.MemberCashier, Active: true},
		2: {PharmacyID: 10, UserID: 2, Role: model.MemberManager, Active: true},
	}}

	r := gin.New()
	r.Use(JWTAuth())
	r.POST("/pharmacies/:pharmacy_id/expenses",
		PharmacyScope(lookup), RequireMemberRole(model.FinanceRoles...),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"pharmacy_id": GetPharmacyID(c)}) })

	token := func(uid int64, role string) string {
		pair, _ := GenerateTokenPair(uid, "u", role)
		return "Bearer " + pair.AccessToken
	}
	tests := []struct {
		name string
		path string
		auth string
		want int
	}{
		{"manager allowed", "/pharmacies/10/expenses", token(2, model.RoleStaff), http.StatusOK},
		{"cashier forbidden by role", "/pharmacies/10/expenses", token(1, model.RoleStaff), http.StatusForbidden},
		{"not a member", "/pharmacies/11/expenses", token(2, model.RoleStaff), http.StatusForbidden},
		{"superadmin bypass", "/pharmacies/11/expenses", token(99, model.RoleSuperAdmin), http.StatusOK},
		{"bad id", "/pharmacies/abc/expenses", token(2, model.RoleStaff), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req.Header.Set("Authorization", tt.auth)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestKeyedLimiter(t *testing.T) {
	l := NewKeyedLimiter(time.Hour, 2)
	if !l.Allow("ip") || !l.Allow("ip") {
		t.Fatal("burst of 2 should be allowed")
	}
	if l.Allow("ip") {
		t.Error("third call should be limited")
	}
	if !l.Allow("other") {
		t.Error("keys must be independent")
	}
}

func TestCooldown(t *testing.T) {
	var cd Cooldown
	if !cd.Check("k", time.Minute).Allowed {
		t.Fatal("first call should pass")
	}
	res := cd.Check("k", time.Minute)
	if res.Allowed || res.RetryAfter <= 0 {
		t.Errorf("second call = %+v", res)
	}
	cd.Reset("k")
	if !cd.Check("k", time.Minute).Allowed {
		t.Error("reset should clear cooldown")
	}
}
