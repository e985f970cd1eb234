package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey       string        // 签名密钥
	AccessTokenTTL  time.Duration // Access Token 有效期
	RefreshTokenTTL time.Duration // Refresh Token 有效期
	Issuer          string        // 签发者
}

var jwtConfig = &JWTConfig{
	SecretKey:       "pharmacy-erp-dev-secret",
	AccessTokenTTL:  2 * time.Hour,
	RefreshTokenTTL: 7 * 24 * time.Hour,
	Issuer:          "pharmacy-erp",
}

// SetJWTConfig 启动时由配置设置
func SetJWTConfig(cfg *JWTConfig) {
	if cfg != nil && cfg.SecretKey != "" {
		jwtConfig = cfg
	}
}

// Token 类型，写入 Subject
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

var (
	ErrTokenInvalid   = errors.New("token 无效或已过期")
	ErrTokenWrongType = errors.New("token 类型错误")
)

// UserClaims 用户声明
type UserClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair 登录/刷新返回的令牌
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Access Token 有效秒数
}

func signToken(userID int64, username, role, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   kind,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtConfig.SecretKey))
}

// GenerateTokenPair 生成 Access/Refresh Token 对
func GenerateTokenPair(userID int64, username, role string) (*TokenPair, error) {
	access, err := signToken(userID, username, role, TokenAccess, jwtConfig.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := signToken(userID, username, role, TokenRefresh, jwtConfig.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(jwtConfig.AccessTokenTTL.Seconds()),
	}, nil
}

// ParseToken 解析并校验 Token 类型
func ParseToken(tokenString, kind string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	}, jwt.WithIssuer(jwtConfig.Issuer))
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject != kind {
		return nil, ErrTokenWrongType
	}
	return claims, nil
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
	ContextKeyClaims   = "claims"
)

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		// SSE 客户端无法设置 Header，允许 query 传递
		if t := c.Query("access_token"); t != "" {
			return t, true
		}
		return "", false
	}
	return parts[1], true
}

func setClaims(c *gin.Context, claims *UserClaims) {
	c.Set(ContextKeyUserID, claims.UserID)
	c.Set(ContextKeyUsername, claims.Username)
	c.Set(ContextKeyRole, claims.Role)
	c.Set(ContextKeyClaims, claims)
}

// JWTAuth JWT 认证中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "未提供认证信息")
			return
		}

		claims, err := ParseToken(raw, TokenAccess)
		if err != nil {
			abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth 可选认证（网店匿名浏览）
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if claims, err := ParseToken(raw, TokenAccess); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole 系统角色校验
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role == "" {
			abort(c, http.StatusUnauthorized, "未获取到用户角色")
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "无权限访问")
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextKeyUserID)
}

// GetUsername 从 Context 获取用户名
func GetUsername(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}

// GetUserRole 从 Context 获取系统角色
func GetUserRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}
