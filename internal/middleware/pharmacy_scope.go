package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pharmacy_erp/internal/model"
)

// Context Keys
const (
	ContextKeyPharmacyID = "pharmacy_id"
	ContextKeyMemberRole = "member_role"
)

// MembershipLookup 查询有效成员关系
type MembershipLookup interface {
	GetActiveMember(ctx context.Context, pharmacyID, userID int64) (*model.PharmacyMember, error)
}

// PharmacyScope 解析 :pharmacy_id 并校验调用者是该药房的有效成员
// superadmin 视为 owner
func PharmacyScope(lookup MembershipLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		pharmacyID, err := strconv.ParseInt(c.Param("pharmacy_id"), 10, 64)
		if err != nil || pharmacyID <= 0 {
			abort(c, http.StatusBadRequest, "无效的药房 ID")
			return
		}

		role := model.MemberOwner
		if GetUserRole(c) != model.RoleSuperAdmin {
			member, err := lookup.GetActiveMember(c.Request.Context(), pharmacyID, GetUserID(c))
			if err != nil {
				abort(c, http.StatusInternalServerError, "查询成员关系失败")
				return
			}
			if member == nil {
				abort(c, http.StatusForbidden, "不是该药房成员")
				return
			}
			role = member.Role
		}

		c.Set(ContextKeyPharmacyID, pharmacyID)
		c.Set(ContextKeyMemberRole, role)
		if info := GetAuditInfo(c.Request.Context()); info != nil {
			info.PharmacyID = pharmacyID
		}
		c.Next()
	}
}

// RequireMemberRole 药房内角色校验，需在 PharmacyScope 之后
func RequireMemberRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !model.RoleIn(GetMemberRole(c), roles...) {
			abort(c, http.StatusForbidden, "当前角色无权执行此操作")
			return
		}
		c.Next()
	}
}

// GetPharmacyID 当前药房 ID
func GetPharmacyID(c *gin.Context) int64 {
	return c.GetInt64(ContextKeyPharmacyID)
}

// GetMemberRole 当前药房内角色
func GetMemberRole(c *gin.Context) string {
	return c.GetString(ContextKeyMemberRole)
}
