package authz_test

import (
	"testing"

	"app/internal/domain/authz"
	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		name string
		role model.Role
		op   authz.Operation
		want bool
	}{
		{"一般ユーザーは注文を作れる", model.RoleRegularUser, authz.OpCreateOrder, true},
		{"管理者も注文を作れる", model.RoleAdmin, authz.OpCreateOrder, true},
		{"ステータス遷移は管理者のみ", model.RoleAdmin, authz.OpTransitionOrder, true},
		{"一般ユーザーはステータス遷移できない", model.RoleRegularUser, authz.OpTransitionOrder, false},
		{"売上レポートは管理者のみ", model.RoleAdmin, authz.OpSalesReport, true},
		{"一般ユーザーは売上レポートを見られない", model.RoleRegularUser, authz.OpSalesReport, false},
		{"頻度レポートは一般ユーザー専用", model.RoleRegularUser, authz.OpFrequentReport, true},
		{"管理者は頻度レポートを見られない", model.RoleAdmin, authz.OpFrequentReport, false},
		{"在庫レポートは管理者のみ", model.RoleAdmin, authz.OpLowStockReport, true},
		{"商品閲覧は一般ユーザー", model.RoleRegularUser, authz.OpReadProducts, true},
		{"管理者は商品閲覧ロールを持たない", model.RoleAdmin, authz.OpReadProducts, false},
		{"商品の書き込みは管理者", model.RoleAdmin, authz.OpWriteProducts, true},
		{"一般ユーザーは商品を書き込めない", model.RoleRegularUser, authz.OpWriteProducts, false},
		{"監査ログの閲覧は管理者", model.RoleAdmin, authz.OpReadAuditLogs, true},
		{"一般ユーザーは監査ログを見られない", model.RoleRegularUser, authz.OpReadAuditLogs, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, authz.Allowed(tc.role, tc.op))
		})
	}
}

func TestAllowedUnknownInputs(t *testing.T) {
	//未知のロール・未知の操作はすべて拒否
	assert.False(t, authz.Allowed(model.Role("superuser"), authz.OpCreateOrder))
	assert.False(t, authz.Allowed(model.RoleAdmin, authz.Operation("order.unknown")))
	assert.False(t, authz.Allowed(model.Role(""), authz.OpListOrders))
}
