package authz

import "app/internal/domain/model"

// ロール判定を散らばらせないための操作一覧。
// ロールを増やすときはここの許可テーブルだけ触る。
type Operation string

const (
	OpCreateOrder     Operation = "order.create"
	OpListOrders      Operation = "order.list"
	OpGetOrder        Operation = "order.get"
	OpDeleteOrder     Operation = "order.delete"
	OpTransitionOrder Operation = "order.transition"
	OpModifyOrderItem Operation = "order.modify_item"

	OpSalesReport    Operation = "report.sales"
	OpFrequentReport Operation = "report.frequent"
	OpLowStockReport Operation = "report.low_stock"

	OpReadProducts  Operation = "product.read"
	OpWriteProducts Operation = "product.write"

	OpReadAuditLogs Operation = "audit.read"
)

// 許可テーブル。操作 → 許可ロール。
var permissions = map[Operation][]model.Role{
	OpCreateOrder:     {model.RoleAdmin, model.RoleRegularUser},
	OpListOrders:      {model.RoleAdmin, model.RoleRegularUser},
	OpGetOrder:        {model.RoleAdmin, model.RoleRegularUser},
	OpDeleteOrder:     {model.RoleAdmin, model.RoleRegularUser},
	OpModifyOrderItem: {model.RoleAdmin, model.RoleRegularUser},

	//ステータス遷移は管理者のみ
	OpTransitionOrder: {model.RoleAdmin},

	OpSalesReport:    {model.RoleAdmin},
	OpLowStockReport: {model.RoleAdmin},
	//頻度レポートは一般ユーザー専用
	OpFrequentReport: {model.RoleRegularUser},

	//商品の閲覧は一般ユーザー、変更は管理者
	OpReadProducts:  {model.RoleRegularUser},
	OpWriteProducts: {model.RoleAdmin},

	//監査ログの閲覧は管理者のみ
	OpReadAuditLogs: {model.RoleAdmin},
}

// roleがopを実行してよいか。
func Allowed(role model.Role, op Operation) bool {
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}
