package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/authz"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// 認証済みの呼び出し元。middlewareがJWTから組み立てる。
type Principal struct {
	UserID int64
	Role   model.Role
}

var (
	//数量が0以下
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	//商品IDが解決できない
	ErrUnknownProduct = errors.New("unknown product")
)

type OrderItemInput struct {
	ProductID        int64 `json:"product_id"`
	QuantityRequired int64 `json:"quantity_required"`
}

// 明細1件を検証して、合計金額を確定した明細を返す約束。
// 実装はvalidatorパッケージ。
type OrderItemValidator interface {
	Validate(ctx context.Context, products repo.ProductRepository, in OrderItemInput) (model.OrderItem, error)
}

// 注文番号の採番
type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	validator OrderItemValidator
	idGen     IDGenerator
	clock     Clock
}

func NewOrderUsecase(tx repo.TransactionManager, validator OrderItemValidator, idGen IDGenerator, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, validator: validator, idGen: idGen, clock: clock}
}

type CreateOrderInput struct {
	Items []OrderItemInput
}

type ListOrdersInput struct {
	Page    int
	Limit   int
	Status  string
	OwnerID *int64 //管理者のみ有効なフィルタ
}

type OrderItemOutput struct {
	ID               int64           `json:"id"`
	ProductID        int64           `json:"product_id"`
	QuantityRequired int64           `json:"quantity_required"`
	TotalPrice       decimal.Decimal `json:"total_price"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	Number    string            `json:"number"`
	OwnerID   int64             `json:"owner_id"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Items     []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 閲覧スコープ。管理者は全注文、一般ユーザーは自分の注文だけ。
func canSeeOrder(p Principal, o model.Order) bool {
	return p.Role == model.RoleAdmin || o.OwnerID == p.UserID
}

// 明細検証エラーをクライアント向けに変換
func itemErrorToHTTP(err error) error {
	if errors.Is(err, ErrInvalidQuantity) {
		return NewHTTPError(http.StatusBadRequest, "quantity_required must be greater than zero")
	}
	if errors.Is(err, ErrUnknownProduct) {
		return NewHTTPError(http.StatusBadRequest, "unknown product")
	}
	return NewHTTPError(http.StatusInternalServerError, "db error")
}

// 注文と明細をまとめて1トランザクションで作成する。
// どれか1件でも検証に落ちたら全部ロールバック（部分作成はしない）。
func (u *OrderUsecase) CreateOrder(ctx context.Context, p Principal, in CreateOrderInput) (OrderOutput, error) {
	if p.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpCreateOrder) {
		return OrderOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "items must not be empty")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//全明細を先に検証する。価格はこの時点の商品価格で確定
		items := make([]model.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			validated, err := u.validator.Validate(ctx, r.Products(), it)
			if err != nil {
				return itemErrorToHTTP(err)
			}
			items = append(items, validated)
		}

		now := u.clock.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			Number:    u.idGen.NewID(),
			OwnerID:   p.UserID,
			Status:    model.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//採番済みの明細を読み直してレスポンスに使う
		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		persisted, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(created, persisted)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListOrders(ctx context.Context, p Principal, in ListOrdersInput) (OrderListOutput, error) {
	if p.UserID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	switch in.Status {
	case "", string(model.OrderStatusPending), string(model.OrderStatusCompleted), string(model.OrderStatusCancelled):
	default:
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	f := repo.OrderListFilter{
		Page:    in.Page,
		Limit:   in.Limit,
		Status:  in.Status,
		OwnerID: in.OwnerID,
	}
	//一般ユーザーは常に自分の注文だけ
	if p.Role != model.RoleAdmin {
		f.OwnerID = &p.UserID
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().List(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}

		out = OrderListOutput{Items: outs, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})

	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, p Principal, orderID int64) (OrderOutput, error) {
	if p.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//スコープ外は「存在しない扱い」にする（存在を漏らさない）
		if !canSeeOrder(p, o) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 注文削除。明細も一緒に消す（単独の明細削除APIは無い）。
func (u *OrderUsecase) DeleteOrder(ctx context.Context, p Principal, orderID int64) error {
	if p.UserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !canSeeOrder(p, o) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

// 明細の差し替え。商品と数量を受け直して、今の商品価格で合計を再計算する。
func (u *OrderUsecase) ModifyItem(ctx context.Context, p Principal, orderID int64, itemID int64, in OrderItemInput) (OrderItemOutput, error) {
	if p.UserID <= 0 {
		return OrderItemOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 || itemID <= 0 {
		return OrderItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderItemOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !canSeeOrder(p, o) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		item, err := r.OrderItems().FindByID(ctx, itemID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//指定した注文の明細でなければ存在しない扱い
		if item.OrderID != orderID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		validated, err := u.validator.Validate(ctx, r.Products(), in)
		if err != nil {
			return itemErrorToHTTP(err)
		}

		item.ProductID = validated.ProductID
		item.QuantityRequired = validated.QuantityRequired
		item.TotalPrice = validated.TotalPrice

		if err := r.OrderItems().Update(ctx, item); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderItemOutput(item)
		return nil
	})

	if err != nil {
		return OrderItemOutput{}, err
	}
	return out, nil
}

func toOrderItemOutput(it model.OrderItem) OrderItemOutput {
	return OrderItemOutput{
		ID:               it.ID,
		ProductID:        it.ProductID,
		QuantityRequired: it.QuantityRequired,
		TotalPrice:       it.TotalPrice,
	}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, toOrderItemOutput(it))
	}

	return OrderOutput{
		ID:        o.ID,
		Number:    o.Number,
		OwnerID:   o.OwnerID,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Items:     outItems,
	}
}
