package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/authz"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

type OrderStatusUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
	clock     Clock
}

func NewOrderStatusUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository, clock Clock) *OrderStatusUsecase {
	return &OrderStatusUsecase{tx: tx, auditRepo: auditRepo, clock: clock}
}

// Transitionはステータスを指定の値に差し替える（管理者のみ）。
// 遷移元の制限は設けない（cancelled→pendingもcompleted→cancelledも許可）。
// 同じ値への再適用もエラーにしない。
func (u *OrderStatusUsecase) Transition(ctx context.Context, p Principal, orderID int64, to model.OrderStatus) error {
	if p.UserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	//ロールはテーブルで判定。Forbiddenは404と区別して返す
	if !authz.Allowed(p.Role, authz.OpTransitionOrder) {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	switch to {
	case model.OrderStatusPending, model.OrderStatusCompleted, model.OrderStatusCancelled:
		// OK
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		beforeStatus := string(o.Status)

		//同じ値でもupdated_atを進める（冪等な上書き）
		if err := r.Orders().UpdateStatus(ctx, orderID, to); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（UPDATE_ORDER_STATUS）
		beforeJSON := `{"status":"` + beforeStatus + `"}`
		afterJSON := `{"status":"` + string(to) + `"}`
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  p.UserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   beforeJSON,
			AfterJSON:    afterJSON,
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}
