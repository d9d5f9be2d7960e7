package usecase

import (
	"context"
	"net/http"
	"strconv"

	"app/internal/domain/authz"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 管理者操作の履歴を引くAPI。
type AuditUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditUsecase(auditRepo repo.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	Action       string
	ResourceType string
	ResourceID   string
	Limit        int
	Offset       int
}

type AuditLogListOutput struct {
	Items []model.AuditLog `json:"items"`
}

func (u *AuditUsecase) ListAuditLogs(ctx context.Context, p Principal, in ListAuditLogsInput) (AuditLogListOutput, error) {
	if p.UserID <= 0 {
		return AuditLogListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpReadAuditLogs) {
		return AuditLogListOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if in.Limit < 0 || in.Offset < 0 {
		return AuditLogListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit or offset")
	}

	f := repo.AuditLogFilter{
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if in.Action != "" {
		a := model.AuditAction(in.Action)
		f.Action = &a
	}
	if in.ResourceType != "" {
		rt := model.AuditResourceType(in.ResourceType)
		f.ResourceType = &rt
	}
	if in.ResourceID != "" {
		id, err := strconv.ParseInt(in.ResourceID, 10, 64)
		if err != nil {
			return AuditLogListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid resource_id")
		}
		f.ResourceID = &id
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return AuditLogListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return AuditLogListOutput{Items: logs}, nil
}
