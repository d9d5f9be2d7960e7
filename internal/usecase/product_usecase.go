package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/authz"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	auditRepo   repo.AuditLogRepository
	clock       Clock
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, auditRepo repo.AuditLogRepository, clock Clock) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		auditRepo:   auditRepo,
		clock:       clock,
	}
}

type ListProductsInput struct {
	Page  int
	Limit int
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func (u *ProductUsecase) ListProducts(ctx context.Context, p Principal, in ListProductsInput) (ProductListOutput, error) {
	if p.UserID <= 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpReadProducts) {
		return ProductListOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListQuery{Page: in.Page, Limit: in.Limit})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) GetProductDetail(ctx context.Context, p Principal, productID int64) (model.Product, error) {
	if p.UserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpReadProducts) {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return product, nil
}

// 商品入力のチェック。作成と更新で共通
func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Quantity <= 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be greater than zero")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must not be negative")
	}
	return nil
}

func (u *ProductUsecase) AdminCreateProduct(ctx context.Context, p Principal, in ProductInput) (model.Product, error) {
	if p.UserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpWriteProducts) {
		return model.Product{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price.Round(2),
		CreatedByID: p.UserID,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.writeProductAudit(ctx, p.UserID, model.AuditActionCreateProduct, created.ID, nil, &created); err != nil {
		return model.Product{}, err
	}

	return created, nil
}

func (u *ProductUsecase) AdminUpdateProduct(ctx context.Context, p Principal, productID int64, in ProductInput) error {
	if p.UserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpWriteProducts) {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if err := validateProductInput(in); err != nil {
		return err
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	after := before
	after.Name = strings.TrimSpace(in.Name)
	after.Description = in.Description
	after.Quantity = in.Quantity
	after.Price = in.Price.Round(2)

	if err := u.productRepo.Update(ctx, after); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.writeProductAudit(ctx, p.UserID, model.AuditActionUpdateProduct, productID, &before, &after)
}

func (u *ProductUsecase) AdminDeleteProduct(ctx context.Context, p Principal, productID int64) error {
	if p.UserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpWriteProducts) {
		return NewHTTPError(http.StatusForbidden, "forbidden")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.productRepo.Delete(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.writeProductAudit(ctx, p.UserID, model.AuditActionDeleteProduct, productID, &before, nil)
}

// 商品操作の監査ログを書く。before/afterはJSON文字列で残す
func (u *ProductUsecase) writeProductAudit(ctx context.Context, actorID int64, action model.AuditAction, productID int64, before *model.Product, after *model.Product) error {
	beforeJSON := ""
	if before != nil {
		b, err := json.Marshal(before)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		beforeJSON = string(b)
	}

	afterJSON := ""
	if after != nil {
		b, err := json.Marshal(after)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		afterJSON = string(b)
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   beforeJSON,
		AfterJSON:    afterJSON,
		CreatedAt:    u.clock.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
