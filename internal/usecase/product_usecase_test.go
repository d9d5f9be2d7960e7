package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProductEnv() (*usecase.ProductUsecase, *mockProductRepo, *mockAuditRepo) {
	products := new(mockProductRepo)
	audit := new(mockAuditRepo)
	uc := usecase.NewProductUsecase(products, audit, &fixedClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)})
	return uc, products, audit
}

// Test: 商品一覧は一般ユーザーが見る
func TestListProducts(t *testing.T) {
	uc, products, _ := newProductEnv()

	products.On("List", repo.ProductListQuery{Page: 1, Limit: 50}).Return([]model.Product{
		{ID: 1, Name: "pen", Quantity: 10, Price: d("3.00")},
	}, int64(1), nil)

	out, err := uc.ListProducts(context.Background(), regularUser, usecase.ListProductsInput{Page: 1, Limit: 50})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	assert.Len(t, out.Items, 1)
}

// Test: 閲覧は一般ユーザー専用ロール
func TestListProductsForbiddenForAdmin(t *testing.T) {
	uc, products, _ := newProductEnv()

	_, err := uc.ListProducts(context.Background(), adminUser, usecase.ListProductsInput{Page: 1, Limit: 50})

	requireHTTPStatus(t, err, http.StatusForbidden)
	products.AssertNotCalled(t, "List", mock.Anything)
}

// Test: 存在しない商品詳細は404
func TestGetProductDetailNotFound(t *testing.T) {
	uc, products, _ := newProductEnv()

	products.On("FindByID", int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductDetail(context.Background(), regularUser, 404)
	requireHTTPStatus(t, err, http.StatusNotFound)
}

// Test: 商品作成は価格を2桁に丸めて監査ログを書く
func TestAdminCreateProduct(t *testing.T) {
	uc, products, audit := newProductEnv()

	products.On("Create", mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "pen" && p.Quantity == 10 && p.Price.Equal(d("3.01")) && p.CreatedByID == adminUser.UserID
	})).Return(model.Product{ID: 1, Name: "pen", Quantity: 10, Price: d("3.01")}, nil)
	audit.On("Create", mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionCreateProduct &&
			l.ResourceType == model.AuditResourceProduct &&
			l.ResourceID == 1 &&
			l.BeforeJSON == ""
	})).Return(nil)

	created, err := uc.AdminCreateProduct(context.Background(), adminUser, usecase.ProductInput{
		Name:     " pen ",
		Quantity: 10,
		Price:    d("3.005"),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	products.AssertExpectations(t)
	audit.AssertExpectations(t)
}

// Test: 商品の書き込みは管理者専用
func TestAdminCreateProductForbiddenForRegularUser(t *testing.T) {
	uc, products, _ := newProductEnv()

	_, err := uc.AdminCreateProduct(context.Background(), regularUser, usecase.ProductInput{
		Name:     "pen",
		Quantity: 1,
		Price:    d("1.00"),
	})

	requireHTTPStatus(t, err, http.StatusForbidden)
	products.AssertNotCalled(t, "Create", mock.Anything)
}

// Test: 入力チェック（名前必須、数量は正、価格は非負）
func TestAdminCreateProductValidation(t *testing.T) {
	uc, products, _ := newProductEnv()

	cases := []usecase.ProductInput{
		{Name: "  ", Quantity: 1, Price: d("1.00")},
		{Name: "pen", Quantity: 0, Price: d("1.00")},
		{Name: "pen", Quantity: -2, Price: d("1.00")},
		{Name: "pen", Quantity: 1, Price: d("-0.01")},
	}
	for _, in := range cases {
		_, err := uc.AdminCreateProduct(context.Background(), adminUser, in)
		requireHTTPStatus(t, err, http.StatusBadRequest)
	}

	products.AssertNotCalled(t, "Create", mock.Anything)
}

// Test: 更新は変更前後を監査ログに残す
func TestAdminUpdateProductWritesAudit(t *testing.T) {
	uc, products, audit := newProductEnv()

	products.On("FindByID", int64(1)).Return(model.Product{ID: 1, Name: "pen", Quantity: 10, Price: d("3.00")}, nil)
	products.On("Update", mock.MatchedBy(func(p model.Product) bool {
		return p.ID == 1 && p.Name == "marker" && p.Quantity == 5 && p.Price.Equal(d("4.50"))
	})).Return(nil)
	audit.On("Create", mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateProduct && l.BeforeJSON != "" && l.AfterJSON != ""
	})).Return(nil)

	err := uc.AdminUpdateProduct(context.Background(), adminUser, 1, usecase.ProductInput{
		Name:     "marker",
		Quantity: 5,
		Price:    d("4.50"),
	})

	assert.NoError(t, err)
	products.AssertExpectations(t)
	audit.AssertExpectations(t)
}

// Test: 削除は変更前だけを監査ログに残す
func TestAdminDeleteProductWritesAudit(t *testing.T) {
	uc, products, audit := newProductEnv()

	products.On("FindByID", int64(1)).Return(model.Product{ID: 1, Name: "pen"}, nil)
	products.On("Delete", int64(1)).Return(nil)
	audit.On("Create", mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionDeleteProduct && l.BeforeJSON != "" && l.AfterJSON == ""
	})).Return(nil)

	err := uc.AdminDeleteProduct(context.Background(), adminUser, 1)

	assert.NoError(t, err)
	products.AssertExpectations(t)
	audit.AssertExpectations(t)
}

// Test: 存在しない商品の削除は404
func TestAdminDeleteProductNotFound(t *testing.T) {
	uc, products, _ := newProductEnv()

	products.On("FindByID", int64(404)).Return(model.Product{}, repo.ErrNotFound)

	err := uc.AdminDeleteProduct(context.Background(), adminUser, 404)
	requireHTTPStatus(t, err, http.StatusNotFound)
	products.AssertNotCalled(t, "Delete", mock.Anything)
}
