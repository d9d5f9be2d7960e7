package usecase

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"app/internal/domain/authz"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// レポートの日付はUTCのマイクロ秒精度で受ける
const reportTimeLayout = "2006-01-02T15:04:05.000000Z"

type ReportUsecase struct {
	orderItemRepo repo.OrderItemRepository
	productRepo   repo.ProductRepository
}

func NewReportUsecase(orderItemRepo repo.OrderItemRepository, productRepo repo.ProductRepository) *ReportUsecase {
	return &ReportUsecase{orderItemRepo: orderItemRepo, productRepo: productRepo}
}

type SalesReportInput struct {
	StartDate string
	EndDate   string
}

type SalesReportOutput struct {
	Items            []OrderItemOutput `json:"items"`
	TotalSalesAmount decimal.Decimal   `json:"total_sales_amount"`
}

type FrequentReportOutput struct {
	Items            []repo.FrequentProductRow `json:"items"`
	TotalSalesAmount decimal.Decimal           `json:"total_sales_amount"`
}

type LowStockReportInput struct {
	QuantityThreshold string
	Page              int
	Limit             int
}

type LowStockReportOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// 期間内（両端含む）に作られた注文の明細と売上合計。管理者のみ。
// 該当ゼロはエラーではなく0.00を返す。
func (u *ReportUsecase) GenerateSalesReport(ctx context.Context, p Principal, in SalesReportInput) (SalesReportOutput, error) {
	if p.UserID <= 0 {
		return SalesReportOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpSalesReport) {
		return SalesReportOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	start, err := time.Parse(reportTimeLayout, in.StartDate)
	if err != nil {
		return SalesReportOutput{}, NewHTTPError(http.StatusBadRequest, "invalid start_date")
	}
	end, err := time.Parse(reportTimeLayout, in.EndDate)
	if err != nil {
		return SalesReportOutput{}, NewHTTPError(http.StatusBadRequest, "invalid end_date")
	}
	if end.Before(start) {
		return SalesReportOutput{}, NewHTTPError(http.StatusBadRequest, "end_date must not be before start_date")
	}

	items, err := u.orderItemRepo.ListByOrderCreatedRange(ctx, start, end)
	if err != nil {
		return SalesReportOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	total := decimal.Zero
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		total = total.Add(it.TotalPrice)
		outItems = append(outItems, toOrderItemOutput(it))
	}

	return SalesReportOutput{
		Items:            outItems,
		TotalSalesAmount: total.Round(2),
	}, nil
}

// 呼び出し元ユーザー自身の注文を商品ごとに集計し、数量の多い順で返す。一般ユーザー専用。
func (u *ReportUsecase) GenerateFrequentReport(ctx context.Context, p Principal) (FrequentReportOutput, error) {
	if p.UserID <= 0 {
		return FrequentReportOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpFrequentReport) {
		return FrequentReportOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	rows, err := u.orderItemRepo.FrequentByOwner(ctx, p.UserID)
	if err != nil {
		return FrequentReportOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//合計はこのユーザーの明細全体のtotal_priceの和
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.TotalExpenditure)
	}

	return FrequentReportOutput{
		Items:            rows,
		TotalSalesAmount: total.Round(2),
	}, nil
}

// 在庫がしきい値未満の商品一覧（全オーナー対象）。管理者のみ。
func (u *ReportUsecase) GenerateLowStockReport(ctx context.Context, p Principal, in LowStockReportInput) (LowStockReportOutput, error) {
	if p.UserID <= 0 {
		return LowStockReportOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if !authz.Allowed(p.Role, authz.OpLowStockReport) {
		return LowStockReportOutput{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	raw := strings.TrimSpace(in.QuantityThreshold)
	if raw == "" {
		return LowStockReportOutput{}, NewHTTPError(http.StatusBadRequest, "quantity_threshold is required")
	}
	threshold, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return LowStockReportOutput{}, NewHTTPError(http.StatusBadRequest, "quantity_threshold must be a number")
	}
	if threshold <= 0 {
		return LowStockReportOutput{}, NewHTTPError(http.StatusBadRequest, "quantity_threshold must be greater than zero")
	}

	if in.Page < 1 {
		return LowStockReportOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return LowStockReportOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	products, total, err := u.productRepo.ListLowStock(ctx, threshold, in.Page, in.Limit)
	if err != nil {
		return LowStockReportOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LowStockReportOutput{
		Items: products,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}
