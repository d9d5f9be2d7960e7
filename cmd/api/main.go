package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無ければ環境変数だけで動かす
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	itemValidator := validator.NewOrderItemValidator()

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txManager, itemValidator, idGen, clock)
	statusUC := usecase.NewOrderStatusUsecase(txManager, auditRepo, clock)
	reportUC := usecase.NewReportUsecase(orderItemRepo, productRepo)
	productUC := usecase.NewProductUsecase(productRepo, auditRepo, clock)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Handler生成
	orderH := handler.NewOrderHandler(orderUC)
	adminOrderH := handler.NewAdminOrderHandler(statusUC)
	reportH := handler.NewReportHandler(reportUC)
	productH := handler.NewProductHandler(productUC)
	adminProductH := handler.NewAdminProductHandler(productUC, reportUC)
	adminAuditH := handler.NewAdminAuditHandler(auditUC)

	//Server起動
	e := server.New()
	server.RegisterRoutes(e, cfg, userRepo, productH, adminProductH, orderH, adminOrderH, reportH, adminAuditH)

	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		e.Logger.Fatal(err)
	}
}
