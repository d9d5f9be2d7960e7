package main

import (
	"context"
	"fmt"
	"os"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// 登録/ログインAPIは無いので、最初の管理者はこのコマンドで作る。
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		panic(err)
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		panic("SEED_ADMIN_PASSWORD is required")
	}

	ctx := context.Background()
	userRepo := infraRepo.NewUserGormRepository(gormDB)

	existing, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		panic(err)
	}
	if existing != nil {
		fmt.Println("admin user already exists:", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		panic(err)
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Firstname:    "Admin",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		panic(err)
	}

	fmt.Println("admin user created:", email)
}
