package repository

import (
	"app/internal/domain/model"
	"context"
)

// ユーザーの保存・取得を約束。登録/ログインはスコープ外なので最小限。
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。見つからなければnil。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。見つからなければnil。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}
