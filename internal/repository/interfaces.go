// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/taskdeck/internal/model"
)

// UserRepository はユーザー認証情報の永続化インターフェース。
type UserRepository interface {
	// FindByEmail は完全一致でユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。passwordHashにはbcryptハッシュを渡すこと。
	// メールアドレス重複の場合は*model.FlashError（DUPLICATE_EMAIL）を返す。
	Create(ctx context.Context, username, email, passwordHash string) error
}

// CollectionRepository はコレクションデータの永続化インターフェース。
type CollectionRepository interface {
	// ListByUserID は所有者で絞り込んだコレクション一覧を返す。
	// 並び順は指定しない（ストレージの自然順）。
	ListByUserID(ctx context.Context, userID int) ([]model.Collection, error)

	// Create はコレクションを作成する。
	Create(ctx context.Context, name string, userID int) error

	// DeleteByID は指定IDのコレクションを削除する。
	// 所有者チェックは行わない。該当行がない場合は*model.FlashError
	// （COLLECTION_NOT_FOUND）を返し、副作用はない。
	DeleteByID(ctx context.Context, id int) error

	// FindDetailByID はコレクションに所有者のユーザー名をJOINして取得する。
	// 見つからない場合はnilを返す。
	FindDetailByID(ctx context.Context, id int) (*model.CollectionDetail, error)
}

// TaskRepository はタスクデータの永続化インターフェース。
type TaskRepository interface {
	// ListByCollectionID は指定コレクションのタスク一覧を返す。
	ListByCollectionID(ctx context.Context, collectionID int) ([]model.Task, error)

	// Create はタスクを作成する。
	Create(ctx context.Context, name string, isDone bool, collectionID int) error

	// FindByID は指定IDのタスクを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int) (*model.Task, error)

	// UpdateIsDone はタスクの完了フラグを書き換える。
	UpdateIsDone(ctx context.Context, id int, isDone bool) error

	// DeleteByID は指定IDのタスクを削除する。
	DeleteByID(ctx context.Context, id int) error
}
