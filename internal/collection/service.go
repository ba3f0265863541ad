// Package collection はコレクション管理のドメインロジックを提供する。
package collection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/taskdeck/internal/model"
	"github.com/hitoshi/taskdeck/internal/repository"
)

// Service はコレクション管理のサービス層。
type Service struct {
	repo repository.CollectionRepository
}

// NewService はServiceを生成する。
func NewService(repo repository.CollectionRepository) *Service {
	return &Service{repo: repo}
}

// List は指定ユーザーが所有するコレクション一覧を返す。
// 他ユーザーのコレクションは含まれない。
func (s *Service) List(ctx context.Context, userID int) ([]model.Collection, error) {
	collections, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections for user %d: %w", userID, err)
	}
	return collections, nil
}

// Create は指定ユーザーのコレクションを作成する。
func (s *Service) Create(ctx context.Context, userID int, name string) error {
	if err := s.repo.Create(ctx, name, userID); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	slog.Info("collection created",
		slog.Int("user_id", userID),
		slog.String("name", name),
	)

	return nil
}

// Delete は指定IDのコレクションを削除する。
// 削除時の所有者再チェックは行わない。認証済みユーザーであれば
// 任意のIDを削除できる（意図した仕様ではなく既知のギャップ）。
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	slog.Info("collection deleted", slog.Int("collection_id", id))

	return nil
}

// Detail はコレクションを所有者のユーザー名付きで取得する。
// 見つからない場合はCOLLECTION_NOT_FOUNDエラーを返す。
func (s *Service) Detail(ctx context.Context, id int) (*model.CollectionDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collection detail: %w", err)
	}
	if detail == nil {
		return nil, model.NewCollectionNotFoundError()
	}
	return detail, nil
}
