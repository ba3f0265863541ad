// Package task はタスク管理のドメインロジックを提供する。
package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/taskdeck/internal/model"
	"github.com/hitoshi/taskdeck/internal/repository"
)

// Service はタスク管理のサービス層。
type Service struct {
	repo repository.TaskRepository
}

// NewService はServiceを生成する。
func NewService(repo repository.TaskRepository) *Service {
	return &Service{repo: repo}
}

// List は指定コレクションのタスク一覧を返す。
func (s *Service) List(ctx context.Context, collectionID int) ([]model.Task, error) {
	tasks, err := s.repo.ListByCollectionID(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for collection %d: %w", collectionID, err)
	}
	return tasks, nil
}

// Create は指定コレクション配下にタスクを作成する。
// collectionIDの整数検証はハンドラ側でストレージ呼び出し前に済んでいる。
func (s *Service) Create(ctx context.Context, collectionID int, name string, isDone bool) error {
	if err := s.repo.Create(ctx, name, isDone, collectionID); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	slog.Info("task created",
		slog.Int("collection_id", collectionID),
		slog.String("name", name),
	)

	return nil
}

// Toggle は現在のis_doneを読み取り、論理否定を書き戻す。
// read-then-writeはアトミックではなく、同一タスクへの同時トグルは
// last-write-winsになる。タスクが見つからない場合はTASK_NOT_FOUNDを返す。
func (s *Service) Toggle(ctx context.Context, id int) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch task: %w", err)
	}
	if task == nil {
		return model.NewTaskNotFoundError()
	}

	if err := s.repo.UpdateIsDone(ctx, id, !task.IsDone); err != nil {
		return fmt.Errorf("failed to toggle task: %w", err)
	}

	slog.Info("task toggled",
		slog.Int("task_id", id),
		slog.Bool("is_done", !task.IsDone),
	)

	return nil
}

// Delete は指定IDのタスクを削除する。
// タスクの属するコレクションが操作ユーザーの所有かは検証しない（既知のギャップ）。
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	slog.Info("task deleted", slog.Int("task_id", id))

	return nil
}
