package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/taskdeck/internal/model"
)

// PostgresTaskRepo はPostgreSQLを使用したタスクリポジトリ。
type PostgresTaskRepo struct {
	db *sql.DB
}

// NewPostgresTaskRepo はPostgresTaskRepoを生成する。
func NewPostgresTaskRepo(db *sql.DB) *PostgresTaskRepo {
	return &PostgresTaskRepo{db: db}
}

// ListByCollectionID は指定コレクションのタスク一覧を返す。
func (r *PostgresTaskRepo) ListByCollectionID(ctx context.Context, collectionID int) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, is_done, collections_id FROM tasks WHERE collections_id = $1`,
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.IsDone, &t.CollectionsID); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// Create はタスクを作成する。
func (r *PostgresTaskRepo) Create(ctx context.Context, name string, isDone bool, collectionID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (name, is_done, collections_id) VALUES ($1, $2, $3)`,
		name, isDone, collectionID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// FindByID は指定IDのタスクを取得する。見つからない場合はnilを返す。
func (r *PostgresTaskRepo) FindByID(ctx context.Context, id int) (*model.Task, error) {
	task := &model.Task{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, is_done, collections_id FROM tasks WHERE id = $1`,
		id,
	).Scan(&task.ID, &task.Name, &task.IsDone, &task.CollectionsID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// UpdateIsDone はタスクの完了フラグを書き換える。
func (r *PostgresTaskRepo) UpdateIsDone(ctx context.Context, id int, isDone bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET is_done = $1 WHERE id = $2`,
		isDone, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// DeleteByID は指定IDのタスクを削除する。
func (r *PostgresTaskRepo) DeleteByID(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// compile-time interface check
var _ TaskRepository = (*PostgresTaskRepo)(nil)
