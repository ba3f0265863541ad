package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/taskdeck/internal/model"
)

// PostgresCollectionRepo はPostgreSQLを使用したコレクションリポジトリ。
type PostgresCollectionRepo struct {
	db *sql.DB
}

// NewPostgresCollectionRepo はPostgresCollectionRepoを生成する。
func NewPostgresCollectionRepo(db *sql.DB) *PostgresCollectionRepo {
	return &PostgresCollectionRepo{db: db}
}

// ListByUserID は所有者で絞り込んだコレクション一覧を返す。
func (r *PostgresCollectionRepo) ListByUserID(ctx context.Context, userID int) ([]model.Collection, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, user_id FROM collections WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []model.Collection
	for rows.Next() {
		var c model.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}

	return collections, nil
}

// Create はコレクションを作成する。
func (r *PostgresCollectionRepo) Create(ctx context.Context, name string, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO collections (name, user_id) VALUES ($1, $2)`,
		name, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	return nil
}

// DeleteByID は指定IDのコレクションを削除する。
// 所有者チェックは行わない。該当行がない場合は副作用なしで失敗を返す。
func (r *PostgresCollectionRepo) DeleteByID(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM collections WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewCollectionNotFoundError()
	}
	return nil
}

// FindDetailByID はコレクションに所有者のユーザー名をJOINして取得する。
// 見つからない場合はnilを返す。
func (r *PostgresCollectionRepo) FindDetailByID(ctx context.Context, id int) (*model.CollectionDetail, error) {
	detail := &model.CollectionDetail{}
	err := r.db.QueryRowContext(ctx,
		`SELECT collections.id, collections.name, users.username
		 FROM collections
		 JOIN users ON collections.user_id = users.id
		 WHERE collections.id = $1`,
		id,
	).Scan(&detail.ID, &detail.Name, &detail.Username)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find collection detail: %w", err)
	}

	return detail, nil
}

// compile-time interface check
var _ CollectionRepository = (*PostgresCollectionRepo)(nil)
