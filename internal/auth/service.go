// Package auth は登録・ログイン・セッション発行の認証ロジックを提供する。
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/taskdeck/internal/model"
	"github.com/hitoshi/taskdeck/internal/repository"
)

// bcryptCost はパスワードハッシュのコストファクタ。
const bcryptCost = 10

// SessionStore はセッションの発行と破棄に必要なインターフェース。
// ハッシュアルゴリズムを一切知らない（能力の分離）。
type SessionStore interface {
	Create(user model.SessionUser) (*model.Session, error)
	Delete(token string) error
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	sessions SessionStore
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, sessions SessionStore) *Service {
	return &Service{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Register は新規ユーザーを登録する。
// パスワードはbcryptでハッシュ化してから永続化し、平文は保存もログもしない。
// メールアドレス重複の場合はDUPLICATE_EMAILエラーを返す。
// ハッシュ化の失敗は回復可能なエラーとして返し、プロセスを落とさない。
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		slog.Error("failed to hash password", slog.String("error", err.Error()))
		return model.NewRegisterHashingFailureError()
	}

	if err := s.userRepo.Create(ctx, username, email, string(hash)); err != nil {
		return err
	}

	slog.Info("user registered",
		slog.String("username", username),
		slog.String("email", email),
	)

	return nil
}

// Verify はメールアドレスとパスワードを検証し、一致したユーザーを返す。
// メールアドレス不在、パスワード不一致、ハッシュ照合の内部エラーは
// それぞれ別個のFlashErrorになる。照合はbcryptの定数時間比較のみを使う。
func (s *Service) Verify(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.NewEmailNotFoundError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, model.NewWrongPasswordError()
		}
		slog.Error("failed to compare password hash", slog.String("error", err.Error()))
		return nil, model.NewHashingFailureError()
	}

	return user, nil
}

// Login は認証情報を検証し、成功した場合にセッションを発行する。
// セッションにはパスワードハッシュを含まない最小投影のみを載せる。
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	user, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(model.SessionUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("user logged in", slog.Int("user_id", user.ID))

	return session, nil
}

// Logout はセッションを同期的に破棄する。
// 破棄の失敗はそのリクエストのエラーとして呼び出し側に返す。
func (s *Service) Logout(token string) error {
	if err := s.sessions.Delete(token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	slog.Info("user logged out")
	return nil
}
