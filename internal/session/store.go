// Package session はプロセス内メモリのセッションストアを提供する。
// セッションは不透明トークンをキーに保持し、生成から一定時間で失効する。
// プロセスを跨いだ共有は行わない。
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/hitoshi/taskdeck/internal/model"
)

// Store はトークンをキーにセッションを保持するインメモリストア。
// バックグラウンドで期限切れエントリのクリーンアップを行う。
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session

	maxAge          time.Duration
	cleanupInterval time.Duration

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewStore は新しいStoreを生成する。
// maxAgeはセッションの有効期間、cleanupIntervalは期限切れエントリの掃除間隔。
// バックグラウンドでクリーンアップゴルーチンを開始する。
func NewStore(maxAge, cleanupInterval time.Duration) *Store {
	s := &Store{
		sessions:        make(map[string]*model.Session),
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
		stopCh:          make(chan struct{}),
	}

	go s.cleanupLoop()

	return s
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// Create はパスワード検証済みユーザーのセッションを発行する。
// セッションにはユーザーの最小投影のみを載せる。
func (s *Store) Create(user model.SessionUser) (*model.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &model.Session{
		Token:     token,
		IsLogin:   true,
		User:      user,
		ExpiresAt: now.Add(s.maxAge),
		CreatedAt: now,
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session, nil
}

// Find は指定トークンのセッションを返す。
// 存在しない場合と期限切れの場合はどちらもnilを返し、呼び出し側からは
// 区別できない。期限切れエントリはこの時点で破棄する。
func (s *Store) Find(token string) *model.Session {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil
	}

	if time.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil
	}

	return session
}

// Delete は指定トークンのセッションを破棄する。
// 存在しないトークンに対しても成功として扱う（冪等）。
func (s *Store) Delete(token string) error {
	if token == "" {
		return fmt.Errorf("session token is required")
	}

	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()

	return nil
}

// Len は現在保持しているセッション数を返す。
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cleanupLoop は定期的に期限切れセッションを破棄する。
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup は期限切れセッションをまとめて削除する。
func (s *Store) cleanup() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// generateToken は暗号的に安全なセッショントークンを生成する。
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
