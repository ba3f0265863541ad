// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// Passwordカラムにはbcryptハッシュのみを格納し、平文は一切保持しない。
type User struct {
	ID       int
	Username string
	Email    string
	Password string // bcryptハッシュ
}

// SessionUser はセッションに載せるユーザーの最小投影。
// パスワードハッシュは決して含めない。
type SessionUser struct {
	ID       int
	Username string
	Email    string
}

// Session はユーザーのログインセッションを表す。
// トークンは不透明な識別子で、ブラウザとサーバー側状態を対応付ける。
type Session struct {
	Token     string
	IsLogin   bool
	User      SessionUser
	ExpiresAt time.Time
	CreatedAt time.Time
}
