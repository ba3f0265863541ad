// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hitoshi/taskdeck/internal/flash"
	"github.com/hitoshi/taskdeck/internal/model"
)

// SessionCookieName はセッショントークンを運ぶCookie名。
const SessionCookieName = "session_id"

// loginRequiredMessage は未認証リクエストに表示するフラッシュメッセージ。
// Cookie欠落・未知トークン・期限切れのいずれでも同一の文言を使い、
// 拒否理由を外部から区別できないようにする。
const loginRequiredMessage = "You must be logged in to view this page."

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// sessionUserContextKey はリクエストコンテキストにセッションユーザーを格納するためのキー。
var sessionUserContextKey = contextKey("session_user")

// SessionFinder はセッションの検索に必要なインターフェース。
// session.Storeの部分集合として定義する。
type SessionFinder interface {
	Find(token string) *model.Session
}

// NewAccessGate はセッション状態を検査するアクセスゲートミドルウェアを返す。
// 保護対象のすべてのルートが唯一この地点で認可される。
// 許可にはisLogin=trueの有効なセッションが必要で、許可時は認証済み
// ユーザーをリクエストコンテキストに注入する。拒否時はフラッシュ付きで
// ログインビューへリダイレクトし、panicも生のエラーも発生させない。
func NewAccessGate(sessions SessionFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				deny(w, r)
				return
			}

			session := sessions.Find(cookie.Value)
			if session == nil || !session.IsLogin {
				deny(w, r)
				return
			}

			// 前段のロギングミドルウェアへ認証済みユーザーIDを書き戻す
			setLogUserID(r.Context(), session.User.ID)

			ctx := context.WithValue(r.Context(), sessionUserContextKey, session.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// deny は未認証リクエストを警告フラッシュ付きでログインビューへ送る。
func deny(w http.ResponseWriter, r *http.Request) {
	flash.Set(w, model.SeverityDanger, loginRequiredMessage)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SessionUserFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// アクセスゲートを通過したリクエストでのみ有効。
func SessionUserFromContext(ctx context.Context) (model.SessionUser, error) {
	user, ok := ctx.Value(sessionUserContextKey).(model.SessionUser)
	if !ok || user.ID == 0 {
		return model.SessionUser{}, fmt.Errorf("session user not found in context")
	}
	return user, nil
}

// ContextWithSessionUser はコンテキストに認証済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithSessionUser(ctx context.Context, user model.SessionUser) context.Context {
	return context.WithValue(ctx, sessionUserContextKey, user)
}
