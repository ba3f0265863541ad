// Package flash はワンショットのフラッシュメッセージを提供する。
// メッセージはCookieに載せてリダイレクト先へ運び、1回描画されたら消える。
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const cookieName = "flash"

// Flash はユーザーに1回だけ表示する通知を表す。
type Flash struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Set はフラッシュメッセージをCookieにセットする。
// 次のページ描画で1回だけ表示される。
func Set(w http.ResponseWriter, severity, message string) {
	data, err := json.Marshal(Flash{Severity: severity, Message: message})
	if err != nil {
		// Flashは文字列2つの構造体なのでここには到達しない
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop はフラッシュメッセージを取り出し、Cookieをクリアする。
// メッセージがない場合や解読できない場合はnilを返す。
func Pop(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// 取り出したら即座にクリアする（ワンショット保証）
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	f := &Flash{}
	if err := json.Unmarshal(data, f); err != nil {
		return nil
	}

	return f
}
