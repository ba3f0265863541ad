package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/taskdeck/internal/flash"
	"github.com/hitoshi/taskdeck/internal/middleware"
	"github.com/hitoshi/taskdeck/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Logout(token string) error
}

// LoginMetrics はログイン成否の計測インターフェース。
type LoginMetrics interface {
	RecordLoginSuccess()
	RecordLoginFailure()
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieSecure  bool
	SessionMaxAge int // セッションCookieの有効期間（秒）
}

// AuthHandler は登録・ログイン・ログアウトのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
	config  AuthHandlerConfig
	metrics LoginMetrics // nil可
}

// NewAuthHandler はAuthHandlerを生成する。metricsはnilでもよい。
func NewAuthHandler(service AuthServiceInterface, config AuthHandlerConfig, metrics LoginMetrics) *AuthHandler {
	return &AuthHandler{
		service: service,
		config:  config,
		metrics: metrics,
	}
}

// LoginView はログインフォームを描画する。
// GET /login
func (h *AuthHandler) LoginView(w http.ResponseWriter, r *http.Request) {
	render(w, r, "login.html", nil)
}

// Login は認証情報を検証し、セッションCookieを発行する。
// 失敗理由ごとに異なるフラッシュを出すが、HTTP上の挙動は常に
// ログインビューへのリダイレクトで揃える。
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flash.Set(w, model.SeverityDanger, "Login Failed: Internal Server Error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	session, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordLoginFailure()
		}
		setErrorFlash(w, err, model.SeverityDanger, "Login Failed: Internal Server Error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   h.config.SessionMaxAge,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	if h.metrics != nil {
		h.metrics.RecordLoginSuccess()
	}

	flash.Set(w, model.SeveritySuccess, "Login Successful!")
	http.Redirect(w, r, "/collections", http.StatusSeeOther)
}

// Logout はセッションを同期的に破棄してからログインビューへ送る。
// 破棄に失敗した場合はリダイレクトせず、失敗をフラッシュで返す。
// GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.service.Logout(cookie.Value); err != nil {
		slog.Error("failed to destroy session", slog.String("error", err.Error()))
		flash.Set(w, model.SeverityDanger, "Logout failed. Please try again.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RegisterView は登録フォームを描画する。
// GET /register
func (h *AuthHandler) RegisterView(w http.ResponseWriter, r *http.Request) {
	render(w, r, "register.html", nil)
}

// Register は新規ユーザーを登録する。
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flash.Set(w, model.SeverityDanger, "Register Failed!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if err := h.service.Register(r.Context(), username, email, password); err != nil {
		setErrorFlash(w, err, model.SeverityDanger, "Register Failed!")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	flash.Set(w, model.SeveritySuccess, "Register Successful!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
