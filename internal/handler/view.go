// Package handler はHTTPハンドラーとビュー描画を提供する。
package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/hitoshi/taskdeck/internal/flash"
	"github.com/hitoshi/taskdeck/internal/middleware"
	"github.com/hitoshi/taskdeck/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// page はすべてのビューに渡す共通データ。
// フラッシュメッセージはここで取り出され、1回描画されたら消える。
type page struct {
	IsLogin bool
	User    model.SessionUser
	Flash   *flash.Flash
	Data    any
}

// render はテンプレートを描画する。
// アクセスゲートを通過したリクエストではログイン状態とユーザーを補完する。
func render(w http.ResponseWriter, r *http.Request, name string, data any) {
	p := page{
		Flash: flash.Pop(w, r),
		Data:  data,
	}
	if user, err := middleware.SessionUserFromContext(r.Context()); err == nil {
		p.IsLogin = true
		p.User = user
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, p); err != nil {
		slog.Error("failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
	}
}

// Home はトップページを描画する。
// GET /
func Home(w http.ResponseWriter, r *http.Request) {
	render(w, r, "index.html", nil)
}
