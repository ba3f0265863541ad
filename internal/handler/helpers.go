package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/taskdeck/internal/flash"
	"github.com/hitoshi/taskdeck/internal/model"
)

// redirectBack はRefererへリダイレクトする。
// Refererが空の場合はfallbackへ送る。
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Referer()
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// setErrorFlash はエラーをフラッシュメッセージに変換する。
// FlashErrorはその文言をそのまま表示し、それ以外のエラーは原因をログに
// 記録したうえで汎用メッセージを表示する。生のエラーはクライアントへ出さない。
func setErrorFlash(w http.ResponseWriter, err error, fallbackSeverity, fallbackMessage string) {
	var fe *model.FlashError
	if errors.As(err, &fe) {
		flash.Set(w, fe.Severity, fe.Message)
		return
	}

	slog.Error("request failed", slog.String("error", err.Error()))
	flash.Set(w, fallbackSeverity, fallbackMessage)
}
