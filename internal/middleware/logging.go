package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// logRecord はリクエスト処理中に下流が属性を書き戻すための入れ物。
// ロギングミドルウェアが配置し、アクセスゲートが認証後にユーザーIDを設定する。
type logRecord struct {
	userID int
}

// logRecordContextKey はリクエストコンテキストにlogRecordを格納するためのキー。
var logRecordContextKey = contextKey("log_record")

// setLogUserID は現在のリクエストのログに認証済みユーザーIDを付与する。
// logRecordが配置されていないコンテキストでは何もしない。
func setLogUserID(ctx context.Context, userID int) {
	if record, ok := ctx.Value(logRecordContextKey).(*logRecord); ok {
		record.userID = userID
	}
}

// statusRecorder はhttp.ResponseWriterをラップし、ステータスコードを記録する。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader はステータスコードを記録してから委譲する。
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write はデータを書き込む。WriteHeaderが未呼び出しの場合は200を記録する。
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// NewLoggingMiddleware はリクエストのJSON構造化ログを出力するミドルウェアを返す。
// ログにはrequest_id、method、path、status、duration_ms、
// user_id（認証済みの場合）を含む。パスワード等のフォーム値は記録しない。
// このミドルウェアはアクセスゲートより前段で動くため、ユーザーIDは
// コンテキストに置いたlogRecord経由でゲートから書き戻してもらう。
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.New().String()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			record := &logRecord{}
			ctx := context.WithValue(r.Context(), logRecordContextKey, record)

			next.ServeHTTP(rec, r.WithContext(ctx))

			duration := time.Since(start)
			durationMs := float64(duration.Nanoseconds()) / float64(time.Millisecond)

			attrs := []slog.Attr{
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("duration_ms", durationMs),
			}

			// アクセスゲートが認証後に書き戻したユーザーIDがあれば追加
			if record.userID != 0 {
				attrs = append(attrs, slog.Int("user_id", record.userID))
			}

			// ステータスコードに応じてログレベルを変更
			level := slog.LevelInfo
			if rec.statusCode >= 500 {
				level = slog.LevelError
			} else if rec.statusCode >= 400 {
				level = slog.LevelWarn
			}

			logger.LogAttrs(r.Context(), level, "http_request", attrs...)
		})
	}
}
