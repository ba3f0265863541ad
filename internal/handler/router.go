package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/taskdeck/internal/metrics"
	"github.com/hitoshi/taskdeck/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Sessions middleware.SessionFinder
	Logger   *slog.Logger

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// ドメインサービス
	CollectionService CollectionServiceInterface
	TaskService       TaskServiceInterface

	// 運用系（nil可）
	Metrics       *metrics.Collector
	Gatherer      prometheus.Gatherer
	HealthChecker HealthChecker
}

// NewRouter は全ルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Logging → Metrics
//
// アクセスゲートは保護対象グループにのみ適用する。
// home、login、register、logoutとそのビューはゲートの外に置く。
// 未定義ルートはchiのデフォルト404に委ねる。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.Metrics != nil {
		r.Use(metrics.NewHTTPMiddleware(deps.Metrics))
	}

	var loginMetrics LoginMetrics
	if deps.Metrics != nil {
		loginMetrics = deps.Metrics
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig, loginMetrics)
	collectionHandler := NewCollectionHandler(deps.CollectionService, deps.TaskService)
	taskHandler := NewTaskHandler(deps.TaskService)

	// --- 認証不要のルート ---

	r.Get("/", Home)
	r.Get("/login", authHandler.LoginView)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)
	r.Get("/register", authHandler.RegisterView)
	r.Post("/register", authHandler.Register)

	r.Get("/healthz", newHealthHandler(deps.HealthChecker))
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- 認証が必要なルート ---
	// 状態を変更するルートとユーザースコープの読み取りはすべて
	// アクセスゲートを通す。

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAccessGate(deps.Sessions))

		r.Get("/collections", collectionHandler.List)
		r.Get("/add-collection", collectionHandler.AddView)
		r.Post("/add-collections", collectionHandler.Add)
		r.Post("/delete-collections/{id}", collectionHandler.Delete)
		r.Get("/collections-detail/{id}", collectionHandler.Detail)

		r.Post("/task-update/{id}", taskHandler.Update)
		r.Post("/task-delete/{id}", taskHandler.Delete)
		r.Get("/collections-detail/add-task/{id}", taskHandler.AddView)
		r.Post("/collections-detail/add-task/{id}", taskHandler.Add)
	})

	return r
}

// newHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(hc HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if hc != nil {
			if err := hc.PingContext(r.Context()); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
