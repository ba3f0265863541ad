package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskdeck/internal/flash"
	"github.com/hitoshi/taskdeck/internal/middleware"
	"github.com/hitoshi/taskdeck/internal/model"
)

// CollectionServiceInterface はコレクションハンドラーが必要とするサービスインターフェース。
type CollectionServiceInterface interface {
	List(ctx context.Context, userID int) ([]model.Collection, error)
	Create(ctx context.Context, userID int, name string) error
	Delete(ctx context.Context, id int) error
	Detail(ctx context.Context, id int) (*model.CollectionDetail, error)
}

// CollectionHandler はコレクション関連のHTTPハンドラー。
type CollectionHandler struct {
	collections CollectionServiceInterface
	tasks       TaskServiceInterface
}

// NewCollectionHandler はCollectionHandlerを生成する。
func NewCollectionHandler(collections CollectionServiceInterface, tasks TaskServiceInterface) *CollectionHandler {
	return &CollectionHandler{
		collections: collections,
		tasks:       tasks,
	}
}

// collectionsPage はコレクション一覧ビューのデータ。
type collectionsPage struct {
	Collections []model.Collection
}

// detailPage はコレクション詳細ビューのデータ。
type detailPage struct {
	Collection *model.CollectionDetail
	Tasks      []model.Task
}

// List はログインユーザーが所有するコレクション一覧を描画する。
// GET /collections
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.SessionUserFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	collections, err := h.collections.List(r.Context(), user.ID)
	if err != nil {
		setErrorFlash(w, err, model.SeverityDanger, "Failed to fetch collections. Please try again.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	render(w, r, "collections.html", collectionsPage{Collections: collections})
}

// AddView はコレクション追加フォームを描画する。
// GET /add-collection
func (h *CollectionHandler) AddView(w http.ResponseWriter, r *http.Request) {
	render(w, r, "add-collection.html", nil)
}

// Add はログインユーザーのコレクションを作成する。
// POST /add-collections
func (h *CollectionHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.SessionUserFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		flash.Set(w, model.SeverityDanger, "Failed to add collection. Please try again.")
		http.Redirect(w, r, "/add-collection", http.StatusSeeOther)
		return
	}
	name := r.PostFormValue("name")

	if err := h.collections.Create(r.Context(), user.ID, name); err != nil {
		setErrorFlash(w, err, model.SeverityDanger, "Failed to add collection. Please try again.")
		http.Redirect(w, r, "/add-collection", http.StatusSeeOther)
		return
	}

	flash.Set(w, model.SeveritySuccess, "Collection added successfully!")
	http.Redirect(w, r, "/collections", http.StatusSeeOther)
}

// Delete は指定IDのコレクションを削除する。
// IDが整数に解釈できない場合はストレージを呼ばずに拒否する。
// POST /delete-collections/{id}
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		flash.Set(w, model.SeverityDanger, "Invalid collection ID.")
		http.Redirect(w, r, "/collections", http.StatusSeeOther)
		return
	}

	if err := h.collections.Delete(r.Context(), id); err != nil {
		setErrorFlash(w, err, model.SeverityDanger, "Failed to delete collection. Please try again.")
		http.Redirect(w, r, "/collections", http.StatusSeeOther)
		return
	}

	flash.Set(w, model.SeveritySuccess, "Collection deleted successfully!")
	http.Redirect(w, r, "/collections", http.StatusSeeOther)
}

// Detail はコレクション詳細とタスク一覧を描画する。
// 詳細取得とタスク一覧は独立した2クエリであり、間に割り込む削除と
// 競合し得る（許容されたレース）。
// GET /collections-detail/{id}
func (h *CollectionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		flash.Set(w, model.SeverityDanger, "Invalid collection ID.")
		http.Redirect(w, r, "/collections", http.StatusSeeOther)
		return
	}

	detail, err := h.collections.Detail(r.Context(), id)
	if err != nil {
		setErrorFlash(w, err, model.SeverityDanger, "Failed to fetch collection details. Please try again.")
		http.Redirect(w, r, "/collections", http.StatusSeeOther)
		return
	}

	tasks, err := h.tasks.List(r.Context(), id)
	if err != nil {
		setErrorFlash(w, err, model.SeverityDanger, "Failed to fetch collection details. Please try again.")
		http.Redirect(w, r, "/collections", http.StatusSeeOther)
		return
	}

	render(w, r, "collections-detail.html", detailPage{Collection: detail, Tasks: tasks})
}
