package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskdeck/internal/flash"
	"github.com/hitoshi/taskdeck/internal/model"
)

// TaskServiceInterface はタスクハンドラーが必要とするサービスインターフェース。
type TaskServiceInterface interface {
	List(ctx context.Context, collectionID int) ([]model.Task, error)
	Create(ctx context.Context, collectionID int, name string, isDone bool) error
	Toggle(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
}

// TaskHandler はタスク関連のHTTPハンドラー。
type TaskHandler struct {
	tasks TaskServiceInterface
}

// NewTaskHandler はTaskHandlerを生成する。
func NewTaskHandler(tasks TaskServiceInterface) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// addTaskPage はタスク追加ビューのデータ。
type addTaskPage struct {
	CollectionID int
}

// Update はタスクの完了フラグをトグルする。
// POST /task-update/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		flash.Set(w, model.SeverityError, "Invalid task ID.")
		redirectBack(w, r, "/collections")
		return
	}

	if err := h.tasks.Toggle(r.Context(), id); err != nil {
		var fe *model.FlashError
		if errors.As(err, &fe) && fe.Code == model.ErrCodeTaskNotFound {
			flash.Set(w, fe.Severity, fe.Message)
			http.Redirect(w, r, "/collections", http.StatusSeeOther)
			return
		}
		setErrorFlash(w, err, model.SeverityError, "Failed to update task. Please try again.")
		redirectBack(w, r, "/collections")
		return
	}

	flash.Set(w, model.SeveritySuccess, "Task updated successfully!")
	redirectBack(w, r, "/collections")
}

// Delete は指定IDのタスクを削除する。
// POST /task-delete/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		flash.Set(w, model.SeverityError, "Invalid task ID.")
		redirectBack(w, r, "/collections")
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		setErrorFlash(w, err, model.SeverityError, "Failed to delete task. Please try again.")
		redirectBack(w, r, "/collections")
		return
	}

	flash.Set(w, model.SeveritySuccess, "Task deleted successfully!")
	redirectBack(w, r, "/collections")
}

// AddView はタスク追加フォームを描画する。
// GET /collections-detail/add-task/{id}
func (h *TaskHandler) AddView(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		flash.Set(w, model.SeverityDanger, "Invalid collection ID.")
		http.Redirect(w, r, "/collections", http.StatusSeeOther)
		return
	}

	render(w, r, "add-task.html", addTaskPage{CollectionID: id})
}

// Add は指定コレクション配下にタスクを作成する。
// collections_idはフォーム値から取得し、欠落または整数に解釈できない
// 場合はストレージを呼ばずに拒否する。
// POST /collections-detail/add-task/{id}
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flash.Set(w, model.SeverityDanger, "Failed to add task. Please try again.")
		redirectBack(w, r, "/collections")
		return
	}

	name := r.PostFormValue("task")
	isDone := r.PostFormValue("is_done") == "true"
	collectionIDValue := r.PostFormValue("collections_id")

	if collectionIDValue == "" {
		flash.Set(w, model.SeverityDanger, "Collection ID is required.")
		redirectBack(w, r, "/collections")
		return
	}

	collectionID, err := strconv.Atoi(collectionIDValue)
	if err != nil {
		flash.Set(w, model.SeverityDanger, "Invalid collection ID.")
		redirectBack(w, r, "/collections")
		return
	}

	if err := h.tasks.Create(r.Context(), collectionID, name, isDone); err != nil {
		setErrorFlash(w, err, model.SeverityDanger, "Failed to add task. Please try again.")
		http.Redirect(w, r, "/collections-detail/add-task/"+strconv.Itoa(collectionID), http.StatusSeeOther)
		return
	}

	flash.Set(w, model.SeveritySuccess, "Task added successfully!")
	http.Redirect(w, r, "/collections-detail/"+strconv.Itoa(collectionID), http.StatusSeeOther)
}
