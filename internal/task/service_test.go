package task

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/taskdeck/internal/model"
)

// --- モック定義 ---

// inMemoryTaskRepo はトグルの読み書きを検証するための簡易リポジトリ。
type inMemoryTaskRepo struct {
	tasks  map[int]*model.Task
	nextID int
}

func newInMemoryTaskRepo() *inMemoryTaskRepo {
	return &inMemoryTaskRepo{tasks: make(map[int]*model.Task), nextID: 1}
}

func (r *inMemoryTaskRepo) ListByCollectionID(_ context.Context, collectionID int) ([]model.Task, error) {
	var out []model.Task
	for _, task := range r.tasks {
		if task.CollectionsID == collectionID {
			out = append(out, *task)
		}
	}
	return out, nil
}

func (r *inMemoryTaskRepo) Create(_ context.Context, name string, isDone bool, collectionID int) error {
	r.tasks[r.nextID] = &model.Task{ID: r.nextID, Name: name, IsDone: isDone, CollectionsID: collectionID}
	r.nextID++
	return nil
}

func (r *inMemoryTaskRepo) FindByID(_ context.Context, id int) (*model.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (r *inMemoryTaskRepo) UpdateIsDone(_ context.Context, id int, isDone bool) error {
	if task, ok := r.tasks[id]; ok {
		task.IsDone = isDone
	}
	return nil
}

func (r *inMemoryTaskRepo) DeleteByID(_ context.Context, id int) error {
	delete(r.tasks, id)
	return nil
}

type failingTaskRepo struct {
	inMemoryTaskRepo
	err error
}

func (r *failingTaskRepo) FindByID(_ context.Context, _ int) (*model.Task, error) {
	return nil, r.err
}

// --- テスト ---

func TestToggle_FlipsIsDone(t *testing.T) {
	repo := newInMemoryTaskRepo()
	svc := NewService(repo)

	if err := repo.Create(context.Background(), "write tests", false, 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.Toggle(context.Background(), 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	task, _ := repo.FindByID(context.Background(), 1)
	if !task.IsDone {
		t.Error("expected IsDone = true after first toggle")
	}
}

// 2回連続のトグルで元の値に戻ること（冪等性の確認）
func TestToggle_TwiceReturnsToOriginal(t *testing.T) {
	repo := newInMemoryTaskRepo()
	svc := NewService(repo)

	if err := repo.Create(context.Background(), "write tests", false, 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.Toggle(context.Background(), 1); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if err := svc.Toggle(context.Background(), 1); err != nil {
		t.Fatalf("second toggle: %v", err)
	}

	task, _ := repo.FindByID(context.Background(), 1)
	if task.IsDone {
		t.Error("expected IsDone to return to false after two toggles")
	}
}

func TestToggle_NotFound_ReturnsFlashError(t *testing.T) {
	svc := NewService(newInMemoryTaskRepo())

	err := svc.Toggle(context.Background(), 404)
	var fe *model.FlashError
	if !errors.As(err, &fe) || fe.Code != model.ErrCodeTaskNotFound {
		t.Errorf("expected TASK_NOT_FOUND, got %v", err)
	}
}

func TestToggle_StorageError_IsWrapped(t *testing.T) {
	repo := &failingTaskRepo{err: context.DeadlineExceeded}
	svc := NewService(repo)

	err := svc.Toggle(context.Background(), 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped storage error, got %v", err)
	}
}

func TestCreate_PersistsUnderCollection(t *testing.T) {
	repo := newInMemoryTaskRepo()
	svc := NewService(repo)

	if err := svc.Create(context.Background(), 5, "buy milk", true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tasks, _ := repo.ListByCollectionID(context.Background(), 5)
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(tasks))
	}
	if tasks[0].Name != "buy milk" || !tasks[0].IsDone {
		t.Errorf("task = %+v", tasks[0])
	}
}

func TestDelete_RemovesTask(t *testing.T) {
	repo := newInMemoryTaskRepo()
	svc := NewService(repo)

	if err := repo.Create(context.Background(), "x", false, 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	task, _ := repo.FindByID(context.Background(), 1)
	if task != nil {
		t.Error("expected task to be gone after Delete")
	}
}

func TestList_ReturnsOnlyCollectionTasks(t *testing.T) {
	repo := newInMemoryTaskRepo()
	svc := NewService(repo)

	_ = repo.Create(context.Background(), "a", false, 1)
	_ = repo.Create(context.Background(), "b", false, 2)

	tasks, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "a" {
		t.Errorf("tasks = %+v, want only collection 1 tasks", tasks)
	}
}
