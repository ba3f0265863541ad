package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskdeck/internal/middleware"
	"github.com/hitoshi/taskdeck/internal/model"
)

// --- モック定義 ---

type mockCollectionService struct {
	listFn   func(ctx context.Context, userID int) ([]model.Collection, error)
	createFn func(ctx context.Context, userID int, name string) error
	deleteFn func(ctx context.Context, id int) error
	detailFn func(ctx context.Context, id int) (*model.CollectionDetail, error)
}

func (m *mockCollectionService) List(ctx context.Context, userID int) ([]model.Collection, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockCollectionService) Create(ctx context.Context, userID int, name string) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, name)
	}
	return nil
}

func (m *mockCollectionService) Delete(ctx context.Context, id int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockCollectionService) Detail(ctx context.Context, id int) (*model.CollectionDetail, error) {
	if m.detailFn != nil {
		return m.detailFn(ctx, id)
	}
	return &model.CollectionDetail{}, nil
}

type mockTaskService struct {
	listFn   func(ctx context.Context, collectionID int) ([]model.Task, error)
	createFn func(ctx context.Context, collectionID int, name string, isDone bool) error
	toggleFn func(ctx context.Context, id int) error
	deleteFn func(ctx context.Context, id int) error
}

func (m *mockTaskService) List(ctx context.Context, collectionID int) ([]model.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, collectionID)
	}
	return nil, nil
}

func (m *mockTaskService) Create(ctx context.Context, collectionID int, name string, isDone bool) error {
	if m.createFn != nil {
		return m.createFn(ctx, collectionID, name, isDone)
	}
	return nil
}

func (m *mockTaskService) Toggle(ctx context.Context, id int) error {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, id)
	}
	return nil
}

func (m *mockTaskService) Delete(ctx context.Context, id int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// URLパラメータ付きルートをテストするためchiルーターにマウントする。
func mountCollectionRoutes(h *CollectionHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/collections", h.List)
	r.Get("/add-collection", h.AddView)
	r.Post("/add-collections", h.Add)
	r.Post("/delete-collections/{id}", h.Delete)
	r.Get("/collections-detail/{id}", h.Detail)
	return r
}

func authedRequest(req *http.Request) *http.Request {
	ctx := middleware.ContextWithSessionUser(req.Context(), model.SessionUser{ID: 1, Username: "alice", Email: "a@x.com"})
	return req.WithContext(ctx)
}

// --- テスト ---

func TestCollectionList_RendersOwnedCollections(t *testing.T) {
	var queriedUserID int
	svc := &mockCollectionService{
		listFn: func(_ context.Context, userID int) ([]model.Collection, error) {
			queriedUserID = userID
			return []model.Collection{{ID: 1, Name: "home", UserID: userID}}, nil
		},
	}
	router := mountCollectionRoutes(NewCollectionHandler(svc, &mockTaskService{}))

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/collections", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if queriedUserID != 1 {
		t.Errorf("queried userID = %d, want 1", queriedUserID)
	}
	if !strings.Contains(rec.Body.String(), "home") {
		t.Error("expected collection name in rendered page")
	}
}

func TestCollectionList_FetchFailure_FlashesAndRedirectsHome(t *testing.T) {
	svc := &mockCollectionService{
		listFn: func(_ context.Context, _ int) ([]model.Collection, error) {
			return nil, context.DeadlineExceeded
		},
	}
	router := mountCollectionRoutes(NewCollectionHandler(svc, &mockTaskService{}))

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/collections", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assertRedirect(t, rec, "/")
	f := popFlashCookie(t, rec)
	if f.Message != "Failed to fetch collections. Please try again." {
		t.Errorf("flash message = %q", f.Message)
	}
}

func TestCollectionAdd_CreatesForSessionUser(t *testing.T) {
	var gotUserID int
	var gotName string
	svc := &mockCollectionService{
		createFn: func(_ context.Context, userID int, name string) error {
			gotUserID = userID
			gotName = name
			return nil
		},
	}
	router := mountCollectionRoutes(NewCollectionHandler(svc, &mockTaskService{}))

	req := authedRequest(formRequest("/add-collections", map[string]string{"name": "groceries"}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assertRedirect(t, rec, "/collections")
	if gotUserID != 1 || gotName != "groceries" {
		t.Errorf("Create(%d, %q), want (1, %q)", gotUserID, gotName, "groceries")
	}

	f := popFlashCookie(t, rec)
	if f.Message != "Collection added successfully!" || f.Severity != model.SeveritySuccess {
		t.Errorf("flash = %+v", f)
	}
}

// IDが整数でない場合はサービスを呼ばずに拒否する
func TestCollectionDelete_NonNumericID_RejectedBeforeStorage(t *testing.T) {
	called := false
	svc := &mockCollectionService{
		deleteFn: func(_ context.Context, _ int) error {
			called = true
			return nil
		},
	}
	router := mountCollectionRoutes(NewCollectionHandler(svc, &mockTaskService{}))

	req := authedRequest(httptest.NewRequest(http.MethodPost, "/delete-collections/abc", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assertRedirect(t, rec, "/collections")
	if called {
		t.Error("service must not be called for a non-numeric id")
	}
	f := popFlashCookie(t, rec)
	if f.Message != "Invalid collection ID." {
		t.Errorf("flash message = %q", f.Message)
	}
}

func TestCollectionDelete_Success(t *testing.T) {
	var deletedID int
	svc := &mockCollectionService{
		deleteFn: func(_ context.Context, id int) error {
			deletedID = id
			return nil
		},
	}
	router := mountCollectionRoutes(NewCollectionHandler(svc, &mockTaskService{}))

	req := authedRequest(httptest.NewRequest(http.MethodPost, "/delete-collections/42", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assertRedirect(t, rec, "/collections")
	if deletedID != 42 {
		t.Errorf("deleted id = %d, want 42", deletedID)
	}
	f := popFlashCookie(t, rec)
	if f.Message != "Collection deleted successfully!" {
		t.Errorf("flash message = %q", f.Message)
	}
}

func TestCollectionDelete_NotFound_FlashesNotFound(t *testing.T) {
	svc := &mockCollectionService{
		deleteFn: func(_ context.Context, _ int) error {
			return model.NewCollectionNotFoundError()
		},
	}
	router := mountCollectionRoutes(NewCollectionHandler(svc, &mockTaskService{}))

	req := authedRequest(httptest.NewRequest(http.MethodPost, "/delete-collections/42", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assertRedirect(t, rec, "/collections")
	f := popFlashCookie(t, rec)
	if f.Message != "Collection not found." {
		t.Errorf("flash message = %q", f.Message)
	}
}

func TestCollectionDetail_RendersDetailAndTasks(t *testing.T) {
	collections := &mockCollectionService{
		detailFn: func(_ context.Context, id int) (*model.CollectionDetail, error) {
			return &model.CollectionDetail{ID: id, Name: "home", Username: "alice"}, nil
		},
	}
	tasks := &mockTaskService{
		listFn: func(_ context.Context, collectionID int) ([]model.Task, error) {
			return []model.Task{{ID: 1, Name: "buy milk", CollectionsID: collectionID}}, nil
		},
	}
	router := mountCollectionRoutes(NewCollectionHandler(collections, tasks))

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/collections-detail/3", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "home") {
		t.Error("expected collection name in rendered page")
	}
	if !strings.Contains(body, "buy milk") {
		t.Error("expected task name in rendered page")
	}
}

func TestCollectionDetail_NonNumericID_Rejected(t *testing.T) {
	called := false
	svc := &mockCollectionService{
		detailFn: func(_ context.Context, _ int) (*model.CollectionDetail, error) {
			called = true
			return nil, nil
		},
	}
	router := mountCollectionRoutes(NewCollectionHandler(svc, &mockTaskService{}))

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/collections-detail/abc", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assertRedirect(t, rec, "/collections")
	if called {
		t.Error("service must not be called for a non-numeric id")
	}
}

func TestCollectionDetail_NotFound_RedirectsToCollections(t *testing.T) {
	svc := &mockCollectionService{
		detailFn: func(_ context.Context, _ int) (*model.CollectionDetail, error) {
			return nil, model.NewCollectionNotFoundError()
		},
	}
	router := mountCollectionRoutes(NewCollectionHandler(svc, &mockTaskService{}))

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/collections-detail/404", nil))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assertRedirect(t, rec, "/collections")
	f := popFlashCookie(t, rec)
	if f.Message != "Collection not found." {
		t.Errorf("flash message = %q", f.Message)
	}
}
