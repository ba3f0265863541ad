package model

// Task はちょうど1つのコレクションに属する完了可能な作業項目を表す。
type Task struct {
	ID            int
	Name          string
	IsDone        bool
	CollectionsID int
}
