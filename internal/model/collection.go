package model

// Collection はタスクをまとめるユーザー所有のグループを表す。
type Collection struct {
	ID     int
	Name   string
	UserID int
}

// CollectionDetail はコレクションに所有者のユーザー名をJOINした表示用モデル。
type CollectionDetail struct {
	ID       int
	Name     string
	Username string
}
