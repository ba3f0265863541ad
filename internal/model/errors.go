// Package model はドメインモデルを定義する。
package model

import "fmt"

// フラッシュメッセージの重大度。
const (
	SeveritySuccess = "success"
	SeverityDanger  = "danger"
	SeverityError   = "error"
)

// FlashError はユーザーに提示可能なエラーを表す。
// リダイレクト先でフラッシュメッセージとして1回だけ表示される。
type FlashError struct {
	Code     string // エラーコード
	Message  string // ユーザー向けメッセージ
	Severity string // フラッシュの重大度: success, danger, error
}

// Error はerrorインターフェースを実装する。
func (e *FlashError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeDuplicateEmail      = "DUPLICATE_EMAIL"
	ErrCodeEmailNotFound       = "EMAIL_NOT_FOUND"
	ErrCodeWrongPassword       = "WRONG_PASSWORD"
	ErrCodeHashingFailure      = "HASHING_FAILURE"
	ErrCodeInvalidCollectionID = "INVALID_COLLECTION_ID"
	ErrCodeMissingCollectionID = "MISSING_COLLECTION_ID"
	ErrCodeCollectionNotFound  = "COLLECTION_NOT_FOUND"
	ErrCodeInvalidTaskID       = "INVALID_TASK_ID"
	ErrCodeTaskNotFound        = "TASK_NOT_FOUND"
)

// NewDuplicateEmailError はメールアドレス重複エラーを生成する。
func NewDuplicateEmailError() *FlashError {
	return &FlashError{
		Code:     ErrCodeDuplicateEmail,
		Message:  "Register Failed!",
		Severity: SeverityDanger,
	}
}

// NewEmailNotFoundError は該当メールアドレス不在のログイン失敗を生成する。
func NewEmailNotFoundError() *FlashError {
	return &FlashError{
		Code:     ErrCodeEmailNotFound,
		Message:  "Login Failed: Email is wrong!",
		Severity: SeverityDanger,
	}
}

// NewWrongPasswordError はパスワード不一致のログイン失敗を生成する。
func NewWrongPasswordError() *FlashError {
	return &FlashError{
		Code:     ErrCodeWrongPassword,
		Message:  "Login Failed: Password is wrong!",
		Severity: SeverityDanger,
	}
}

// NewHashingFailureError はログイン時のハッシュ照合の内部エラーを生成する。
// 回復可能な失敗として扱い、プロセスを落とすことはない。
func NewHashingFailureError() *FlashError {
	return &FlashError{
		Code:     ErrCodeHashingFailure,
		Message:  "Login Failed: Internal Server Error",
		Severity: SeverityDanger,
	}
}

// NewRegisterHashingFailureError は登録時のハッシュ化の内部エラーを生成する。
// ログイン時と同じコードだが、文言は登録フォームに合わせる。
func NewRegisterHashingFailureError() *FlashError {
	return &FlashError{
		Code:     ErrCodeHashingFailure,
		Message:  "Register Failed: Internal Server Error",
		Severity: SeverityDanger,
	}
}

// NewInvalidCollectionIDError は整数に解釈できないコレクションIDの
// バリデーションエラーを生成する。ストレージ呼び出し前に拒否される。
func NewInvalidCollectionIDError() *FlashError {
	return &FlashError{
		Code:     ErrCodeInvalidCollectionID,
		Message:  "Invalid collection ID.",
		Severity: SeverityDanger,
	}
}

// NewMissingCollectionIDError はコレクションID欠落のバリデーションエラーを生成する。
func NewMissingCollectionIDError() *FlashError {
	return &FlashError{
		Code:     ErrCodeMissingCollectionID,
		Message:  "Collection ID is required.",
		Severity: SeverityDanger,
	}
}

// NewCollectionNotFoundError はコレクション未検出エラーを生成する。
func NewCollectionNotFoundError() *FlashError {
	return &FlashError{
		Code:     ErrCodeCollectionNotFound,
		Message:  "Collection not found.",
		Severity: SeverityDanger,
	}
}

// NewInvalidTaskIDError は整数に解釈できないタスクIDのバリデーションエラーを生成する。
func NewInvalidTaskIDError() *FlashError {
	return &FlashError{
		Code:     ErrCodeInvalidTaskID,
		Message:  "Invalid task ID.",
		Severity: SeverityError,
	}
}

// NewTaskNotFoundError はタスク未検出エラーを生成する。
func NewTaskNotFoundError() *FlashError {
	return &FlashError{
		Code:     ErrCodeTaskNotFound,
		Message:  "Task not found",
		Severity: SeverityError,
	}
}
