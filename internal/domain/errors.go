package domain

import "errors"

var (
	// ErrInvalidEncoding はワイヤ値が構造的に不正な場合のエラー。
	// 未知のenumコード、または必須のalgorithmサブメッセージの欠落を含む。
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrNotSupported はワイヤ値は整形式だが未対応のアルゴリズム種別を指す場合のエラー。
	ErrNotSupported = errors.New("not supported")

	// ErrKeyNotFound は指定されたIDの鍵属性レコードが存在しない場合のエラー。
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyAlreadyExists は同名の鍵属性レコードが既に存在する場合のエラー。
	ErrKeyAlreadyExists = errors.New("key already exists")

	// ErrInvalidKeyName は鍵名の形式が不正な場合のエラー。
	ErrInvalidKeyName = errors.New("invalid key name")

	// ErrSigningNotPermitted は署名が許可されていない鍵で署名を試みた場合のエラー。
	ErrSigningNotPermitted = errors.New("signing not permitted")

	// ErrMigrationFailed はマイグレーション実行時のエラー。
	ErrMigrationFailed = errors.New("migration failed")

	// ErrMigrationFileNotFound はマイグレーションファイルが見つからない場合のエラー。
	ErrMigrationFileNotFound = errors.New("migration file not found")

	// ErrInvalidMigrationFile はマイグレーションファイルのフォーマットが不正な場合のエラー。
	ErrInvalidMigrationFile = errors.New("invalid migration file")
)
