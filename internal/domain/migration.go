package domain

import "time"

// MigrationStatus はマイグレーションの適用状態。
type MigrationStatus string

const (
	MigrationStatusPending MigrationStatus = "pending"
	MigrationStatusApplied MigrationStatus = "applied"
)

// Migration はスキーママイグレーション1件を表すドメインモデル。
type Migration struct {
	Version   string          // ファイル名の接頭辞から取るバージョン（例: "001"）
	Name      string          // マイグレーション名
	AppliedAt *time.Time      // 適用日時。未適用ならnil
	FilePath  string          // SQLファイルのパス
	Status    MigrationStatus // 適用状態
}
