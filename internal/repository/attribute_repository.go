// Package repository はデータアクセス層の実装を提供する。
package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"key-attributes-service/internal/codec"
	"key-attributes-service/internal/domain"
	"key-attributes-service/internal/wire"
)

// KeyAttributeModel はgorm用のモデル定義。
// 属性はワイヤコードのまま保存し、読み出し時にcodecで再検証する。
type KeyAttributeModel struct {
	ID            string    `gorm:"type:char(36);primaryKey"`
	Name          string    `gorm:"type:varchar(64);not null;uniqueIndex:uk_name"`
	KeyType       int32     `gorm:"not null"`
	EccCurve      int32     `gorm:"not null;default:0"`
	SignAlgorithm int32     `gorm:"not null"`
	HashAlgorithm int32     `gorm:"not null;default:0"`
	KeySize       uint32    `gorm:"not null"`
	PermitExport  bool      `gorm:"not null;default:false"`
	PermitEncrypt bool      `gorm:"not null;default:false"`
	PermitDecrypt bool      `gorm:"not null;default:false"`
	PermitSign    bool      `gorm:"not null;default:false"`
	PermitVerify  bool      `gorm:"not null;default:false"`
	PermitDerive  bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"type:datetime(6);not null;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"type:datetime(6);not null;autoUpdateTime"`
}

// TableName はテーブル名を返す。
func (KeyAttributeModel) TableName() string {
	return "key_attributes"
}

// BeforeCreate はレコード作成前にUUIDを生成する。
func (m *KeyAttributeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// toDomain はモデルをドメインのKeyRecordに変換する。
// 保存済みのコードをワイヤ値として組み立て直し、codecの検証を通す。
func (m *KeyAttributeModel) toDomain() (*domain.KeyRecord, error) {
	attrs, err := codec.DecodeKeyAttributes(&wire.KeyAttributesProto{
		KeyType:  m.KeyType,
		EccCurve: m.EccCurve,
		Algorithm: &wire.AlgorithmProto{
			Sign: &wire.SignProto{
				SignAlgorithm: m.SignAlgorithm,
				HashAlgorithm: m.HashAlgorithm,
			},
		},
		KeySize:       m.KeySize,
		PermitExport:  m.PermitExport,
		PermitEncrypt: m.PermitEncrypt,
		PermitDecrypt: m.PermitDecrypt,
		PermitSign:    m.PermitSign,
		PermitVerify:  m.PermitVerify,
		PermitDerive:  m.PermitDerive,
	})
	if err != nil {
		return nil, err
	}

	return &domain.KeyRecord{
		ID:         m.ID,
		Name:       m.Name,
		Attributes: *attrs,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

// fromDomain はドメインのKeyRecordをモデルに変換する。
func fromDomain(record *domain.KeyRecord) (*KeyAttributeModel, error) {
	w, err := codec.EncodeKeyAttributes(&record.Attributes)
	if err != nil {
		return nil, err
	}

	return &KeyAttributeModel{
		ID:            record.ID,
		Name:          record.Name,
		KeyType:       w.KeyType,
		EccCurve:      w.EccCurve,
		SignAlgorithm: w.Algorithm.Sign.SignAlgorithm,
		HashAlgorithm: w.Algorithm.Sign.HashAlgorithm,
		KeySize:       w.KeySize,
		PermitExport:  w.PermitExport,
		PermitEncrypt: w.PermitEncrypt,
		PermitDecrypt: w.PermitDecrypt,
		PermitSign:    w.PermitSign,
		PermitVerify:  w.PermitVerify,
		PermitDerive:  w.PermitDerive,
	}, nil
}

// AttributeRepository は鍵属性レコードのリポジトリ。
type AttributeRepository struct {
	db *gorm.DB
}

// NewAttributeRepository は新しいAttributeRepositoryを生成する。
func NewAttributeRepository(db *gorm.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

// ExistsByName は指定された名前のレコードが存在するか確認する。
func (r *AttributeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&KeyAttributeModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		slog.ErrorContext(ctx, "failed to check key attributes existence",
			"operation", "exists_by_name",
			"name", name,
			"error", err,
		)
		return false, err
	}
	return count > 0, nil
}

// Create は鍵属性レコードを保存する。
// 保存後、生成されたIDとタイムスタンプをrecordに反映する。
func (r *AttributeRepository) Create(ctx context.Context, record *domain.KeyRecord) error {
	model, err := fromDomain(record)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		slog.ErrorContext(ctx, "failed to create key attributes",
			"operation", "create",
			"name", record.Name,
			"error", err,
		)
		return err
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	record.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID は指定されたIDのレコードを取得する。存在しない場合はnilを返す。
func (r *AttributeRepository) FindByID(ctx context.Context, id string) (*domain.KeyRecord, error) {
	var model KeyAttributeModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find key attributes",
			"operation", "find_by_id",
			"id", id,
			"error", err,
		)
		return nil, err
	}
	return model.toDomain()
}

// FindAll は全レコードを名前順に取得する。
func (r *AttributeRepository) FindAll(ctx context.Context) ([]*domain.KeyRecord, error) {
	var models []KeyAttributeModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		slog.ErrorContext(ctx, "failed to find all key attributes",
			"operation", "find_all",
			"error", err,
		)
		return nil, err
	}

	records := make([]*domain.KeyRecord, len(models))
	for i := range models {
		record, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		records[i] = record
	}
	return records, nil
}

// DeleteByID は指定されたIDのレコードを削除する。削除件数を返す。
func (r *AttributeRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&KeyAttributeModel{})
	if result.Error != nil {
		slog.ErrorContext(ctx, "failed to delete key attributes",
			"operation", "delete_by_id",
			"id", id,
			"error", result.Error,
		)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
