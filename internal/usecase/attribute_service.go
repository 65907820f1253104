// Package usecase はアプリケーションのユースケースを実装する。
package usecase

import (
	"context"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"key-attributes-service/internal/codec"
	"key-attributes-service/internal/domain"
	"key-attributes-service/internal/wire"
)

// AttributeRepository はデータアクセスのインターフェース。
type AttributeRepository interface {
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, record *domain.KeyRecord) error
	FindByID(ctx context.Context, id string) (*domain.KeyRecord, error)
	FindAll(ctx context.Context) ([]*domain.KeyRecord, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// Signer は署名バックエンドのインターフェース。
type Signer interface {
	SignDigest(ctx context.Context, keyID string, digest []byte) ([]byte, error)
}

// AttributeService は鍵属性レコードに関するビジネスロジックを提供する。
// ワイヤ値の検証・変換はcodecに委譲し、検証済みのドメイン値のみを扱う。
type AttributeService struct {
	repo   AttributeRepository
	signer Signer
}

// NewAttributeService は新しいAttributeServiceを生成する。
func NewAttributeService(repo AttributeRepository, signer Signer) *AttributeService {
	return &AttributeService{
		repo:   repo,
		signer: signer,
	}
}

// RegisterKey はワイヤ値を検証し、鍵属性レコードとして登録する。
func (s *AttributeService) RegisterKey(ctx context.Context, name string, attrs *wire.KeyAttributesProto) (*domain.KeyRecord, error) {
	decoded, err := codec.DecodeKeyAttributes(attrs)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("checking existing key attributes: %w", err)
	}
	if exists {
		return nil, domain.ErrKeyAlreadyExists
	}

	record := &domain.KeyRecord{
		Name:       name,
		Attributes: *decoded,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("creating key attributes: %w", err)
	}

	return record, nil
}

// GetKey は指定されたIDの鍵属性レコードを取得する。
func (s *AttributeService) GetKey(ctx context.Context, id string) (*domain.KeyRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding key attributes: %w", err)
	}
	if record == nil {
		return nil, domain.ErrKeyNotFound
	}
	return record, nil
}

// ListKeys は全鍵属性レコードを取得する。
func (s *AttributeService) ListKeys(ctx context.Context) ([]*domain.KeyRecord, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("finding key attributes: %w", err)
	}
	return records, nil
}

// DeleteKey は指定されたIDの鍵属性レコードを削除する。
func (s *AttributeService) DeleteKey(ctx context.Context, id string) error {
	affected, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting key attributes: %w", err)
	}
	if affected == 0 {
		return domain.ErrKeyNotFound
	}
	return nil
}

// Sign は指定された鍵でメッセージに署名する。
// 鍵にPermitSignがない場合はErrSigningNotPermittedを返す。
func (s *AttributeService) Sign(ctx context.Context, id string, message []byte) ([]byte, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding key attributes: %w", err)
	}
	if record == nil {
		return nil, domain.ErrKeyNotFound
	}
	if !record.Attributes.PermitSign {
		return nil, domain.ErrSigningNotPermitted
	}
	if record.Attributes.Algorithm.Kind() != domain.AlgorithmKindSign {
		return nil, domain.ErrNotSupported
	}

	_, hashAlg := record.Attributes.Algorithm.Sign()
	digest, err := hashMessage(hashAlg, message)
	if err != nil {
		return nil, err
	}

	signature, err := s.signer.SignDigest(ctx, record.ID, digest)
	if err != nil {
		return nil, fmt.Errorf("signing digest: %w", err)
	}
	return signature, nil
}

// hashMessage はレコードのハッシュアルゴリズムでメッセージのダイジェストを計算する。
// ハッシュアルゴリズムなしの場合はメッセージをそのまま渡す（raw署名）。
func hashMessage(hashAlg *domain.HashAlgorithm, message []byte) ([]byte, error) {
	if hashAlg == nil {
		return message, nil
	}

	switch *hashAlg {
	case domain.HashAlgorithmSha256:
		digest := sha256.Sum256(message)
		return digest[:], nil
	case domain.HashAlgorithmSha384:
		digest := sha512.Sum384(message)
		return digest[:], nil
	case domain.HashAlgorithmSha512:
		digest := sha512.Sum512(message)
		return digest[:], nil
	default:
		// 署名バックエンドが受け付けるダイジェストのみ対応
		return nil, fmt.Errorf("%w: hash algorithm %s for signing", domain.ErrNotSupported, *hashAlg)
	}
}
