package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"key-attributes-service/internal/domain"
	"key-attributes-service/internal/wire"
)

// mockAttributeRepository はテスト用のモックリポジトリ。
type mockAttributeRepository struct {
	existsResult   bool
	existsErr      error
	createErr      error
	findByIDResult *domain.KeyRecord
	findByIDErr    error
	findAllResult  []*domain.KeyRecord
	findAllErr     error
	deleteAffected int64
	deleteErr      error
	createdRecords []*domain.KeyRecord
}

func (m *mockAttributeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.existsResult, m.existsErr
}

func (m *mockAttributeRepository) Create(ctx context.Context, record *domain.KeyRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record.ID = "generated-id"
	record.CreatedAt = time.Now()
	m.createdRecords = append(m.createdRecords, record)
	return nil
}

func (m *mockAttributeRepository) FindByID(ctx context.Context, id string) (*domain.KeyRecord, error) {
	return m.findByIDResult, m.findByIDErr
}

func (m *mockAttributeRepository) FindAll(ctx context.Context) ([]*domain.KeyRecord, error) {
	return m.findAllResult, m.findAllErr
}

func (m *mockAttributeRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	return m.deleteAffected, m.deleteErr
}

// mockSigner はテスト用のモック署名バックエンド。
type mockSigner struct {
	signResult []byte
	signErr    error
	digests    [][]byte
}

func (m *mockSigner) SignDigest(ctx context.Context, keyID string, digest []byte) ([]byte, error) {
	if m.signErr != nil {
		return nil, m.signErr
	}
	m.digests = append(m.digests, digest)
	if m.signResult != nil {
		return m.signResult, nil
	}
	return []byte("signature"), nil
}

// testSignWire は整形式の署名鍵用ワイヤ値を返す。
func testSignWire() *wire.KeyAttributesProto {
	return &wire.KeyAttributesProto{
		KeyType: wire.KeyTypeRsaKeypair,
		Algorithm: &wire.AlgorithmProto{
			Sign: &wire.SignProto{
				SignAlgorithm: wire.SignAlgorithmRsaPkcs1v15Sign,
				HashAlgorithm: wire.HashAlgorithmSha256,
			},
		},
		KeySize:    2048,
		PermitSign: true,
	}
}

// signRecord は署名可能な鍵属性レコードを返す。
func signRecord() *domain.KeyRecord {
	hash := domain.HashAlgorithmSha256
	return &domain.KeyRecord{
		ID:   "key-001",
		Name: "signing-key",
		Attributes: domain.KeyAttributes{
			KeyType:    domain.KeyTypeRsaKeypair,
			Algorithm:  domain.NewSignAlgorithm(domain.SignAlgorithmRsaPkcs1v15Sign, &hash),
			KeySize:    2048,
			PermitSign: true,
		},
	}
}

func TestAttributeService_RegisterKey_Success(t *testing.T) {
	repo := &mockAttributeRepository{existsResult: false}
	svc := NewAttributeService(repo, &mockSigner{})

	record, err := svc.RegisterKey(context.Background(), "signing-key", testSignWire())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.ID != "generated-id" {
		t.Errorf("want id generated-id, got %s", record.ID)
	}
	if record.Name != "signing-key" {
		t.Errorf("want name signing-key, got %s", record.Name)
	}
	if record.Attributes.KeyType != domain.KeyTypeRsaKeypair {
		t.Errorf("want key_type rsa_keypair, got %s", record.Attributes.KeyType)
	}
	if len(repo.createdRecords) != 1 {
		t.Errorf("want 1 created record, got %d", len(repo.createdRecords))
	}
}

func TestAttributeService_RegisterKey_InvalidEncoding(t *testing.T) {
	repo := &mockAttributeRepository{}
	svc := NewAttributeService(repo, &mockSigner{})

	w := testSignWire()
	w.KeyType = 99
	_, err := svc.RegisterKey(context.Background(), "bad-key", w)
	if !errors.Is(err, domain.ErrInvalidEncoding) {
		t.Errorf("want ErrInvalidEncoding, got %v", err)
	}
	if len(repo.createdRecords) != 0 {
		t.Error("invalid wire value must not be persisted")
	}
}

func TestAttributeService_RegisterKey_NotSupported(t *testing.T) {
	repo := &mockAttributeRepository{}
	svc := NewAttributeService(repo, &mockSigner{})

	w := testSignWire()
	w.Algorithm = &wire.AlgorithmProto{Cipher: &wire.CipherProto{CipherAlgorithm: 1}}
	_, err := svc.RegisterKey(context.Background(), "cipher-key", w)
	if !errors.Is(err, domain.ErrNotSupported) {
		t.Errorf("want ErrNotSupported, got %v", err)
	}
}

func TestAttributeService_RegisterKey_AlreadyExists(t *testing.T) {
	repo := &mockAttributeRepository{existsResult: true}
	svc := NewAttributeService(repo, &mockSigner{})

	_, err := svc.RegisterKey(context.Background(), "signing-key", testSignWire())
	if !errors.Is(err, domain.ErrKeyAlreadyExists) {
		t.Errorf("want ErrKeyAlreadyExists, got %v", err)
	}
}

func TestAttributeService_GetKey_Success(t *testing.T) {
	repo := &mockAttributeRepository{findByIDResult: signRecord()}
	svc := NewAttributeService(repo, &mockSigner{})

	record, err := svc.GetKey(context.Background(), "key-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Name != "signing-key" {
		t.Errorf("want name signing-key, got %s", record.Name)
	}
}

func TestAttributeService_GetKey_NotFound(t *testing.T) {
	repo := &mockAttributeRepository{findByIDResult: nil}
	svc := NewAttributeService(repo, &mockSigner{})

	_, err := svc.GetKey(context.Background(), "missing")
	if !errors.Is(err, domain.ErrKeyNotFound) {
		t.Errorf("want ErrKeyNotFound, got %v", err)
	}
}

func TestAttributeService_DeleteKey_Success(t *testing.T) {
	repo := &mockAttributeRepository{deleteAffected: 1}
	svc := NewAttributeService(repo, &mockSigner{})

	if err := svc.DeleteKey(context.Background(), "key-001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAttributeService_DeleteKey_NotFound(t *testing.T) {
	repo := &mockAttributeRepository{deleteAffected: 0}
	svc := NewAttributeService(repo, &mockSigner{})

	err := svc.DeleteKey(context.Background(), "missing")
	if !errors.Is(err, domain.ErrKeyNotFound) {
		t.Errorf("want ErrKeyNotFound, got %v", err)
	}
}

func TestAttributeService_Sign_Success(t *testing.T) {
	repo := &mockAttributeRepository{findByIDResult: signRecord()}
	signer := &mockSigner{signResult: []byte("signed-bytes")}
	svc := NewAttributeService(repo, signer)

	signature, err := svc.Sign(context.Background(), "key-001", []byte("message"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(signature) != "signed-bytes" {
		t.Errorf("want signature signed-bytes, got %s", string(signature))
	}
	// SHA-256ダイジェストが署名バックエンドに渡る
	if len(signer.digests) != 1 || len(signer.digests[0]) != 32 {
		t.Errorf("want one 32-byte digest, got %v", signer.digests)
	}
}

func TestAttributeService_Sign_NotPermitted(t *testing.T) {
	record := signRecord()
	record.Attributes.PermitSign = false
	repo := &mockAttributeRepository{findByIDResult: record}
	svc := NewAttributeService(repo, &mockSigner{})

	_, err := svc.Sign(context.Background(), "key-001", []byte("message"))
	if !errors.Is(err, domain.ErrSigningNotPermitted) {
		t.Errorf("want ErrSigningNotPermitted, got %v", err)
	}
}

func TestAttributeService_Sign_UnsupportedHash(t *testing.T) {
	record := signRecord()
	hash := domain.HashAlgorithmMd5
	record.Attributes.Algorithm = domain.NewSignAlgorithm(domain.SignAlgorithmRsaPkcs1v15Sign, &hash)
	repo := &mockAttributeRepository{findByIDResult: record}
	svc := NewAttributeService(repo, &mockSigner{})

	_, err := svc.Sign(context.Background(), "key-001", []byte("message"))
	if !errors.Is(err, domain.ErrNotSupported) {
		t.Errorf("want ErrNotSupported, got %v", err)
	}
}

func TestAttributeService_Sign_RawMessage(t *testing.T) {
	record := signRecord()
	record.Attributes.Algorithm = domain.NewSignAlgorithm(domain.SignAlgorithmEd25519, nil)
	repo := &mockAttributeRepository{findByIDResult: record}
	signer := &mockSigner{}
	svc := NewAttributeService(repo, signer)

	_, err := svc.Sign(context.Background(), "key-001", []byte("raw-message"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// ハッシュなしの場合はメッセージをそのまま渡す
	if string(signer.digests[0]) != "raw-message" {
		t.Errorf("want raw message passthrough, got %s", string(signer.digests[0]))
	}
}
