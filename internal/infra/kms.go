package infra

import (
	"context"
	"fmt"
	"os"

	kms "cloud.google.com/go/kms/apiv1"
	kmspb "cloud.google.com/go/kms/apiv1/kmspb"
)

// KMSSigner はCloud KMSによる署名バックエンド。
// 鍵属性レコードのIDをキーリング配下のCryptoKey名にマッピングする。
type KMSSigner struct {
	client  *kms.KeyManagementClient
	keyRing string
}

// NewKMSSigner は環境変数KMS_KEY_RINGからキーリング名を取得してKMSSignerを生成する。
func NewKMSSigner(ctx context.Context) (*KMSSigner, error) {
	keyRing := os.Getenv("KMS_KEY_RING")
	if keyRing == "" {
		return nil, fmt.Errorf("KMS_KEY_RING environment variable is required")
	}

	client, err := kms.NewKeyManagementClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating KMS client: %w", err)
	}

	return &KMSSigner{
		client:  client,
		keyRing: keyRing,
	}, nil
}

// SignDigest はCloud KMSのAsymmetricSignでダイジェストに署名する。
// ダイジェスト長からハッシュ種別を判定し、既知の長さでない場合は生データとして渡す。
func (s *KMSSigner) SignDigest(ctx context.Context, keyID string, digest []byte) ([]byte, error) {
	req := &kmspb.AsymmetricSignRequest{
		Name: s.cryptoKeyVersionName(keyID),
	}

	switch len(digest) {
	case 32:
		req.Digest = &kmspb.Digest{Digest: &kmspb.Digest_Sha256{Sha256: digest}}
	case 48:
		req.Digest = &kmspb.Digest{Digest: &kmspb.Digest_Sha384{Sha384: digest}}
	case 64:
		req.Digest = &kmspb.Digest{Digest: &kmspb.Digest_Sha512{Sha512: digest}}
	default:
		req.Data = digest
	}

	resp, err := s.client.AsymmetricSign(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("signing: %w", err)
	}
	return resp.Signature, nil
}

// cryptoKeyVersionName はレコードIDからCryptoKeyVersionリソース名を組み立てる。
func (s *KMSSigner) cryptoKeyVersionName(keyID string) string {
	return fmt.Sprintf("%s/cryptoKeys/%s/cryptoKeyVersions/1", s.keyRing, keyID)
}

// Close はKMSクライアントを閉じる。
func (s *KMSSigner) Close() error {
	return s.client.Close()
}
