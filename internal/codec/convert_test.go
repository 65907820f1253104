package codec

import (
	"errors"
	"reflect"
	"testing"

	"key-attributes-service/internal/domain"
	"key-attributes-service/internal/wire"
)

// testWireAttributes は全フィールドが設定された整形式のワイヤ値を返す。
func testWireAttributes() *wire.KeyAttributesProto {
	return &wire.KeyAttributesProto{
		KeyType:  wire.KeyTypeRsaKeypair,
		EccCurve: wire.EccCurveSecp160k1,
		Algorithm: &wire.AlgorithmProto{
			Sign: &wire.SignProto{
				SignAlgorithm: wire.SignAlgorithmRsaPkcs1v15Sign,
				HashAlgorithm: wire.HashAlgorithmSha1,
			},
		},
		KeySize:       1024,
		PermitExport:  true,
		PermitEncrypt: true,
		PermitDecrypt: true,
		PermitSign:    true,
		PermitVerify:  true,
		PermitDerive:  true,
	}
}

func TestDecodeKeyAttributes_Success(t *testing.T) {
	attrs, err := DecodeKeyAttributes(testWireAttributes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if attrs.KeyType != domain.KeyTypeRsaKeypair {
		t.Errorf("want key_type rsa_keypair, got %s", attrs.KeyType)
	}
	if attrs.EccCurve == nil || *attrs.EccCurve != domain.EccCurveSecp160k1 {
		t.Errorf("want ecc_curve secp160k1, got %v", attrs.EccCurve)
	}
	if attrs.Algorithm.Kind() != domain.AlgorithmKindSign {
		t.Errorf("want algorithm kind sign, got %s", attrs.Algorithm.Kind())
	}
	signAlg, hashAlg := attrs.Algorithm.Sign()
	if signAlg != domain.SignAlgorithmRsaPkcs1v15Sign {
		t.Errorf("want sign_algorithm rsa_pkcs1v15_sign, got %s", signAlg)
	}
	if hashAlg == nil || *hashAlg != domain.HashAlgorithmSha1 {
		t.Errorf("want hash_algorithm sha1, got %v", hashAlg)
	}
	if attrs.KeySize != 1024 {
		t.Errorf("want key_size 1024, got %d", attrs.KeySize)
	}
	if !attrs.PermitExport || !attrs.PermitEncrypt || !attrs.PermitDecrypt ||
		!attrs.PermitSign || !attrs.PermitVerify || !attrs.PermitDerive {
		t.Error("want all permissions true")
	}
}

func TestDecodeKeyAttributes_NoEccCurve(t *testing.T) {
	w := testWireAttributes()
	w.EccCurve = wire.EccCurveNone

	attrs, err := DecodeKeyAttributes(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attrs.EccCurve != nil {
		t.Errorf("want ecc_curve nil, got %v", *attrs.EccCurve)
	}
}

func TestDecodeKeyAttributes_NoHashAlgorithm(t *testing.T) {
	w := testWireAttributes()
	w.Algorithm.Sign.HashAlgorithm = wire.HashAlgorithmNone

	attrs, err := DecodeKeyAttributes(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, hashAlg := attrs.Algorithm.Sign()
	if hashAlg != nil {
		t.Errorf("want hash_algorithm nil, got %v", *hashAlg)
	}
}

func TestDecodeKeyAttributes_UnknownCodes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(w *wire.KeyAttributesProto)
	}{
		{"key_type", func(w *wire.KeyAttributesProto) { w.KeyType = 99 }},
		{"key_type_zero", func(w *wire.KeyAttributesProto) { w.KeyType = 0 }},
		{"ecc_curve", func(w *wire.KeyAttributesProto) { w.EccCurve = 99 }},
		{"sign_algorithm", func(w *wire.KeyAttributesProto) { w.Algorithm.Sign.SignAlgorithm = 99 }},
		{"hash_algorithm", func(w *wire.KeyAttributesProto) { w.Algorithm.Sign.HashAlgorithm = 99 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWireAttributes()
			tt.mutate(w)
			_, err := DecodeKeyAttributes(w)
			if !errors.Is(err, domain.ErrInvalidEncoding) {
				t.Errorf("want ErrInvalidEncoding, got %v", err)
			}
		})
	}
}

func TestDecodeKeyAttributes_MissingAlgorithm(t *testing.T) {
	w := testWireAttributes()
	w.Algorithm = nil

	_, err := DecodeKeyAttributes(w)
	if !errors.Is(err, domain.ErrInvalidEncoding) {
		t.Errorf("want ErrInvalidEncoding, got %v", err)
	}
}

func TestDecodeKeyAttributes_UnsupportedAlgorithm(t *testing.T) {
	tests := []struct {
		name      string
		algorithm *wire.AlgorithmProto
	}{
		{"cipher", &wire.AlgorithmProto{Cipher: &wire.CipherProto{CipherAlgorithm: 1}}},
		{"key_agreement", &wire.AlgorithmProto{KeyAgreement: &wire.KeyAgreementProto{AgreementAlgorithm: 1}}},
		{"empty_oneof", &wire.AlgorithmProto{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testWireAttributes()
			w.Algorithm = tt.algorithm
			_, err := DecodeKeyAttributes(w)
			if !errors.Is(err, domain.ErrNotSupported) {
				t.Errorf("want ErrNotSupported, got %v", err)
			}
		})
	}
}

func TestEncodeKeyAttributes_Success(t *testing.T) {
	curve := domain.EccCurveSecp160k1
	hash := domain.HashAlgorithmSha1
	attrs := &domain.KeyAttributes{
		KeyType:       domain.KeyTypeRsaKeypair,
		EccCurve:      &curve,
		Algorithm:     domain.NewSignAlgorithm(domain.SignAlgorithmRsaPkcs1v15Sign, &hash),
		KeySize:       1024,
		PermitExport:  true,
		PermitEncrypt: true,
		PermitDecrypt: true,
		PermitSign:    true,
		PermitVerify:  true,
		PermitDerive:  true,
	}

	w, err := EncodeKeyAttributes(attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(w, testWireAttributes()) {
		t.Errorf("want %+v, got %+v", testWireAttributes(), w)
	}
}

func TestEncodeKeyAttributes_NoCurveNoHash(t *testing.T) {
	attrs := &domain.KeyAttributes{
		KeyType:   domain.KeyTypeAes,
		Algorithm: domain.NewSignAlgorithm(domain.SignAlgorithmEd25519, nil),
		KeySize:   256,
	}

	w, err := EncodeKeyAttributes(attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.EccCurve != wire.EccCurveNone {
		t.Errorf("want ecc_curve sentinel 0, got %d", w.EccCurve)
	}
	if w.Algorithm.Sign.HashAlgorithm != wire.HashAlgorithmNone {
		t.Errorf("want hash_algorithm sentinel 0, got %d", w.Algorithm.Sign.HashAlgorithm)
	}
}

func TestEncodeKeyAttributes_UnsupportedAlgorithm(t *testing.T) {
	// ゼロ値のAlgorithmは構築不可能な種別を表す
	attrs := &domain.KeyAttributes{
		KeyType: domain.KeyTypeRsaKeypair,
		KeySize: 1024,
	}

	_, err := EncodeKeyAttributes(attrs)
	if !errors.Is(err, domain.ErrNotSupported) {
		t.Errorf("want ErrNotSupported, got %v", err)
	}
}

func TestKeyAttributes_RoundTrip(t *testing.T) {
	curve := domain.EccCurveSecp256r1
	hash := domain.HashAlgorithmSha256
	tests := []struct {
		name  string
		attrs *domain.KeyAttributes
	}{
		{
			name: "full",
			attrs: &domain.KeyAttributes{
				KeyType:      domain.KeyTypeEccKeypair,
				EccCurve:     &curve,
				Algorithm:    domain.NewSignAlgorithm(domain.SignAlgorithmEcdsa, &hash),
				KeySize:      256,
				PermitSign:   true,
				PermitVerify: true,
			},
		},
		{
			name: "no_curve_no_hash",
			attrs: &domain.KeyAttributes{
				KeyType:      domain.KeyTypeRsaKeypair,
				Algorithm:    domain.NewSignAlgorithm(domain.SignAlgorithmRsaPkcs1v15SignRaw, nil),
				KeySize:      2048,
				PermitExport: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := EncodeKeyAttributes(tt.attrs)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			decoded, err := DecodeKeyAttributes(w)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if !reflect.DeepEqual(decoded, tt.attrs) {
				t.Errorf("round trip mismatch: want %+v, got %+v", tt.attrs, decoded)
			}
		})
	}
}
