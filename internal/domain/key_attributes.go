// Package domain はドメインモデルとビジネスルールを定義する。
package domain

import "time"

// KeyType は鍵の種別を表す。
type KeyType uint32

const (
	// KeyTypeRsaKeypair はRSA鍵ペアを表す。
	KeyTypeRsaKeypair KeyType = iota + 1
	// KeyTypeRsaPublicKey はRSA公開鍵を表す。
	KeyTypeRsaPublicKey
	// KeyTypeEccKeypair はECC鍵ペアを表す。
	KeyTypeEccKeypair
	// KeyTypeEccPublicKey はECC公開鍵を表す。
	KeyTypeEccPublicKey
	// KeyTypeAes はAES共通鍵を表す。
	KeyTypeAes
	// KeyTypeHmac はHMAC鍵を表す。
	KeyTypeHmac
)

// String は鍵種別の文字列表現を返す。
func (t KeyType) String() string {
	switch t {
	case KeyTypeRsaKeypair:
		return "rsa_keypair"
	case KeyTypeRsaPublicKey:
		return "rsa_public_key"
	case KeyTypeEccKeypair:
		return "ecc_keypair"
	case KeyTypeEccPublicKey:
		return "ecc_public_key"
	case KeyTypeAes:
		return "aes"
	case KeyTypeHmac:
		return "hmac"
	default:
		return "unknown"
	}
}

// EccCurve は楕円曲線の種別を表す。
type EccCurve uint32

const (
	EccCurveSecp160k1 EccCurve = iota + 1
	EccCurveSecp192k1
	EccCurveSecp224k1
	EccCurveSecp256k1
	EccCurveSecp160r1
	EccCurveSecp192r1
	EccCurveSecp224r1
	EccCurveSecp256r1
	EccCurveSecp384r1
	EccCurveSecp521r1
)

// String は曲線の文字列表現を返す。
func (c EccCurve) String() string {
	switch c {
	case EccCurveSecp160k1:
		return "secp160k1"
	case EccCurveSecp192k1:
		return "secp192k1"
	case EccCurveSecp224k1:
		return "secp224k1"
	case EccCurveSecp256k1:
		return "secp256k1"
	case EccCurveSecp160r1:
		return "secp160r1"
	case EccCurveSecp192r1:
		return "secp192r1"
	case EccCurveSecp224r1:
		return "secp224r1"
	case EccCurveSecp256r1:
		return "secp256r1"
	case EccCurveSecp384r1:
		return "secp384r1"
	case EccCurveSecp521r1:
		return "secp521r1"
	default:
		return "unknown"
	}
}

// SignAlgorithm は署名アルゴリズムを表す。
type SignAlgorithm uint32

const (
	SignAlgorithmRsaPkcs1v15Sign SignAlgorithm = iota + 1
	SignAlgorithmRsaPkcs1v15SignRaw
	SignAlgorithmRsaPss
	SignAlgorithmEcdsa
	SignAlgorithmEcdsaAny
	SignAlgorithmEd25519
)

// String は署名アルゴリズムの文字列表現を返す。
func (a SignAlgorithm) String() string {
	switch a {
	case SignAlgorithmRsaPkcs1v15Sign:
		return "rsa_pkcs1v15_sign"
	case SignAlgorithmRsaPkcs1v15SignRaw:
		return "rsa_pkcs1v15_sign_raw"
	case SignAlgorithmRsaPss:
		return "rsa_pss"
	case SignAlgorithmEcdsa:
		return "ecdsa"
	case SignAlgorithmEcdsaAny:
		return "ecdsa_any"
	case SignAlgorithmEd25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// HashAlgorithm はハッシュアルゴリズムを表す。
type HashAlgorithm uint32

const (
	HashAlgorithmMd5 HashAlgorithm = iota + 1
	HashAlgorithmRipemd160
	HashAlgorithmSha1
	HashAlgorithmSha224
	HashAlgorithmSha256
	HashAlgorithmSha384
	HashAlgorithmSha512
	HashAlgorithmSha3_256
	HashAlgorithmSha3_512
)

// String はハッシュアルゴリズムの文字列表現を返す。
func (a HashAlgorithm) String() string {
	switch a {
	case HashAlgorithmMd5:
		return "md5"
	case HashAlgorithmRipemd160:
		return "ripemd160"
	case HashAlgorithmSha1:
		return "sha1"
	case HashAlgorithmSha224:
		return "sha224"
	case HashAlgorithmSha256:
		return "sha256"
	case HashAlgorithmSha384:
		return "sha384"
	case HashAlgorithmSha512:
		return "sha512"
	case HashAlgorithmSha3_256:
		return "sha3_256"
	case HashAlgorithmSha3_512:
		return "sha3_512"
	default:
		return "unknown"
	}
}

// AlgorithmKind はアルゴリズムの操作種別を表す。
type AlgorithmKind uint32

const (
	// AlgorithmKindSign は署名操作を表す。現時点で構築可能な唯一の種別。
	AlgorithmKindSign AlgorithmKind = iota + 1
)

// String は操作種別の文字列表現を返す。
func (k AlgorithmKind) String() string {
	switch k {
	case AlgorithmKindSign:
		return "sign"
	default:
		return "unknown"
	}
}

// Algorithm は暗号操作の閉じたタグ付きユニオンを表す。
// コンストラクタ経由でのみ有効な値を構築でき、ゼロ値は不正な値として扱う。
type Algorithm struct {
	kind AlgorithmKind
	sign SignAlgorithm
	hash *HashAlgorithm
}

// NewSignAlgorithm は署名アルゴリズムのAlgorithmを構築する。
// hashがnilの場合は「ハッシュアルゴリズムなし」を表す。
func NewSignAlgorithm(sign SignAlgorithm, hash *HashAlgorithm) Algorithm {
	return Algorithm{
		kind: AlgorithmKindSign,
		sign: sign,
		hash: hash,
	}
}

// Kind はアルゴリズムの操作種別を返す。
func (a Algorithm) Kind() AlgorithmKind {
	return a.kind
}

// Sign は署名アルゴリズムとオプショナルなハッシュアルゴリズムを返す。
// KindがAlgorithmKindSignでない場合の値は未定義。
func (a Algorithm) Sign() (SignAlgorithm, *HashAlgorithm) {
	return a.sign, a.hash
}

// KeyAttributes は検証済みの鍵属性を表す。
// EccCurveはnilの場合「カーブなし」を表す。
type KeyAttributes struct {
	KeyType       KeyType
	EccCurve      *EccCurve
	Algorithm     Algorithm
	KeySize       uint32
	PermitExport  bool
	PermitEncrypt bool
	PermitDecrypt bool
	PermitSign    bool
	PermitVerify  bool
	PermitDerive  bool
}

// KeyRecord は登録済みの鍵属性レコードを表す。
type KeyRecord struct {
	ID         string
	Name       string
	Attributes KeyAttributes
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
