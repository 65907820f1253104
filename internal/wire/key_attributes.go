// Package wire は外部公開されているkey attributesプロトコルのワイヤ表現を定義する。
//
// このパッケージの構造体はprotobufスキーマを手書きでミラーしたもので、
// enumは生のint32コード、オプショナルなサブメッセージはポインタで表現する。
// コード0は「未指定/なし」として全enumで予約されている。
package wire

// KeyAttributesProto はKeyAttributesProtoメッセージをミラーする。
type KeyAttributesProto struct {
	KeyType       int32           `json:"key_type"`
	EccCurve      int32           `json:"ecc_curve"`
	Algorithm     *AlgorithmProto `json:"algorithm,omitempty"`
	KeySize       uint32          `json:"key_size"`
	PermitExport  bool            `json:"permit_export"`
	PermitEncrypt bool            `json:"permit_encrypt"`
	PermitDecrypt bool            `json:"permit_decrypt"`
	PermitSign    bool            `json:"permit_sign"`
	PermitVerify  bool            `json:"permit_verify"`
	PermitDerive  bool            `json:"permit_derive"`
}

// AlgorithmProto はalgorithm oneofをミラーする。
// 設定されるフィールドは高々1つ。どのフィールドも設定されていない、
// またはSign以外のフィールドが設定されている場合、このレイヤでは未対応の種別を表す。
type AlgorithmProto struct {
	Sign         *SignProto         `json:"sign,omitempty"`
	Cipher       *CipherProto       `json:"cipher,omitempty"`
	KeyAgreement *KeyAgreementProto `json:"key_agreement,omitempty"`
}

// SignProto は署名アルゴリズムのサブメッセージをミラーする。
// HashAlgorithm=0 は「ハッシュアルゴリズムなし」を表す。
type SignProto struct {
	SignAlgorithm int32 `json:"sign_algorithm"`
	HashAlgorithm int32 `json:"hash_algorithm"`
}

// CipherProto は共通鍵暗号のサブメッセージをミラーする（本レイヤでは未対応）。
type CipherProto struct {
	CipherAlgorithm int32 `json:"cipher_algorithm"`
}

// KeyAgreementProto は鍵共有のサブメッセージをミラーする（本レイヤでは未対応）。
type KeyAgreementProto struct {
	AgreementAlgorithm int32 `json:"agreement_algorithm"`
}

// KeyType のワイヤコード。
const (
	KeyTypeNone         int32 = 0
	KeyTypeRsaKeypair   int32 = 1
	KeyTypeRsaPublicKey int32 = 2
	KeyTypeEccKeypair   int32 = 3
	KeyTypeEccPublicKey int32 = 4
	KeyTypeAes          int32 = 5
	KeyTypeHmac         int32 = 6
)

// EccCurve のワイヤコード。0は「カーブなし」のセンチネル。
const (
	EccCurveNone      int32 = 0
	EccCurveSecp160k1 int32 = 1
	EccCurveSecp192k1 int32 = 2
	EccCurveSecp224k1 int32 = 3
	EccCurveSecp256k1 int32 = 4
	EccCurveSecp160r1 int32 = 5
	EccCurveSecp192r1 int32 = 6
	EccCurveSecp224r1 int32 = 7
	EccCurveSecp256r1 int32 = 8
	EccCurveSecp384r1 int32 = 9
	EccCurveSecp521r1 int32 = 10
)

// SignAlgorithm のワイヤコード。
const (
	SignAlgorithmNone               int32 = 0
	SignAlgorithmRsaPkcs1v15Sign    int32 = 1
	SignAlgorithmRsaPkcs1v15SignRaw int32 = 2
	SignAlgorithmRsaPss             int32 = 3
	SignAlgorithmEcdsa              int32 = 4
	SignAlgorithmEcdsaAny           int32 = 5
	SignAlgorithmEd25519            int32 = 6
)

// HashAlgorithm のワイヤコード。0は「ハッシュアルゴリズムなし」のセンチネル。
const (
	HashAlgorithmNone      int32 = 0
	HashAlgorithmMd5       int32 = 1
	HashAlgorithmRipemd160 int32 = 2
	HashAlgorithmSha1      int32 = 3
	HashAlgorithmSha224    int32 = 4
	HashAlgorithmSha256    int32 = 5
	HashAlgorithmSha384    int32 = 6
	HashAlgorithmSha512    int32 = 7
	HashAlgorithmSha3_256  int32 = 8
	HashAlgorithmSha3_512  int32 = 9
)
