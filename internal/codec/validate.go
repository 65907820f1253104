// Package codec はワイヤ表現とドメインモデルの双方向変換を実装する。
package codec

import (
	"fmt"
	"log/slog"

	"key-attributes-service/internal/domain"
	"key-attributes-service/internal/wire"
)

// decodeKeyType はワイヤコードを鍵種別に変換する。
func decodeKeyType(code int32) (domain.KeyType, error) {
	switch code {
	case wire.KeyTypeRsaKeypair:
		return domain.KeyTypeRsaKeypair, nil
	case wire.KeyTypeRsaPublicKey:
		return domain.KeyTypeRsaPublicKey, nil
	case wire.KeyTypeEccKeypair:
		return domain.KeyTypeEccKeypair, nil
	case wire.KeyTypeEccPublicKey:
		return domain.KeyTypeEccPublicKey, nil
	case wire.KeyTypeAes:
		return domain.KeyTypeAes, nil
	case wire.KeyTypeHmac:
		return domain.KeyTypeHmac, nil
	default:
		return 0, unknownCode("key_type", code)
	}
}

// decodeEccCurve はワイヤコードを楕円曲線に変換する。
// センチネル（コード0）は呼び出し側で処理済みであることを前提とする。
func decodeEccCurve(code int32) (domain.EccCurve, error) {
	switch code {
	case wire.EccCurveSecp160k1:
		return domain.EccCurveSecp160k1, nil
	case wire.EccCurveSecp192k1:
		return domain.EccCurveSecp192k1, nil
	case wire.EccCurveSecp224k1:
		return domain.EccCurveSecp224k1, nil
	case wire.EccCurveSecp256k1:
		return domain.EccCurveSecp256k1, nil
	case wire.EccCurveSecp160r1:
		return domain.EccCurveSecp160r1, nil
	case wire.EccCurveSecp192r1:
		return domain.EccCurveSecp192r1, nil
	case wire.EccCurveSecp224r1:
		return domain.EccCurveSecp224r1, nil
	case wire.EccCurveSecp256r1:
		return domain.EccCurveSecp256r1, nil
	case wire.EccCurveSecp384r1:
		return domain.EccCurveSecp384r1, nil
	case wire.EccCurveSecp521r1:
		return domain.EccCurveSecp521r1, nil
	default:
		return 0, unknownCode("ecc_curve", code)
	}
}

// decodeSignAlgorithm はワイヤコードを署名アルゴリズムに変換する。
func decodeSignAlgorithm(code int32) (domain.SignAlgorithm, error) {
	switch code {
	case wire.SignAlgorithmRsaPkcs1v15Sign:
		return domain.SignAlgorithmRsaPkcs1v15Sign, nil
	case wire.SignAlgorithmRsaPkcs1v15SignRaw:
		return domain.SignAlgorithmRsaPkcs1v15SignRaw, nil
	case wire.SignAlgorithmRsaPss:
		return domain.SignAlgorithmRsaPss, nil
	case wire.SignAlgorithmEcdsa:
		return domain.SignAlgorithmEcdsa, nil
	case wire.SignAlgorithmEcdsaAny:
		return domain.SignAlgorithmEcdsaAny, nil
	case wire.SignAlgorithmEd25519:
		return domain.SignAlgorithmEd25519, nil
	default:
		return 0, unknownCode("sign_algorithm", code)
	}
}

// decodeHashAlgorithm はワイヤコードをハッシュアルゴリズムに変換する。
// センチネル（コード0）は呼び出し側で処理済みであることを前提とする。
func decodeHashAlgorithm(code int32) (domain.HashAlgorithm, error) {
	switch code {
	case wire.HashAlgorithmMd5:
		return domain.HashAlgorithmMd5, nil
	case wire.HashAlgorithmRipemd160:
		return domain.HashAlgorithmRipemd160, nil
	case wire.HashAlgorithmSha1:
		return domain.HashAlgorithmSha1, nil
	case wire.HashAlgorithmSha224:
		return domain.HashAlgorithmSha224, nil
	case wire.HashAlgorithmSha256:
		return domain.HashAlgorithmSha256, nil
	case wire.HashAlgorithmSha384:
		return domain.HashAlgorithmSha384, nil
	case wire.HashAlgorithmSha512:
		return domain.HashAlgorithmSha512, nil
	case wire.HashAlgorithmSha3_256:
		return domain.HashAlgorithmSha3_256, nil
	case wire.HashAlgorithmSha3_512:
		return domain.HashAlgorithmSha3_512, nil
	default:
		return 0, unknownCode("hash_algorithm", code)
	}
}

// unknownCode は診断ログを出力し、ErrInvalidEncodingをラップしたエラーを返す。
// ログは事後調査用であり、返されるエラー種別には影響しない。
func unknownCode(field string, code int32) error {
	slog.Error("failed to decode enum code",
		"field", field,
		"code", code,
	)
	return fmt.Errorf("%w: unknown %s code %d", domain.ErrInvalidEncoding, field, code)
}
