package codec

import (
	"fmt"
	"log/slog"

	"key-attributes-service/internal/domain"
	"key-attributes-service/internal/wire"
)

// DecodeKeyAttributes はワイヤ値を検証してドメインのKeyAttributesに変換する。
// 最初の失敗で変換全体を中断し、部分的な結果は返さない。
func DecodeKeyAttributes(attrs *wire.KeyAttributesProto) (*domain.KeyAttributes, error) {
	keyType, err := decodeKeyType(attrs.KeyType)
	if err != nil {
		return nil, err
	}

	var eccCurve *domain.EccCurve
	if attrs.EccCurve != wire.EccCurveNone {
		curve, err := decodeEccCurve(attrs.EccCurve)
		if err != nil {
			return nil, err
		}
		eccCurve = &curve
	}

	if attrs.Algorithm == nil {
		slog.Error("algorithm sub-message was empty")
		return nil, fmt.Errorf("%w: algorithm is required", domain.ErrInvalidEncoding)
	}
	algorithm, err := decodeAlgorithm(attrs.Algorithm)
	if err != nil {
		return nil, err
	}

	return &domain.KeyAttributes{
		KeyType:       keyType,
		EccCurve:      eccCurve,
		Algorithm:     algorithm,
		KeySize:       attrs.KeySize,
		PermitExport:  attrs.PermitExport,
		PermitEncrypt: attrs.PermitEncrypt,
		PermitDecrypt: attrs.PermitDecrypt,
		PermitSign:    attrs.PermitSign,
		PermitVerify:  attrs.PermitVerify,
		PermitDerive:  attrs.PermitDerive,
	}, nil
}

// EncodeKeyAttributes はドメインのKeyAttributesをワイヤ値に変換する。
// 未対応のアルゴリズム種別を除き、表現可能な全ドメイン値に対して成功する。
func EncodeKeyAttributes(attrs *domain.KeyAttributes) (*wire.KeyAttributesProto, error) {
	algorithm, err := encodeAlgorithm(attrs.Algorithm)
	if err != nil {
		return nil, err
	}

	eccCurve := wire.EccCurveNone
	if attrs.EccCurve != nil {
		eccCurve = int32(*attrs.EccCurve)
	}

	return &wire.KeyAttributesProto{
		KeyType:       int32(attrs.KeyType),
		EccCurve:      eccCurve,
		Algorithm:     algorithm,
		KeySize:       attrs.KeySize,
		PermitExport:  attrs.PermitExport,
		PermitEncrypt: attrs.PermitEncrypt,
		PermitDecrypt: attrs.PermitDecrypt,
		PermitSign:    attrs.PermitSign,
		PermitVerify:  attrs.PermitVerify,
		PermitDerive:  attrs.PermitDerive,
	}, nil
}

// decodeAlgorithm はalgorithm oneofをドメインのAlgorithmに変換する。
// Sign以外の種別は整形式だが未実装としてErrNotSupportedを返す。
func decodeAlgorithm(alg *wire.AlgorithmProto) (domain.Algorithm, error) {
	if alg.Sign == nil {
		return domain.Algorithm{}, fmt.Errorf("%w: algorithm variant", domain.ErrNotSupported)
	}

	signAlg, err := decodeSignAlgorithm(alg.Sign.SignAlgorithm)
	if err != nil {
		return domain.Algorithm{}, err
	}

	var hashAlg *domain.HashAlgorithm
	if alg.Sign.HashAlgorithm != wire.HashAlgorithmNone {
		hash, err := decodeHashAlgorithm(alg.Sign.HashAlgorithm)
		if err != nil {
			return domain.Algorithm{}, err
		}
		hashAlg = &hash
	}

	return domain.NewSignAlgorithm(signAlg, hashAlg), nil
}

// encodeAlgorithm はドメインのAlgorithmをalgorithm oneofに変換する。
// ワイヤスキーマが表現できない種別はデコード側と対称にErrNotSupportedを返す。
func encodeAlgorithm(alg domain.Algorithm) (*wire.AlgorithmProto, error) {
	switch alg.Kind() {
	case domain.AlgorithmKindSign:
		signAlg, hashAlg := alg.Sign()
		hash := wire.HashAlgorithmNone
		if hashAlg != nil {
			hash = int32(*hashAlg)
		}
		return &wire.AlgorithmProto{
			Sign: &wire.SignProto{
				SignAlgorithm: int32(signAlg),
				HashAlgorithm: hash,
			},
		}, nil
	default:
		return nil, fmt.Errorf("%w: algorithm variant", domain.ErrNotSupported)
	}
}
