// Package handler はHTTPハンドラを提供する。
package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"

	"key-attributes-service/internal/codec"
	"key-attributes-service/internal/domain"
	"key-attributes-service/internal/middleware"
	"key-attributes-service/internal/usecase"
	"key-attributes-service/internal/wire"
	"key-attributes-service/pkg/httputil"
)

var keyNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// AttributeHandler はHTTPハンドラを提供する。
type AttributeHandler struct {
	service *usecase.AttributeService
}

// NewAttributeHandler は新しいAttributeHandlerを生成する。
func NewAttributeHandler(service *usecase.AttributeService) *AttributeHandler {
	return &AttributeHandler{service: service}
}

func validateKeyName(name string) error {
	if name == "" {
		return domain.ErrInvalidKeyName
	}
	if len(name) > 64 {
		return domain.ErrInvalidKeyName
	}
	if !keyNameRegex.MatchString(name) {
		return domain.ErrInvalidKeyName
	}
	return nil
}

// RegisterKeyRequest は鍵属性登録のリクエスト形式。
// attributesはワイヤ表現そのまま（enumは整数コード）。
type RegisterKeyRequest struct {
	Name       string                   `json:"name"`
	Attributes *wire.KeyAttributesProto `json:"attributes"`
}

// KeyRecordResponse は鍵属性レコードのレスポンス形式。
type KeyRecordResponse struct {
	ID         string                   `json:"id"`
	Name       string                   `json:"name"`
	Attributes *wire.KeyAttributesProto `json:"attributes"`
	CreatedAt  string                   `json:"created_at"`
}

// KeyRecordListResponse は鍵属性レコード一覧のレスポンス形式。
type KeyRecordListResponse struct {
	Keys []KeyRecordResponse `json:"keys"`
}

// SignRequest は署名リクエストの形式。
type SignRequest struct {
	Message string `json:"message"` // base64エンコード済み
}

// SignResponse は署名レスポンスの形式。
type SignResponse struct {
	KeyID     string `json:"key_id"`
	Signature string `json:"signature"` // base64エンコード済み
}

// toRecordResponse はドメインレコードをレスポンス形式に変換する。
// 属性はワイヤ表現に再エンコードして返す。
func toRecordResponse(record *domain.KeyRecord) (*KeyRecordResponse, error) {
	attrs, err := codec.EncodeKeyAttributes(&record.Attributes)
	if err != nil {
		return nil, err
	}
	return &KeyRecordResponse{
		ID:         record.ID,
		Name:       record.Name,
		Attributes: attrs,
		CreatedAt:  record.CreatedAt.Format(time.RFC3339),
	}, nil
}

// RegisterKey はワイヤ形式の鍵属性を検証して登録する。
func (h *AttributeHandler) RegisterKey(w http.ResponseWriter, r *http.Request) {
	var req RegisterKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := validateKeyName(req.Name); err != nil {
		httputil.Error(w, http.StatusBadRequest, "INVALID_KEY_NAME", "invalid key name format")
		return
	}
	if req.Attributes == nil {
		httputil.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "attributes is required")
		return
	}

	record, err := h.service.RegisterKey(r.Context(), req.Name, req.Attributes)
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "REGISTER_KEY", req.Name, "FAILED")
		switch {
		case errors.Is(err, domain.ErrInvalidEncoding):
			httputil.Error(w, http.StatusBadRequest, "INVALID_ENCODING", "key attributes are malformed")
		case errors.Is(err, domain.ErrNotSupported):
			httputil.Error(w, http.StatusUnprocessableEntity, "NOT_SUPPORTED", "algorithm variant is not supported")
		case errors.Is(err, domain.ErrKeyAlreadyExists):
			httputil.Error(w, http.StatusConflict, "KEY_ALREADY_EXISTS", "key already exists with this name")
		default:
			httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	resp, err := toRecordResponse(record)
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "REGISTER_KEY", req.Name, "FAILED")
		httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	middleware.WriteAuditLog(r.Context(), "REGISTER_KEY", record.ID, "SUCCESS")
	httputil.JSON(w, http.StatusCreated, resp)
}

// GetKey は指定されたIDの鍵属性レコードを取得する。
func (h *AttributeHandler) GetKey(w http.ResponseWriter, r *http.Request) {
	keyID := chi.URLParam(r, "key_id")

	record, err := h.service.GetKey(r.Context(), keyID)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			httputil.Error(w, http.StatusNotFound, "KEY_NOT_FOUND", "key not found")
			return
		}
		httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	resp, err := toRecordResponse(record)
	if err != nil {
		httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// ListKeys は全鍵属性レコードを取得する。
func (h *AttributeHandler) ListKeys(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListKeys(r.Context())
	if err != nil {
		httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	resp := KeyRecordListResponse{Keys: make([]KeyRecordResponse, 0, len(records))}
	for _, record := range records {
		item, err := toRecordResponse(record)
		if err != nil {
			httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			return
		}
		resp.Keys = append(resp.Keys, *item)
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// DeleteKey は指定されたIDの鍵属性レコードを削除する。
func (h *AttributeHandler) DeleteKey(w http.ResponseWriter, r *http.Request) {
	keyID := chi.URLParam(r, "key_id")

	if err := h.service.DeleteKey(r.Context(), keyID); err != nil {
		middleware.WriteAuditLog(r.Context(), "DELETE_KEY", keyID, "FAILED")
		if errors.Is(err, domain.ErrKeyNotFound) {
			httputil.Error(w, http.StatusNotFound, "KEY_NOT_FOUND", "key not found")
			return
		}
		httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}

	middleware.WriteAuditLog(r.Context(), "DELETE_KEY", keyID, "SUCCESS")
	w.WriteHeader(http.StatusNoContent)
}

// Sign は指定された鍵でメッセージに署名する。
func (h *AttributeHandler) Sign(w http.ResponseWriter, r *http.Request) {
	keyID := chi.URLParam(r, "key_id")

	var req SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	message, err := base64.StdEncoding.DecodeString(req.Message)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "message must be base64 encoded")
		return
	}

	signature, err := h.service.Sign(r.Context(), keyID, message)
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "SIGN", keyID, "FAILED")
		switch {
		case errors.Is(err, domain.ErrKeyNotFound):
			httputil.Error(w, http.StatusNotFound, "KEY_NOT_FOUND", "key not found")
		case errors.Is(err, domain.ErrSigningNotPermitted):
			httputil.Error(w, http.StatusForbidden, "SIGNING_NOT_PERMITTED", "key does not permit signing")
		case errors.Is(err, domain.ErrNotSupported):
			httputil.Error(w, http.StatusUnprocessableEntity, "NOT_SUPPORTED", "algorithm variant is not supported")
		default:
			httputil.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return
	}

	middleware.WriteAuditLog(r.Context(), "SIGN", keyID, "SUCCESS")
	httputil.JSON(w, http.StatusOK, SignResponse{
		KeyID:     keyID,
		Signature: base64.StdEncoding.EncodeToString(signature),
	})
}
