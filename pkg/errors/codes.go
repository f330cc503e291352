package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
)

// Dataset Error Codes
const (
	ErrCodeDatasetLoadFailed        ErrorCode = "DATASET_001"
	ErrCodeDatasetSchemaInvalid     ErrorCode = "DATASET_002"
	ErrCodeDatasetDuplicateKey      ErrorCode = "DATASET_003"
	ErrCodeDatasetSourceUnsupported ErrorCode = "DATASET_004"
)

// Explorer Error Codes
const (
	ErrCodeUnknownIndicator ErrorCode = "EXPLORER_001"
	ErrCodeRenderFailed     ErrorCode = "EXPLORER_002"
	ErrCodeExportFailed     ErrorCode = "EXPLORER_003"
)

// Aliases used by the factory helpers.
const (
	CodeInternal     = ErrCodeInternal
	CodeInvalidParam = ErrCodeBadRequest
	CodeNotFound     = ErrCodeNotFound
	CodeOK           = ErrorCode("OK")
	CodeUnknown      = ErrorCode("UNKNOWN")
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,

	ErrCodeDatasetLoadFailed:        http.StatusServiceUnavailable,
	ErrCodeDatasetSchemaInvalid:     http.StatusServiceUnavailable,
	ErrCodeDatasetDuplicateKey:      http.StatusServiceUnavailable,
	ErrCodeDatasetSourceUnsupported: http.StatusInternalServerError,

	ErrCodeUnknownIndicator: http.StatusBadRequest,
	ErrCodeRenderFailed:     http.StatusInternalServerError,
	ErrCodeExportFailed:     http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "operation timed out",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeExternalService:    "external service error",

	ErrCodeDatasetLoadFailed:        "dataset could not be loaded",
	ErrCodeDatasetSchemaInvalid:     "dataset is missing expected columns",
	ErrCodeDatasetDuplicateKey:      "dataset contains duplicate state/survey/area rows",
	ErrCodeDatasetSourceUnsupported: "dataset source is not supported",

	ErrCodeUnknownIndicator: "unknown indicator column",
	ErrCodeRenderFailed:     "chart rendering failed",
	ErrCodeExportFailed:     "table export failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
