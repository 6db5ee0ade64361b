package dto

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	cases := map[string]int{
		ErrCodeUnknown:                http.StatusInternalServerError,
		ErrCodeInternal:               http.StatusInternalServerError,
		ErrCodeValidation:             http.StatusBadRequest,
		ErrCodeBadRequest:             http.StatusBadRequest,
		ErrCodeInvalidInput:           http.StatusBadRequest,
		ErrCodeUnauthorized:           http.StatusUnauthorized,
		ErrCodeInvalidCredentials:     http.StatusUnauthorized,
		ErrCodeTokenExpired:           http.StatusUnauthorized,
		ErrCodeForbidden:              http.StatusForbidden,
		ErrCodeAccountDeactivated:     http.StatusForbidden,
		ErrCodeNotFound:               http.StatusNotFound,
		ErrCodeAlreadyExists:          http.StatusConflict,
		ErrCodeConcurrencyConflict:    http.StatusConflict,
		ErrCodeInvalidState:           http.StatusUnprocessableEntity,
		ErrCodeInvalidRecipeServings:  http.StatusUnprocessableEntity,
		ErrCodeMalformedGeneratedPlan: http.StatusBadGateway,
		ErrCodePayloadTooLarge:        http.StatusRequestEntityTooLarge,
		ErrCodeRateLimited:            http.StatusTooManyRequests,
	}
	for code, want := range cases {
		assert.Equal(t, want, GetHTTPStatus(code), "code %s", code)
	}

	t.Run("unmapped code falls back to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_NO_SUCH_CODE"))
	})

	t.Run("every declared code has a status", func(t *testing.T) {
		for code := range LegacyErrorCodeMapping {
			mapped := NormalizeErrorCode(code)
			_, ok := ErrorCodeHTTPStatus[mapped]
			assert.True(t, ok, "normalized code %s has no HTTP status", mapped)
		}
	})
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("domain codes map to API codes", func(t *testing.T) {
		cases := map[string]string{
			"NOT_FOUND":                ErrCodeNotFound,
			"ALREADY_EXISTS":           ErrCodeAlreadyExists,
			"INVALID_STATE":            ErrCodeInvalidState,
			"UNAUTHORIZED":             ErrCodeUnauthorized,
			"FORBIDDEN":                ErrCodeForbidden,
			"INVALID_CREDENTIALS":      ErrCodeInvalidCredentials,
			"ACCOUNT_DEACTIVATED":      ErrCodeAccountDeactivated,
			"INVALID_RECIPE_SERVINGS":  ErrCodeInvalidRecipeServings,
			"MALFORMED_GENERATED_PLAN": ErrCodeMalformedGeneratedPlan,
			"CONCURRENCY_CONFLICT":     ErrCodeConcurrencyConflict,
			"INVALID_EMAIL":            ErrCodeInvalidInput,
			"INVALID_QUANTITY":         ErrCodeInvalidInput,
			"PASSWORD_HASH_ERROR":      ErrCodeInternal,
		}
		for in, want := range cases {
			assert.Equal(t, want, NormalizeErrorCode(in), "input %s", in)
		}
	})

	t.Run("standardized and unknown codes pass through", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
		assert.Equal(t, "SOMETHING_ELSE", NormalizeErrorCode("SOMETHING_ELSE"))
	})
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Recipe does not exist")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code, "domain code is normalized")
	assert.Equal(t, "Recipe does not exist", resp.Error.Message)
	assert.False(t, resp.Error.Timestamp.IsZero())
	assert.WithinDuration(t, time.Now(), resp.Error.Timestamp, 5*time.Second)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeUnauthorized, "Authentication required", "req-abc-123")

	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-abc-123", resp.Error.RequestID)
	assert.Equal(t, ErrCodeUnauthorized, resp.Error.Code)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "servings", Message: "Value is below the minimum allowed"},
		{Field: "name", Message: "This field is required"},
	}
	resp := NewValidationErrorResponse("Request validation failed", "req-42", details)

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-42", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "servings", resp.Error.Details[0].Field)
}

func TestNewErrorResponseWithHelp(t *testing.T) {
	resp := NewErrorResponseWithHelp(ErrCodeRateLimited, "Too many requests", "req-7", "Retry after the window resets")

	require.NotNil(t, resp.Error)
	assert.Equal(t, "Retry after the window resets", resp.Error.Help)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Pantry item not found", "req-json")

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded Response
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.False(t, decoded.Success)
	require.NotNil(t, decoded.Error)
	assert.Equal(t, ErrCodeNotFound, decoded.Error.Code)
	assert.Equal(t, "Pantry item not found", decoded.Error.Message)
	assert.Equal(t, "req-json", decoded.Error.RequestID)
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"id": "abc"})

	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("computes total pages", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 101, 2, 10)

		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(101), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.Page)
		assert.Equal(t, 10, resp.Meta.PageSize)
		assert.Equal(t, 11, resp.Meta.TotalPages)
	})

	t.Run("empty result set has zero pages", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{}, 0, 1, 10)

		require.NotNil(t, resp.Meta)
		assert.Equal(t, 0, resp.Meta.TotalPages)
	})

	t.Run("non-positive page size falls back to default", func(t *testing.T) {
		for _, size := range []int{0, -1} {
			resp := NewSuccessResponseWithMeta([]string{"a"}, 40, 1, size)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, 20, resp.Meta.PageSize)
			assert.Equal(t, 2, resp.Meta.TotalPages)
		}
	})
}
