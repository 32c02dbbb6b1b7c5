package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story-api/internal/common/pagination"
	"story-api/internal/domain/entity"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		data         any
		expectedBody string
	}{
		{name: "map", code: http.StatusOK, data: map[string]string{"status": "OK"}, expectedBody: `{"status":"OK"}`},
		{name: "nil body", code: http.StatusNoContent, data: nil, expectedBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSON(w, tt.code, tt.data)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, tt.expectedBody, strings.TrimSpace(w.Body.String()))
		})
	}
}

func TestJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusOK, make(chan int))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOK(t *testing.T) {
	w := httptest.NewRecorder()
	OK(w, http.StatusCreated, map[string]string{"id": "1"}, "Story created successfully")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":"1"},"message":"Story created successfully"}`, w.Body.String())
}

func TestOK_EmptyListKeepsData(t *testing.T) {
	w := httptest.NewRecorder()
	Paginated(w, []string{}, pagination.NewMetadata(1, 10, 0))

	assert.JSONEq(t,
		`{"success":true,"data":[],"pagination":{"current":1,"total":1,"hasNext":false,"hasPrev":false,"totalItems":0}}`,
		w.Body.String())
}

func TestFail(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, http.StatusTooManyRequests, MsgTooManyRequests)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Too many requests, please try again later."}`, w.Body.String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "validation error",
			err:      fmt.Errorf("create: %w", &entity.ValidationError{Field: "title", Message: "Title is required"}),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Title is required",
		},
		{name: "invalid id", err: fmt.Errorf("get: %w", entity.ErrInvalidID), wantCode: http.StatusBadRequest, wantMsg: MsgInvalidID},
		{name: "invalid image type", err: fmt.Errorf("x: %w", entity.ErrInvalidImageType), wantCode: http.StatusBadRequest, wantMsg: MsgInvalidFileType},
		{
			name:     "image too large",
			err:      &entity.ImageTooLargeError{MaxSize: 10 << 20},
			wantCode: http.StatusBadRequest,
			wantMsg:  "File too large. Maximum size is 10MB",
		},
		{name: "image not found", err: fmt.Errorf("x: %w", entity.ErrImageNotFound), wantCode: http.StatusNotFound, wantMsg: MsgImageNotFound},
		{name: "not found", err: fmt.Errorf("story %w", entity.ErrNotFound), wantCode: http.StatusNotFound, wantMsg: MsgStoryNotFound},
		{name: "duplicate", err: fmt.Errorf("x: %w", entity.ErrDuplicateTitle), wantCode: http.StatusConflict, wantMsg: MsgDuplicateTitle},
		{
			name:     "internal",
			err:      errors.New("pq: connection refused postgres://u:p@h/db"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestError_HidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api", nil)

	Error(w, r, errors.New("mongo: server selection timeout mongodb://root:secret@db:27017"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, MsgInternal, body.Message)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.NotContains(t, w.Body.String(), "mongo")
}

func TestError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, nil, nil)
	assert.Equal(t, 0, w.Body.Len())
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "10MB", HumanSize(10<<20))
	assert.Equal(t, "512KB", HumanSize(512<<10))
	assert.Equal(t, "1000 bytes", HumanSize(1000))
}
