package story_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"story-api/internal/common/pagination"
	"story-api/internal/handler/http/story"
	"story-api/internal/infra/adapter/persistence/memory"
	storyUC "story-api/internal/usecase/story"
)

/* ───────── helpers ───────── */

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}

type envelope struct {
	Success    bool                 `json:"success"`
	Data       json.RawMessage      `json:"data"`
	Message    string               `json:"message"`
	Pagination *pagination.Metadata `json:"pagination"`
}

type fileField struct {
	name        string
	filename    string
	contentType string
	data        []byte
}

func newServer(t *testing.T, maxUpload int64) (*http.ServeMux, *memory.StoryRepo) {
	t.Helper()
	repo := memory.NewStoryRepo()
	svc := storyUC.Service{Repo: repo, MaxImageSize: maxUpload}
	mux := http.NewServeMux()
	story.Register(mux, svc, story.Config{Pagination: pagination.DefaultConfig(), MaxUploadSize: maxUpload}, nil)
	return mux, repo
}

func multipartBody(t *testing.T, fields map[string]string, files ...fileField) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.name+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write(f.data)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func do(t *testing.T, h http.Handler, method, target string, fields map[string]string, files ...fileField) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if fields != nil || len(files) > 0 {
		body, ct := multipartBody(t, fields, files...)
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", ct)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	if ct := rr.Header().Get("Content-Type"); ct == "application/json" {
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v\nbody=%s", err, rr.Body.String())
		}
	}
	return rr, env
}

func decodeStory(t *testing.T, env envelope) story.DTO {
	t.Helper()
	var d story.DTO
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("decode story: %v", err)
	}
	return d
}

func storyFields(title string) map[string]string {
	return map[string]string{"title": title, "writter": "Alice", "story_content": "Hello"}
}
