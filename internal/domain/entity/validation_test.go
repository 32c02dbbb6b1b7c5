package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStoryFields(t *testing.T) {
	long := func(n int) string { return strings.Repeat("a", n) }

	tests := []struct {
		name      string
		title     string
		writer    string
		content   string
		wantField string
		wantMsg   string
	}{
		{name: "valid", title: "T", writer: "W", content: "C"},
		{name: "title at limit", title: long(200), writer: "W", content: "C"},
		{name: "writer at limit", title: "T", writer: long(100), content: "C"},
		{name: "content at limit", title: "T", writer: "W", content: long(10000)},
		{name: "missing title", title: "", writer: "W", content: "C", wantField: "title", wantMsg: "Title is required"},
		{name: "whitespace title", title: "   ", writer: "W", content: "C", wantField: "title", wantMsg: "Title is required"},
		{name: "script-only title", title: "<script>x</script>", writer: "W", content: "C", wantField: "title", wantMsg: "Title is required"},
		{name: "missing writer", title: "T", writer: "", content: "C", wantField: "writter", wantMsg: "Writer is required"},
		{name: "missing content", title: "T", writer: "W", content: "", wantField: "story_content", wantMsg: "Story content is required"},
		{name: "title too long", title: long(201), writer: "W", content: "C", wantField: "title", wantMsg: "Title must be less than 200 characters"},
		{name: "writer too long", title: "T", writer: long(101), content: "C", wantField: "writter", wantMsg: "Writer name must be less than 100 characters"},
		{name: "content too long", title: "T", writer: "W", content: long(10001), wantField: "story_content", wantMsg: "Story content must be less than 10000 characters"},
		{
			name:      "presence checked before length",
			title:     long(500),
			writer:    "",
			content:   "C",
			wantField: "writter",
			wantMsg:   "Writer is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateStoryFields(tt.title, tt.writer, tt.content)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestValidateStoryFields_LengthAfterSanitize(t *testing.T) {
	title := strings.Repeat("t", 200) + "<script>" + strings.Repeat("x", 50) + "</script>"

	f, err := ValidateStoryFields(title, "  Writer  ", " body ")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("t", 200), f.Title)
	assert.Equal(t, "Writer", f.Writer)
	assert.Equal(t, "body", f.Content)
}

func TestValidateStoryFields_CountsRunes(t *testing.T) {
	// 200 multi-byte characters is well over 200 bytes but still valid.
	_, err := ValidateStoryFields(strings.Repeat("物", 200), "W", "C")
	assert.NoError(t, err)

	_, err = ValidateStoryFields(strings.Repeat("物", 201), "W", "C")
	assert.Error(t, err)
}
