package pathutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"story-api/internal/domain/entity"
)

func TestStoryID(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "object id", value: "65f1c0ffee0123456789abcd", want: "65f1c0ffee0123456789abcd"},
		{name: "trimmed", value: " abc ", want: "abc"},
		{name: "empty", value: "", wantErr: true},
		{name: "blank", value: "   ", wantErr: true},
		{name: "too long", value: strings.Repeat("a", 65), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/x", nil)
			r.SetPathValue("id", tt.value)

			got, err := StoryID(r)
			if tt.wantErr {
				if !errors.Is(err, entity.ErrInvalidID) {
					t.Fatalf("StoryID() error = %v, want ErrInvalidID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("StoryID() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("StoryID() = %q, want %q", got, tt.want)
			}
		})
	}
}
