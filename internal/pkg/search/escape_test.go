package search

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeILIKE(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"go", "%go%"},
		{"100%", `%100\%%`},
		{"snake_case", `%snake\_case%`},
		{`back\slash`, `%back\\slash%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeILIKE(tt.in))
		})
	}
}

func TestRegexLiteral(t *testing.T) {
	re := regexp.MustCompile("(?i)" + RegexLiteral("a.b(c)*"))
	assert.True(t, re.MatchString("xx A.B(C)* yy"))
	assert.False(t, re.MatchString("aXb(c)"))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("The Dragon King", "dragon"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("abc", "abd"))
}
