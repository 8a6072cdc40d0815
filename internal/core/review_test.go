package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ASCII whitespace", " \t\n\r\v\fx := 1\n ", "x := 1"},
		{"Byte-order mark", "\ufeffpackage main\ufeff", "package main"},
		{"Only byte-order marks and spaces", "\ufeff  \ufeff", ""},
		{"Unicode spaces", "  \u3000code  ", "code"},
		{"Next line is kept", "\u0085code\u0085", "\u0085code\u0085"},
		{"Inner whitespace untouched", "  a \ufeff b  ", "a \ufeff b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimCode(tt.in))
		})
	}
}

func TestReviewRequest_Normalize(t *testing.T) {
	req := ReviewRequest{Code: "\ufeff\n  fmt.Println(1)\n"}
	req.Normalize()
	assert.Equal(t, "fmt.Println(1)", req.Code)
}
