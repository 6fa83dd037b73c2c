package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in  string
		exp string
	}{
		{"My Vacation 2024", "My_Vacation_2024"},
		{"already_fine", "already_fine"},
		{"weird/../path", "weird____path"},
		{"", ""},
		{"***", "___"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.exp, SanitizeTitle(tt.in), tt.in)
	}
}

func TestRandStrLengthAndCharset(t *testing.T) {
	s := RandStr(10)
	assert.Len(t, s, 10)

	for _, r := range s {
		assert.True(t, (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	}
}
