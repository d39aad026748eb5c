package otp

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestExtractCode(t *testing.T) {
	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"your code is 852559", "852 559", true},
		{"code: 852 559 now", "852 559", true},
		{"no digits here", "", false},
		{"12345", "", false},
		{"1234567", "", false},
		{"", "", false},
		{"first 111222 then 333 444", "111 222", true},
		{"Your verification code:\n123 456\n", "123 456", true},
		{"Code: 123\u00a0456", "123 456", true},
		{"Code:\u00a0123\u202f456.", "123 456", true},
		{"é123456", "", false},
		{"123456é", "", false},
		{"_123456", "", false},
		{"code ١٢٣٤٥٦", "١٢٣ ٤٥٦", true},
	}

	for _, tt := range tests {
		got, ok := ExtractCode(tt.text)
		be.Equal(t, ok, tt.ok)
		be.Equal(t, got, tt.want)
	}
}

func TestExtractCodeRequiresWordBoundary(t *testing.T) {
	_, ok := ExtractCode("order-ABC123456XYZ")
	be.True(t, !ok)

	code, ok := ExtractCode("(987654)")
	be.True(t, ok)
	be.Equal(t, code, "987 654")
}
