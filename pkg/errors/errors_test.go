package errors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		msg      string
		expected string
	}{
		{
			name:     "wrap nil error",
			err:      nil,
			msg:      "additional context",
			expected: "",
		},
		{
			name:     "wrap standard error",
			err:      errors.New("original error"),
			msg:      "additional context",
			expected: "additional context: original error",
		},
		{
			name:     "wrap with empty message",
			err:      errors.New("original error"),
			msg:      "",
			expected: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrap(tt.err, tt.msg)
			if tt.err == nil {
				if result != nil {
					t.Errorf("Expected nil, got %v", result)
				}
				return
			}
			if result.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result.Error())
			}
			if !errors.Is(result, tt.err) {
				t.Errorf("Expected wrapped error to contain original error")
			}
		})
	}
}

func TestWrapf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		format   string
		args     []interface{}
		expected string
	}{
		{
			name:     "wrapf nil error",
			err:      nil,
			format:   "formatted: %s",
			args:     []interface{}{"test"},
			expected: "",
		},
		{
			name:     "wrapf with arguments",
			err:      errors.New("original error"),
			format:   "library %s at %s",
			args:     []interface{}{"main", "/srv/plugins"},
			expected: "library main at /srv/plugins: original error",
		},
		{
			name:     "wrapf without arguments",
			err:      errors.New("original error"),
			format:   "no args",
			args:     nil,
			expected: "no args: original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Wrapf(tt.err, tt.format, tt.args...)
			if tt.err == nil {
				if result != nil {
					t.Errorf("Expected nil, got %v", result)
				}
				return
			}
			if result.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result.Error())
			}
			if !errors.Is(result, tt.err) {
				t.Errorf("Expected wrapped error to contain original error")
			}
		})
	}
}
