//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSearch,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpSearch,
			err:      errors.New("source unavailable"),
			expected: "Failed to search library: source unavailable",
		},
		{
			name:     "config operation",
			op:       OpLoadConfig,
			err:      errors.New("invalid toml"),
			expected: "Failed to load configuration: invalid toml",
		},
		{
			name:     "sync not implemented",
			op:       OpSync,
			err:      ErrNotImplemented,
			expected: "Failed to sync library: not implemented",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpResolvePath,
			context:  "tsv",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpResolvePath,
			context:  "csv",
			err:      errors.New("unknown file type"),
			expected: "Failed to resolve library path 'csv': unknown file type",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpRender,
			context:  "",
			err:      errors.New("broken pipe"),
			expected: "Failed to render results: broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{OpParseArgs, OpLoadConfig, OpResolvePath, OpSearch, OpRender, OpSync}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
