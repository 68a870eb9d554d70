package cli

import (
	"errors"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"with field", "server.listen_address", "config error in server.listen_address: missing required field"},
		{"without field", "", "config error: missing required field"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigError(tt.field, "missing required field")
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestCommandErrorWraps(t *testing.T) {
	underlying := errors.New("listen tcp: address in use")
	err := NewCommandError("run", underlying)

	want := "command run failed: listen tcp: address in use"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should find the wrapped error")
	}
}
