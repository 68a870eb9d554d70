package cli

import (
	"testing"
	"time"
)

func TestSetupSignalHandlerActiveInitially(t *testing.T) {
	ctx := SetupSignalHandler()

	select {
	case <-ctx.Done():
		t.Error("context cancelled before any signal")
	case <-time.After(10 * time.Millisecond):
	}
}
