package root

import (
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/daggerforge/internal/logger"
	"github.com/Paintersrp/daggerforge/internal/state"
)

func TestSkipsState(t *testing.T) {
	cmd := NewCmdRoot(&state.State{})

	for _, tc := range []struct {
		args []string
		want bool
	}{
		{args: []string{"init"}, want: true},
		{args: []string{"roll"}, want: true},
		{args: []string{"encounter"}, want: true},
		{args: []string{"search"}, want: false},
		{args: []string{"card", "edit"}, want: false},
	} {
		found, _, err := cmd.Find(tc.args)
		if err != nil {
			t.Fatalf("Find(%v) returned error: %v", tc.args, err)
		}
		if got := skipsState(found); got != tc.want {
			t.Fatalf("skipsState(%v) = %v, want %v", tc.args, got, tc.want)
		}
	}
}

func TestAttachLogger(t *testing.T) {
	log := zap.NewExample()
	cmd := &cobra.Command{Use: "test"}

	attachLogger(cmd, log)

	if got := logger.FromContext(cmd.Context()); got != log {
		t.Fatalf("expected the attached logger, got %v", got)
	}
}
