package roll

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCmdRoll()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRollExpression(t *testing.T) {
	out, err := execute(t, "2d6+1", "--seed", "7", "--times", "3")
	if err != nil {
		t.Fatalf("roll returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected three rolls, got %q", out)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "2d6+1: [") {
			t.Fatalf("unexpected roll line %q", line)
		}
	}

	again, err := execute(t, "2d6+1", "--seed", "7", "--times", "3")
	if err != nil {
		t.Fatalf("roll returned error: %v", err)
	}
	if again != out {
		t.Fatalf("expected the same seed to repeat the rolls")
	}
}

func TestRollDuality(t *testing.T) {
	out, err := execute(t, "--duality", "--mod", "2", "--seed", "1")
	if err != nil {
		t.Fatalf("roll returned error: %v", err)
	}
	if !strings.HasPrefix(out, "Hope ") || !strings.Contains(out, "+2 = ") {
		t.Fatalf("unexpected duality output %q", out)
	}
}

func TestRollErrors(t *testing.T) {
	if _, err := execute(t); err == nil {
		t.Fatalf("expected an error without an expression")
	}
	if _, err := execute(t, "2x6"); err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, err := execute(t, "d6", "--times", "0"); err == nil {
		t.Fatalf("expected an error for zero rolls")
	}
}
