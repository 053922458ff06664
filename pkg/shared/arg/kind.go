package arg

import (
	"fmt"
	"strings"

	"github.com/Paintersrp/daggerforge/internal/card"
)

// KindArgs lists the accepted spellings for completion.
var KindArgs = []string{"adversaries", "environments"}

// HandleKind reads the card kind from the first argument, defaulting to
// adversaries.
func HandleKind(args []string) (card.Kind, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return card.KindAdversary, nil
	}
	return card.ParseKind(args[0])
}

// HandleName joins the arguments after the kind into a card name.
func HandleName(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("error: No card name given. Try again")
	}
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		return "", fmt.Errorf("error: No card name given. Try again")
	}
	return name, nil
}
