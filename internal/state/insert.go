package state

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Paintersrp/daggerforge/internal/card"
	"github.com/Paintersrp/daggerforge/internal/insert"
	"github.com/Paintersrp/daggerforge/internal/pathutil"
)

// InsertCard renders c and inserts it into the note or canvas at target.
// It returns a short status message naming the card and the target.
func (s *State) InsertCard(c any, target, heading string) (string, error) {
	md, err := s.Templater.Render(c)
	if err != nil {
		return "", err
	}

	if err := insert.Into(target, md, insert.Options{Heading: heading}, s.Counter); err != nil {
		s.Logger.Error("insert failed", zap.String("target", target), zap.Error(err))
		return "", fmt.Errorf("failed to insert into %s: %w", target, err)
	}

	name := cardName(c)
	rel, err := pathutil.VaultRelative(s.Vault, target)
	if err != nil {
		rel = target
	}

	s.Logger.Info("card inserted",
		zap.String("card", name),
		zap.String("target", rel),
		zap.String("heading", heading),
		zap.Int("count", s.Counter.Value()),
	)

	return fmt.Sprintf("Inserted %s into %s", name, rel), nil
}

func cardName(c any) string {
	switch v := c.(type) {
	case *card.Adversary:
		return v.Name
	case *card.Environment:
		return v.Name
	default:
		return "card"
	}
}
