package recorder

import (
	"fmt"

	"github.com/SeamusWaldron/cubie"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

// Replay rebuilds the puzzle of a recorded session on a fresh machine.
// Undone actions are skipped and every reset epoch starts over from a
// solved puzzle, so m ends where the live machine did.
func Replay(m *cubie.Machine, s storage.Session, records []storage.ActionRecord) error {
	epoch := 0
	for _, rec := range records {
		if rec.Undone {
			continue
		}
		if rec.Epoch != epoch {
			if err := m.Reset(); err != nil {
				return err
			}
			epoch = rec.Epoch
		}
		a, err := rec.Action()
		if err != nil {
			return err
		}
		if err := m.Apply(a); err != nil {
			return fmt.Errorf("replay action %d: %w", rec.ActionIndex, err)
		}
	}
	if epoch != s.Resets {
		return m.Reset()
	}
	return nil
}
