package editor

import "github.com/piwi3910/seatmap/internal/model"

// Selection is an ordered set of object IDs.
type Selection struct {
	ids []string
}

// IDs returns the selected IDs in selection order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of selected objects.
func (s *Selection) Len() int { return len(s.ids) }

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool { return len(s.ids) == 0 }

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Set replaces the selection. Duplicates are dropped.
func (s *Selection) Set(ids ...string) {
	next := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			next = append(next, id)
		}
	}
	s.ids = next
}

// Clear empties the selection.
func (s *Selection) Clear() { s.ids = nil }

// Prune drops IDs that are no longer in the scene. Returns true if anything was dropped.
func (s *Selection) Prune(scene *model.Scene) bool {
	kept := s.ids[:0]
	for _, id := range s.ids {
		if scene.Find(id) != nil {
			kept = append(kept, id)
		}
	}
	dropped := len(kept) != len(s.ids)
	s.ids = kept
	return dropped
}

// Resolve returns the selected objects from scene, skipping stale IDs.
func (s *Selection) Resolve(scene *model.Scene) []*model.Object {
	out := make([]*model.Object, 0, len(s.ids))
	for _, id := range s.ids {
		if o := scene.Find(id); o != nil {
			out = append(out, o)
		}
	}
	return out
}
