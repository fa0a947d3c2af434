package presenter

import "encoding/json"

// Locator is a serializable reference to a position in the script. It
// stores identifiers rather than a raw index so it still resolves after
// the pack was edited and the deck rebuilt.
type Locator struct {
	RoundID    string   `json:"round_id"`
	QuestionID string   `json:"question_id,omitempty"`
	Kind       ItemKind `json:"kind"`
}

// LocatorFor returns the locator for an item.
func LocatorFor(it Item) Locator {
	return Locator{RoundID: it.RoundID, QuestionID: it.QuestionID, Kind: it.Kind}
}

// Resolve maps the locator back to an index. An exact structural match
// wins; otherwise the first item of the same round; otherwise 0.
func (l Locator) Resolve(items []Item) int {
	for i, it := range items {
		if it.Kind == l.Kind && it.RoundID == l.RoundID && it.QuestionID == l.QuestionID {
			return i
		}
	}
	for i, it := range items {
		if it.RoundID == l.RoundID {
			return i
		}
	}
	return 0
}

// Encode serializes the locator for the session store.
func (l Locator) Encode() string {
	b, _ := json.Marshal(l)
	return string(b)
}

// DecodeLocator parses a stored locator. It reports false on garbage or a
// locator missing its round or kind, so callers fall back to index 0.
func DecodeLocator(s string) (Locator, bool) {
	var l Locator
	if err := json.Unmarshal([]byte(s), &l); err != nil {
		return Locator{}, false
	}
	if l.RoundID == "" || l.Kind == "" {
		return Locator{}, false
	}
	return l, true
}
