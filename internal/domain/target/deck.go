package target

import "github.com/google/uuid"

type State string

const (
	StateLoading   State = "loading"
	StateReady     State = "ready"
	StateExhausted State = "exhausted"
)

// Deck is one swipe session over a fetched target list, paged by index.
type Deck struct {
	FilterKey string
	Items     []Target
	Index     int
	Loaded    bool
}

func NewDeck(filterKey string, items []Target) Deck {
	return Deck{FilterKey: filterKey, Items: items, Loaded: true}
}

func (d Deck) State() State {
	switch {
	case !d.Loaded:
		return StateLoading
	case d.Index >= len(d.Items):
		return StateExhausted
	default:
		return StateReady
	}
}

func (d Deck) Current() (Target, bool) {
	if d.State() != StateReady {
		return Target{}, false
	}
	return d.Items[d.Index], true
}

func (d Deck) Remaining() int {
	if d.Index >= len(d.Items) {
		return 0
	}
	return len(d.Items) - d.Index
}

// Advance moves past id. When id is the current card the index steps forward;
// when it sits further ahead it is removed so it never comes up again.
func (d *Deck) Advance(id uuid.UUID) bool {
	if d.State() != StateReady {
		return false
	}
	if d.Items[d.Index].ID() == id {
		d.Index++
		return true
	}
	for i := d.Index + 1; i < len(d.Items); i++ {
		if d.Items[i].ID() == id {
			items := make([]Target, 0, len(d.Items)-1)
			items = append(items, d.Items[:i]...)
			items = append(items, d.Items[i+1:]...)
			d.Items = items
			return true
		}
	}
	return false
}
