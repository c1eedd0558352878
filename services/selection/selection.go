// Package selection holds the per-recipient, per-contact selection state
// behind a notification send. State is an explicit value passed into and
// returned from every mutation, so the model can be exercised without any
// UI harness. Tri-state rollups are always derived, never stored.
package selection

import "courier/models"

// State maps user id -> contact id -> selected. A State is only valid for
// the recipient set it was initialized with: every (user, contact) pair of
// that set has exactly one entry, and mutations referencing unknown pairs
// are rejected.
type State map[string]map[string]bool

// Rollup is the derived selection status for one recipient.
type Rollup string

const (
	RollupNone Rollup = "none"
	RollupSome Rollup = "some"
	RollupAll  Rollup = "all"
)

// Totals summarizes a State against its recipient set. A send is only
// permitted when both counts are non-zero.
type Totals struct {
	Recipients int `json:"total_recipients"`
	Channels   int `json:"total_selected_channels"`
}

// Initialize builds the selection state for a freshly fetched recipient
// set, defaulting every contact to its primary flag. Re-initializing
// discards prior manual edits: a fresh session starts clean.
func Initialize(recipients []models.User) State {
	s := make(State, len(recipients))
	for _, r := range recipients {
		contacts := make(map[string]bool, len(r.Contacts))
		for _, c := range r.Contacts {
			contacts[c.ID] = c.IsPrimary
		}
		s[r.ID] = contacts
	}
	return s
}

// clone returns a deep copy so mutations never alias the input state.
func (s State) clone() State {
	out := make(State, len(s))
	for userID, contacts := range s {
		cp := make(map[string]bool, len(contacts))
		for contactID, selected := range contacts {
			cp[contactID] = selected
		}
		out[userID] = cp
	}
	return out
}

// SetContact returns a state with the given contact's selection updated.
// The second return reports whether the (user, contact) pair exists; when
// it does not, the original state is returned unchanged.
func (s State) SetContact(userID, contactID string, selected bool) (State, bool) {
	contacts, ok := s[userID]
	if !ok {
		return s, false
	}
	if _, ok := contacts[contactID]; !ok {
		return s, false
	}
	out := s.clone()
	out[userID][contactID] = selected
	return out, true
}

// SetAllForUser returns a state with every contact of the given user set to
// selected. Unknown users leave the state unchanged.
func (s State) SetAllForUser(userID string, selected bool) (State, bool) {
	contacts, ok := s[userID]
	if !ok {
		return s, false
	}
	out := s.clone()
	for contactID := range contacts {
		out[userID][contactID] = selected
	}
	return out, true
}

// SetAllGlobal returns a state with every contact of every recipient set to
// selected.
func (s State) SetAllGlobal(selected bool) State {
	out := s.clone()
	for _, contacts := range out {
		for contactID := range contacts {
			contacts[contactID] = selected
		}
	}
	return out
}

// RollupForUser derives the tri-state status for one recipient. A
// recipient with no contacts rolls up to none.
func (s State) RollupForUser(r models.User) Rollup {
	selected := len(s.SelectedChannels(r))
	switch {
	case selected == 0:
		return RollupNone
	case selected == len(r.Contacts):
		return RollupAll
	default:
		return RollupSome
	}
}

// SelectedChannels returns the recipient's selected contacts in the
// original directory order. This order becomes the channel priority
// ordering in the eventual dispatch request.
func (s State) SelectedChannels(r models.User) []models.Contact {
	contacts := s[r.ID]
	if len(contacts) == 0 {
		return nil
	}
	var out []models.Contact
	for _, c := range r.Contacts {
		if contacts[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// Totals counts recipients with at least one selected channel and the
// total number of selected channels across the given recipient set.
func (s State) Totals(recipients []models.User) Totals {
	var t Totals
	for _, r := range recipients {
		n := len(s.SelectedChannels(r))
		if n == 0 {
			continue
		}
		t.Recipients++
		t.Channels += n
	}
	return t
}
