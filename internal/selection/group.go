package selection

import "github.com/llehouerou/shloka/internal/catalog"

// GroupState is the tri-state check mark of a group.
type GroupState int

const (
	GroupNone GroupState = iota
	GroupPartial
	GroupFull
)

func (s GroupState) String() string {
	switch s {
	case GroupNone:
		return "None"
	case GroupPartial:
		return "Partial"
	case GroupFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// GroupStatus pairs a group with its check state.
type GroupStatus struct {
	Group    catalog.Group
	State    GroupState
	Selected int
}

// GroupState returns the check state of one group.
func (r *Reconciler) GroupState(groupID int) GroupState {
	g, ok := r.cat.Group(groupID)
	if !ok {
		return GroupNone
	}
	return r.groupState(g)
}

// GroupStates returns every group with its check state.
func (r *Reconciler) GroupStates() []GroupStatus {
	groups := r.cat.Groups()
	out := make([]GroupStatus, len(groups))
	for i, g := range groups {
		out[i] = GroupStatus{Group: g, State: r.groupState(g), Selected: r.countIn(g)}
	}
	return out
}

func (r *Reconciler) groupState(g catalog.Group) GroupState {
	switch n := r.countIn(g); {
	case n == 0:
		return GroupNone
	case n == g.Len():
		return GroupFull
	default:
		return GroupPartial
	}
}

func (r *Reconciler) countIn(g catalog.Group) int {
	n := 0
	for id := g.Start; id <= g.End; id++ {
		if r.tracks.Test(uint(id)) {
			n++
		}
	}
	return n
}
