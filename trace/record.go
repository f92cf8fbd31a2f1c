package trace

import (
	"github.com/hupe1980/gridpath/engine"
	"github.com/hupe1980/gridpath/internal/closedset"
	"github.com/hupe1980/gridpath/model"
)

// NodeRecord is the serializable form of a search node.
type NodeRecord struct {
	X int32   `json:"x"`
	Y int32   `json:"y"`
	G float64 `json:"g"`
	H float64 `json:"h"`
}

// Location returns the node's grid cell.
func (n NodeRecord) Location() model.Location {
	return model.Loc(n.X, n.Y)
}

// StepRecord is the serializable form of one expansion snapshot.
// Frontier entries carry no parent links; traces replay the outward
// shape of a run, not its full search tree.
type StepRecord struct {
	Step     int            `json:"step"`
	Status   uint8          `json:"status"`
	Stale    bool           `json:"stale,omitempty"`
	Current  *NodeRecord    `json:"current,omitempty"`
	Path     []model.Action `json:"path,omitempty"`
	Frontier []NodeRecord   `json:"frontier,omitempty"`

	// Closed is the roaring-serialized closed set.
	Closed []byte `json:"closed,omitempty"`
}

// FromSnapshot converts a live snapshot into its serializable form.
func FromSnapshot(snap engine.StepSnapshot) (StepRecord, error) {
	rec := StepRecord{
		Step:   snap.StepIndex,
		Status: uint8(snap.Status),
		Stale:  snap.Stale,
		Path:   snap.Path,
	}

	if snap.Current != nil {
		rec.Current = &NodeRecord{
			X: snap.Current.Location.X,
			Y: snap.Current.Location.Y,
			G: snap.Current.G,
			H: snap.Current.H,
		}
	}

	if len(snap.Frontier) > 0 {
		rec.Frontier = make([]NodeRecord, len(snap.Frontier))
		for i, n := range snap.Frontier {
			rec.Frontier[i] = NodeRecord{
				X: n.Location.X,
				Y: n.Location.Y,
				G: n.G,
				H: n.H,
			}
		}
	}

	if snap.Closed != nil {
		data, err := snap.Closed.ToBytes()
		if err != nil {
			return StepRecord{}, err
		}
		rec.Closed = data
	}

	return rec, nil
}

// Done reports whether the record marks a terminated run.
func (r StepRecord) Done() bool {
	return engine.Status(r.Status) != engine.StatusRunning
}

// ClosedLocations decodes the closed-set bytes back into locations.
func (r StepRecord) ClosedLocations() ([]model.Location, error) {
	if len(r.Closed) == 0 {
		return nil, nil
	}

	set, err := closedset.FromBytes(r.Closed)
	if err != nil {
		return nil, err
	}

	locs := make([]model.Location, 0, set.Cardinality())
	for loc := range set.Iterator() {
		locs = append(locs, loc)
	}
	return locs, nil
}
