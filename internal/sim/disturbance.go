package sim

import "sort"

// DisturbanceQueue hands out scheduled disturbances in time order, each
// exactly once.
type DisturbanceQueue struct {
	pending []Disturbance
}

func NewDisturbanceQueue(ds []Disturbance) *DisturbanceQueue {
	pending := make([]Disturbance, len(ds))
	copy(pending, ds)
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].At < pending[j].At })
	return &DisturbanceQueue{pending: pending}
}

// Apply adds every disturbance due at the sample starting at t to x and
// returns them. A disturbance is due once t is within dt/2 of its time.
func (q *DisturbanceQueue) Apply(x State, t, dt float64) []Disturbance {
	var due []Disturbance
	for len(q.pending) > 0 && t+dt/2 >= q.pending[0].At {
		d := q.pending[0]
		q.pending = q.pending[1:]
		if d.Index >= 0 && d.Index < len(x) {
			x[d.Index] += d.Delta
		}
		due = append(due, d)
	}
	return due
}

func (q *DisturbanceQueue) Len() int { return len(q.pending) }
