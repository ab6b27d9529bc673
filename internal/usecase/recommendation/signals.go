package recommendation

// AvailabilityLookup answers whether a candidate has open meeting slots.
type AvailabilityLookup interface {
	IsAvailable(userID string) bool
}

// ConnectionLookup answers how many connections the subject and a candidate
// have in common.
type ConnectionLookup interface {
	MutualConnections(candidateID string) int
}

// AvailabilitySet is an AvailabilityLookup backed by a snapshot map.
type AvailabilitySet map[string]bool

func (a AvailabilitySet) IsAvailable(userID string) bool {
	return a[userID]
}

// NewAvailabilitySet marks every id as available.
func NewAvailabilitySet(ids ...string) AvailabilitySet {
	set := make(AvailabilitySet, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// ConnectionCounts is a ConnectionLookup backed by a snapshot map.
type ConnectionCounts map[string]int

func (c ConnectionCounts) MutualConnections(candidateID string) int {
	return c[candidateID]
}

// Signals carries the per-request collaborator snapshots the scorer reads.
// The zero value reports nobody as available and no mutual connections.
type Signals struct {
	Availability AvailabilityLookup
	Connections  ConnectionLookup
}

func (s Signals) available(userID string) bool {
	if s.Availability == nil {
		return false
	}
	return s.Availability.IsAvailable(userID)
}

func (s Signals) mutualConnections(candidateID string) int {
	if s.Connections == nil {
		return 0
	}
	return s.Connections.MutualConnections(candidateID)
}
