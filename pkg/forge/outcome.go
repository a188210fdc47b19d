package forge

// OutcomeType classifies one entity's desired-vs-observed relationship.
type OutcomeType string

const (
	// OutcomeMissing marks an entity declared in the desired configuration
	// but absent from the forge.
	OutcomeMissing OutcomeType = "missing"
	// OutcomeUnexpected marks an entity present on the forge but not
	// declared anywhere in the desired configuration.
	OutcomeUnexpected OutcomeType = "unexpected"
	// OutcomeDiverged marks an entity present on both sides with at least
	// one compared field differing.
	OutcomeDiverged OutcomeType = "diverged"
)

// Outcome is the alignment classification of a single entity. Desired is set
// for missing and diverged outcomes, Observed only for diverged ones; an
// unexpected outcome carries neither, since no desired value exists for it.
type Outcome[T any] struct {
	Type     OutcomeType
	Desired  *T
	Observed *T
}

// Missing builds the outcome for an entity absent from the forge.
func Missing[T any](desired T) Outcome[T] {
	return Outcome[T]{Type: OutcomeMissing, Desired: &desired}
}

// Unexpected builds the outcome for an entity present only on the forge.
func Unexpected[T any]() Outcome[T] {
	return Outcome[T]{Type: OutcomeUnexpected}
}

// Diverged builds the outcome for an entity whose compared fields differ.
func Diverged[T any](desired, observed T) Outcome[T] {
	return Outcome[T]{Type: OutcomeDiverged, Desired: &desired, Observed: &observed}
}

// OutcomeSet is a sparse, insertion-ordered mapping from entity key to
// alignment outcome. Entities with no mismatch have no entry at all, so an
// empty set means the desired and observed states are aligned. Iteration
// order follows declaration order in the desired configuration, which keeps
// repeated runs against identical state producing identical reports.
type OutcomeSet[K comparable, T any] struct {
	keys    []K
	entries map[K]Outcome[T]
}

// NewOutcomeSet returns an empty outcome set.
func NewOutcomeSet[K comparable, T any]() *OutcomeSet[K, T] {
	return &OutcomeSet[K, T]{entries: make(map[K]Outcome[T])}
}

// Put records the outcome for key. Re-putting a key keeps its original
// position.
func (s *OutcomeSet[K, T]) Put(key K, outcome Outcome[T]) {
	if _, exists := s.entries[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.entries[key] = outcome
}

// Get returns the outcome recorded for key, if any.
func (s *OutcomeSet[K, T]) Get(key K) (Outcome[T], bool) {
	outcome, ok := s.entries[key]
	return outcome, ok
}

// Keys returns the keys in insertion order.
func (s *OutcomeSet[K, T]) Keys() []K {
	keys := make([]K, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Len returns the number of recorded outcomes.
func (s *OutcomeSet[K, T]) Len() int {
	return len(s.keys)
}

// Empty reports whether no drift was recorded.
func (s *OutcomeSet[K, T]) Empty() bool {
	return len(s.keys) == 0
}
