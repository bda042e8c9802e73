package graph

import (
	"fmt"
	"sync"

	"github.com/c360/semld/errors"
)

// Store is an in-memory triple set with subject, predicate and object indexes.
// Triples keep their insertion order and query results follow it.
//
// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	triples []Triple
	set     map[Triple]int

	bySubject   map[Term][]int
	byPredicate map[Term][]int
	byObject    map[Term][]int
}

var _ Graph = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		set:         make(map[Triple]int),
		bySubject:   make(map[Term][]int),
		byPredicate: make(map[Term][]int),
		byObject:    make(map[Term][]int),
	}
}

// Add inserts triples, ignoring ones already present.
func (s *Store) Add(triples ...Triple) error {
	for _, t := range triples {
		if err := t.Validate(); err != nil {
			return errors.WrapInvalid(err, "Store", "Add", "triple validation")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range triples {
		if _, exists := s.set[t]; exists {
			continue
		}
		i := len(s.triples)
		s.triples = append(s.triples, t)
		s.set[t] = i
		s.bySubject[t.Subject] = append(s.bySubject[t.Subject], i)
		s.byPredicate[t.Predicate] = append(s.byPredicate[t.Predicate], i)
		s.byObject[t.Object] = append(s.byObject[t.Object], i)
	}
	return nil
}

// Len returns the number of triples.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.triples)
}

// Contains reports whether the triple is stored.
func (s *Store) Contains(t Triple) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.set[t]
	return ok
}

// Triples returns a copy of all triples in insertion order.
func (s *Store) Triples() []Triple {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Triple(nil), s.triples...)
}

// Subjects returns the distinct subjects in first-seen order.
func (s *Store) Subjects() []Term {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[Term]bool, len(s.bySubject))
	var out []Term
	for _, t := range s.triples {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			out = append(out, t.Subject)
		}
	}
	return out
}

// Incoming returns the subjects that point to object, in first-seen order.
func (s *Store) Incoming(object Term) []Term {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[Term]bool)
	var out []Term
	for _, i := range s.byObject[object] {
		subject := s.triples[i].Subject
		if !seen[subject] {
			seen[subject] = true
			out = append(out, subject)
		}
	}
	return out
}

// Query evaluates the conjunction of patterns. Variables shared between
// patterns must bind to the same term. Solutions are produced in the order
// of the stored triples matched by the first pattern.
func (s *Store) Query(patterns ...Pattern) ([]Binding, error) {
	if len(patterns) == 0 {
		return nil, errors.WrapInvalid(ErrEmptyQuery, "Store", "Query", "pattern check")
	}
	for _, p := range patterns {
		if err := Triple(p).checkPositions(); err != nil {
			return nil, errors.WrapInvalid(fmt.Errorf("%w: %w", ErrInvalidPattern, err),
				"Store", "Query", "pattern check")
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	solutions := []Binding{{}}
	for _, p := range patterns {
		var next []Binding
		for _, b := range solutions {
			next = append(next, s.match(p, b)...)
		}
		if len(next) == 0 {
			return nil, nil
		}
		solutions = next
	}
	return solutions, nil
}

// match extends b with every stored triple matching p. Caller holds the read lock.
func (s *Store) match(p Pattern, b Binding) []Binding {
	subject := resolve(p.Subject, b)
	predicate := resolve(p.Predicate, b)
	object := resolve(p.Object, b)

	var out []Binding
	for _, i := range s.candidates(subject, predicate, object) {
		t := s.triples[i]
		ext, ok := unify(b, subject, t.Subject)
		if !ok {
			continue
		}
		if ext, ok = unify(ext, predicate, t.Predicate); !ok {
			continue
		}
		if ext, ok = unify(ext, object, t.Object); !ok {
			continue
		}
		out = append(out, ext)
	}
	return out
}

// candidates picks the smallest index for the bound positions.
func (s *Store) candidates(subject, predicate, object Term) []int {
	var best []int
	found := false
	consider := func(idx map[Term][]int, t Term) {
		if t.IsVariable() {
			return
		}
		list := idx[t]
		if !found || len(list) < len(best) {
			best, found = list, true
		}
	}
	consider(s.bySubject, subject)
	consider(s.byObject, object)
	consider(s.byPredicate, predicate)
	if found {
		return best
	}

	all := make([]int, len(s.triples))
	for i := range all {
		all[i] = i
	}
	return all
}

func resolve(t Term, b Binding) Term {
	if t.IsVariable() {
		if bound, ok := b[t.Value]; ok {
			return bound
		}
	}
	return t
}

// unify matches pattern term p against stored term v, returning b extended
// with a new variable binding when p is an unbound variable.
func unify(b Binding, p, v Term) (Binding, bool) {
	if !p.IsVariable() {
		return b, p == v
	}
	if bound, ok := b[p.Value]; ok {
		return b, bound == v
	}
	ext := make(Binding, len(b)+1)
	for k, t := range b {
		ext[k] = t
	}
	ext[p.Value] = v
	return ext, true
}
