package router

// Stack holds the destinations visited above the tab root, oldest first.
// Entries are never merged: pushing the same destination twice yields two
// entries.
type Stack struct {
	entries []Destination
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]Destination, 0),
	}
}

// Push adds a destination on top of the stack.
func (s *Stack) Push(d Destination) {
	s.entries = append(s.entries, d)
}

// Pop removes and returns the top destination.
// Returns false if the stack is empty.
func (s *Stack) Pop() (Destination, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	d := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = nil
	s.entries = s.entries[:len(s.entries)-1]
	return d, true
}

// Peek returns the top destination without removing it.
func (s *Stack) Peek() (Destination, bool) {
	if len(s.entries) == 0 {
		return nil, false
	}
	return s.entries[len(s.entries)-1], true
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

// Entries returns a copy of the stack, oldest first.
func (s *Stack) Entries() []Destination {
	out := make([]Destination, len(s.entries))
	copy(out, s.entries)
	return out
}
