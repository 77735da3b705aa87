// Package grammar provides composable grammar nodes that both describe a
// syntax and complete a truncated match of it in a single left-to-right pass.
package grammar

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedByte is reported in strict mode when a primitive is asked
	// to explain a byte it does not accept.
	ErrUnexpectedByte = errors.New("grammar: unexpected byte")

	// ErrDepthExceeded is returned when completion recurses through more
	// references than the state allows.
	ErrDepthExceeded = errors.New("grammar: maximum depth exceeded")
)

// MismatchError describes the byte a strict primitive rejected.
type MismatchError struct {
	Position int
	Got      byte
	Want     string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("grammar: unexpected %q at position %d, want %s", e.Got, e.Position, e.Want)
}

// Unwrap returns ErrUnexpectedByte.
func (e *MismatchError) Unwrap() error {
	return ErrUnexpectedByte
}

// State is the mutable working buffer of a single completion pass. The
// buffer only grows by appending and the cursor never moves backwards or
// past the end of the buffer.
type State struct {
	buf      []byte
	pos      int
	strict   bool
	depth    int
	maxDepth int
}

// StateOption configures a State.
type StateOption func(*State)

// WithStrict makes primitives verify every byte they consume instead of
// trusting that the caller picked the right branch.
func WithStrict() StateOption {
	return func(s *State) {
		s.strict = true
	}
}

// WithMaxDepth bounds how many references may be entered recursively.
// Zero or a negative value disables the bound.
func WithMaxDepth(n int) StateOption {
	return func(s *State) {
		s.maxDepth = n
	}
}

// NewState returns a state over a private copy of prefix.
func NewState(prefix []byte, opts ...StateOption) *State {
	s := &State{buf: make([]byte, len(prefix), len(prefix)+8)}
	copy(s.buf, prefix)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bytes returns the buffer, including everything synthesized so far.
func (s *State) Bytes() []byte {
	return s.buf
}

// Pos returns the number of bytes explained so far.
func (s *State) Pos() int {
	return s.pos
}

// Len returns the current buffer length.
func (s *State) Len() int {
	return len(s.buf)
}

// Done reports whether the whole buffer has been explained.
func (s *State) Done() bool {
	return s.pos >= len(s.buf)
}

// Peek returns the byte under the cursor without consuming it.
func (s *State) Peek() (byte, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	return s.buf[s.pos], true
}

type matcher interface {
	Matches(c byte) bool
	String() string
}

// consume explains one byte, synthesizing def when the input is exhausted.
// In strict mode a present byte must be accepted by m.
func (s *State) consume(def byte, m matcher) error {
	if s.pos >= len(s.buf) {
		s.buf = append(s.buf, def)
	} else if s.strict && !m.Matches(s.buf[s.pos]) {
		return &MismatchError{Position: s.pos, Got: s.buf[s.pos], Want: m.String()}
	}
	s.pos++
	return nil
}

func (s *State) enter() error {
	if s.maxDepth > 0 && s.depth >= s.maxDepth {
		return fmt.Errorf("%w (%d) at position %d", ErrDepthExceeded, s.maxDepth, s.pos)
	}
	s.depth++
	return nil
}

func (s *State) leave() {
	s.depth--
}
