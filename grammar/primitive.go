package grammar

import (
	"fmt"
	"strings"
)

// Node is a unit of grammar that can complete a partial match of itself.
type Node interface {
	// Matches reports whether c can start this node.
	Matches(c byte) bool
	// MustConsume reports whether the node always explains at least one byte.
	MustConsume() bool
	// Complete explains bytes at the cursor, appending whatever is missing.
	Complete(s *State) error
}

// Literal matches a fixed token.
//
// Only the first byte decides whether the literal was chosen. Outside strict
// mode the remaining bytes of the token are assumed to be correct, since a
// genuine prefix cannot diverge from a token after committing to it.
type Literal struct {
	text string
}

// Lit returns a literal for text. It panics if text is empty.
func Lit(text string) *Literal {
	if text == "" {
		panic("grammar: literal cannot be empty")
	}
	return &Literal{text: text}
}

func (l *Literal) Matches(c byte) bool { return c == l.text[0] }

func (l *Literal) MustConsume() bool { return true }

func (l *Literal) Complete(s *State) error {
	for i := 0; i < len(l.text); i++ {
		if s.pos >= len(s.buf) {
			s.buf = append(s.buf, l.text[i])
		} else if s.strict && s.buf[s.pos] != l.text[i] {
			return &MismatchError{Position: s.pos, Got: s.buf[s.pos], Want: l.String()}
		}
		s.pos++
	}
	return nil
}

func (l *Literal) String() string { return fmt.Sprintf("%q", l.text) }

// CharRange matches a single byte in [lo, hi].
type CharRange struct {
	lo, hi, def byte
}

// Range returns a range that synthesizes lo when input is exhausted.
func Range(lo, hi byte) *CharRange {
	return RangeDefault(lo, hi, lo)
}

// RangeDefault returns a range that synthesizes def when input is exhausted.
// It panics if the range is empty or def lies outside it.
func RangeDefault(lo, hi, def byte) *CharRange {
	if lo > hi {
		panic(fmt.Sprintf("grammar: empty range %q..%q", lo, hi))
	}
	if def < lo || def > hi {
		panic(fmt.Sprintf("grammar: default %q outside range %q..%q", def, lo, hi))
	}
	return &CharRange{lo: lo, hi: hi, def: def}
}

func (r *CharRange) Matches(c byte) bool { return r.lo <= c && c <= r.hi }

func (r *CharRange) MustConsume() bool { return true }

func (r *CharRange) Complete(s *State) error {
	return s.consume(r.def, r)
}

func (r *CharRange) String() string { return fmt.Sprintf("%q..%q", r.lo, r.hi) }

// CharWhitelist matches a single byte from a fixed set.
type CharWhitelist struct {
	set string
	def byte
}

// Whitelist returns a whitelist that synthesizes the first byte of set.
func Whitelist(set string) *CharWhitelist {
	if set == "" {
		panic("grammar: whitelist cannot be empty")
	}
	return WhitelistDefault(set, set[0])
}

// WhitelistDefault returns a whitelist that synthesizes def. It panics if
// set is empty or does not contain def.
func WhitelistDefault(set string, def byte) *CharWhitelist {
	if set == "" {
		panic("grammar: whitelist cannot be empty")
	}
	if strings.IndexByte(set, def) < 0 {
		panic(fmt.Sprintf("grammar: default %q not in whitelist %q", def, set))
	}
	return &CharWhitelist{set: set, def: def}
}

func (w *CharWhitelist) Matches(c byte) bool { return strings.IndexByte(w.set, c) >= 0 }

func (w *CharWhitelist) MustConsume() bool { return true }

func (w *CharWhitelist) Complete(s *State) error {
	return s.consume(w.def, w)
}

func (w *CharWhitelist) String() string { return fmt.Sprintf("one of %q", w.set) }

// CharBlacklist matches any single byte outside a fixed set. It has no
// sensible default, so it never synthesizes anything: an exhausted input is
// left for the enclosing node to close.
type CharBlacklist struct {
	set string
}

// Blacklist returns a blacklist over set. It panics if set is empty.
func Blacklist(set string) *CharBlacklist {
	if set == "" {
		panic("grammar: blacklist cannot be empty")
	}
	return &CharBlacklist{set: set}
}

func (b *CharBlacklist) Matches(c byte) bool { return strings.IndexByte(b.set, c) < 0 }

func (b *CharBlacklist) MustConsume() bool { return true }

func (b *CharBlacklist) Complete(s *State) error {
	c, ok := s.Peek()
	if !ok {
		return nil
	}
	if s.strict && !b.Matches(c) {
		return &MismatchError{Position: s.pos, Got: c, Want: b.String()}
	}
	s.pos++
	return nil
}

func (b *CharBlacklist) String() string { return fmt.Sprintf("none of %q", b.set) }
