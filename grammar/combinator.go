package grammar

// Optional matches its child zero or one times. The child is only entered
// when the next byte is positive evidence that it was begun.
type Optional struct {
	child Node
}

// Opt makes child optional.
func Opt(child Node) *Optional {
	mustNode(child)
	return &Optional{child: child}
}

func (o *Optional) Matches(c byte) bool { return o.child.Matches(c) }

func (o *Optional) MustConsume() bool { return false }

func (o *Optional) Complete(s *State) error {
	if c, ok := s.Peek(); ok && o.child.Matches(c) {
		return o.child.Complete(s)
	}
	return nil
}

// Repetition matches its child zero or more times. It never synthesizes a
// repetition that the remaining input does not begin.
type Repetition struct {
	child Node
}

// Rep makes child repeatable.
func Rep(child Node) *Repetition {
	mustNode(child)
	return &Repetition{child: child}
}

// Matches is always true: zero repetitions complete any position.
func (r *Repetition) Matches(byte) bool { return true }

func (r *Repetition) MustConsume() bool { return false }

func (r *Repetition) Complete(s *State) error {
	for {
		c, ok := s.Peek()
		if !ok || !r.child.Matches(c) {
			return nil
		}
		start := s.pos
		if err := r.child.Complete(s); err != nil {
			return err
		}
		// A child that matched without consuming would loop forever.
		if s.pos == start {
			return nil
		}
	}
}

// Choice picks the first child that matches the next byte. When the input is
// exhausted the first child is the default.
type Choice struct {
	children []Node
}

// Or returns a choice over children in priority order. It panics if no
// children are given.
func Or(children ...Node) *Choice {
	if len(children) == 0 {
		panic("grammar: choice must have at least one child")
	}
	for _, child := range children {
		mustNode(child)
	}
	return &Choice{children: children}
}

func (o *Choice) Matches(c byte) bool {
	for _, child := range o.children {
		if child.Matches(c) {
			return true
		}
	}
	return false
}

// MustConsume is false if any alternative may be skipped.
func (o *Choice) MustConsume() bool {
	for _, child := range o.children {
		if !child.MustConsume() {
			return false
		}
	}
	return true
}

func (o *Choice) Complete(s *State) error {
	if c, ok := s.Peek(); ok {
		for _, child := range o.children {
			if child.Matches(c) {
				return child.Complete(s)
			}
		}
	}
	return o.children[0].Complete(s)
}

// Sequence matches its children in order.
type Sequence struct {
	children []Node
}

// Seq returns a sequence of children. It panics if no children are given.
func Seq(children ...Node) *Sequence {
	if len(children) == 0 {
		panic("grammar: sequence must have at least one child")
	}
	for _, child := range children {
		mustNode(child)
	}
	return &Sequence{children: children}
}

// Matches skips leading children that may be absent; the first mandatory
// child decides.
func (q *Sequence) Matches(c byte) bool {
	for _, child := range q.children {
		if child.Matches(c) {
			return true
		}
		if child.MustConsume() {
			return false
		}
	}
	return false
}

func (q *Sequence) MustConsume() bool {
	for _, child := range q.children {
		if child.MustConsume() {
			return true
		}
	}
	return false
}

func (q *Sequence) Complete(s *State) error {
	for _, child := range q.children {
		if err := child.Complete(s); err != nil {
			return err
		}
	}
	return nil
}

// Reference is an indirection bound after construction, which lets a
// grammar refer to itself.
type Reference struct {
	name   string
	target Node
}

// Ref returns an unbound reference. The name is only used in panics.
func Ref(name string) *Reference {
	return &Reference{name: name}
}

// Bind sets the target. It panics on a nil target or a second binding.
func (r *Reference) Bind(target Node) {
	if target == nil {
		panic("grammar: reference " + r.name + " bound to nil")
	}
	if r.target != nil {
		panic("grammar: reference " + r.name + " already bound")
	}
	r.target = target
}

func (r *Reference) Matches(c byte) bool { return r.node().Matches(c) }

func (r *Reference) MustConsume() bool { return r.node().MustConsume() }

// Complete counts one level of depth against the state's limit.
func (r *Reference) Complete(s *State) error {
	if err := s.enter(); err != nil {
		return err
	}
	defer s.leave()
	return r.node().Complete(s)
}

func (r *Reference) node() Node {
	if r.target == nil {
		panic("grammar: reference " + r.name + " used before Bind")
	}
	return r.target
}

func mustNode(n Node) {
	if n == nil {
		panic("grammar: nil node")
	}
}
