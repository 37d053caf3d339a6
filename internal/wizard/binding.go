package wizard

import "edureg/pkg/types"

// Binding is a step's local working copy of its slice. Edits to the local
// copy are written through to the aggregate state, except while the copy is
// being seeded from the aggregate: writes during seeding would feed the same
// values straight back and re-trigger the seed.
type Binding[T types.StepModel] struct {
	state   *State
	local   T
	syncing bool
}

// Bind mounts a binding for step model T and seeds it from s.
func Bind[T types.StepModel](s *State) *Binding[T] {
	b := &Binding[T]{state: s}
	b.Seed()
	return b
}

// Seed reloads the local copy from the aggregate state without writing back.
func (b *Binding[T]) Seed() {
	b.syncing = true
	defer func() { b.syncing = false }()

	b.local = Data[T](b.state)
	b.flush()
}

// Edit applies fn to the local copy and writes the result through.
func (b *Binding[T]) Edit(fn func(local *T)) {
	fn(&b.local)
	b.flush()
}

func (b *Binding[T]) Local() T {
	return clone(b.local)
}

func (b *Binding[T]) Syncing() bool {
	return b.syncing
}

func (b *Binding[T]) flush() {
	if b.syncing {
		return
	}
	local := clone(b.local)
	Update(b.state, func(slice *T) {
		*slice = local
	})
}
