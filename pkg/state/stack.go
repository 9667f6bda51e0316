package state

// Stack is a reversible stack: pushes made after a checkpoint are popped
// when that checkpoint is restored.
type Stack[T any] struct {
	items []T
	size  *Int
}

// NewStack allocates an empty reversible stack owned by m.
func NewStack[T any](m Manager) *Stack[T] {
	return &Stack[T]{size: m.MakeInt(0)}
}

func (s *Stack[T]) Push(v T) {
	n := s.size.Value()
	if n < len(s.items) {
		s.items[n] = v
	} else {
		s.items = append(s.items, v)
	}
	s.size.SetValue(n + 1)
}

func (s *Stack[T]) Size() int {
	return s.size.Value()
}

func (s *Stack[T]) Get(i int) T {
	return s.items[i]
}
