package search

// Listener observes a search. Its methods are called synchronously at the
// corresponding transition and cannot alter the search.
type Listener interface {
	// Branch is called when a node at depth is expanded into n
	// alternatives.
	Branch(depth, n int)
	Fail(depth int)
	Solution(depth int)
	SaveState(level int)
	RestoreState(level int)
	// Done is called once per run with the final statistics, unless the
	// run is aborted by an error.
	Done(stats Statistics)
}

type DefaultListener struct{}

func (DefaultListener) Branch(_, _ int)    {}
func (DefaultListener) Fail(_ int)         {}
func (DefaultListener) Solution(_ int)     {}
func (DefaultListener) SaveState(_ int)    {}
func (DefaultListener) RestoreState(_ int) {}
func (DefaultListener) Done(_ Statistics)  {}

type multiListener []Listener

func (m multiListener) Branch(depth, n int) {
	for _, l := range m {
		l.Branch(depth, n)
	}
}

func (m multiListener) Fail(depth int) {
	for _, l := range m {
		l.Fail(depth)
	}
}

func (m multiListener) Solution(depth int) {
	for _, l := range m {
		l.Solution(depth)
	}
}

func (m multiListener) SaveState(level int) {
	for _, l := range m {
		l.SaveState(level)
	}
}

func (m multiListener) RestoreState(level int) {
	for _, l := range m {
		l.RestoreState(level)
	}
}

func (m multiListener) Done(stats Statistics) {
	for _, l := range m {
		l.Done(stats)
	}
}
