package clipboard

// NewWithWriter builds a System around a fake write function.
func NewWithWriter(write func(string) error, unsupported bool) *System {
	return &System{write: write, unsupported: unsupported}
}
