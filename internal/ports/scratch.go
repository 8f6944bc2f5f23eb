package ports

// ScratchStore hands out uniquely named scratch files. Release must be called
// exactly once per Acquire, on every exit path of the using operation.
type ScratchStore interface {
	Acquire(pattern string) (path string, err error)
	Release(path string) error
}
