package kv

// OpenFunc opens a backend rooted at the given path.
type OpenFunc func(path string) (DB, error)

var backends = map[string]OpenFunc{}

// RegisterBackend makes a backend available to Open by name.
// Backends register themselves from their package init.
func RegisterBackend(name string, open OpenFunc) {
	backends[name] = open
}

// Open opens the named backend at path.
func Open(backend, path string) (DB, error) {
	open, ok := backends[backend]
	if !ok {
		return nil, ErrUnknownBackend
	}
	return open(path)
}

// Backends lists the registered backend names.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}
