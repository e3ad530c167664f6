package config

import "context"

// Loader reads configuration from the given paths and merges it, in order,
// over the defaults.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Writer renders a model in a format-specific syntax.
type Writer interface {
	Write(m *Model) ([]byte, error)
}
