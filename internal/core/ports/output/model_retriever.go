package ports

import "context"

// ModelRetriever fetches a serialized model to a local path.
type ModelRetriever interface {
	// Retrieve returns a local path for the artifact with the given external
	// identifier. Implementations may memoize per identifier.
	Retrieve(ctx context.Context, modelID string) (string, error)
}
