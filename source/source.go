// Package source defines the domain models and interfaces for media discovery and retrieval.
package source

// Catalog defines the required capabilities for a media discovery backend.
type Catalog interface {
	// Name returns the unique identifier for the catalog backend.
	Name() string

	// Search executes a query against the backend to discover matching tracks.
	Search(query string) ([]*Track, error)

	// VariantsOf retrieves the available media variants for a specific track.
	VariantsOf(track *Track) ([]Variant, error)
}
