package domain

// Document represents a fully ingested document on the remote service.
// It is created server-side when an ingestion job completes and is
// immutable on the client except via wholesale replacement on refresh.
type Document struct {
	// ID is the stable, server-assigned identifier.
	ID string

	// Filename is the original upload filename.
	Filename string

	// ChunkCount is the number of searchable chunks produced by ingestion.
	ChunkCount int

	// PageCount is the number of pages in the source document.
	PageCount int

	// Language is the detected language code (e.g. "en", "pt").
	Language string

	// Status is an optional server-side status string.
	Status string
}
