// Package media resolves product photo file names to displayable paths.
// The catalog stores bare file names; everything path-related stays behind
// these interfaces so the core does no file I/O of its own.
package media

// Placeholder is the path returned for products without a usable photo.
const Placeholder = "resources/placeholder.png"

// Resolver turns a stored file name into an existing path.
type Resolver interface {
	// Resolve returns the display path for fileName and whether the backing
	// file exists. An empty fileName never resolves.
	Resolve(fileName string) (string, bool)
}

// Store ingests photo files and hands back the name to persist.
type Store interface {
	// StoreFile copies the file at sourcePath into the media root and
	// returns the bare file name to keep on the product.
	StoreFile(sourcePath string) (string, error)
}
