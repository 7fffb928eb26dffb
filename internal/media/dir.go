package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirStore keeps photos as plain files under a single root directory.
// It implements both Resolver and Store.
type DirStore struct {
	Root string
}

func NewDirStore(root string) *DirStore { return &DirStore{Root: root} }

// Resolve reports the on-disk path for fileName if the file exists.
func (d *DirStore) Resolve(fileName string) (string, bool) {
	if fileName == "" {
		return "", false
	}
	path := filepath.Join(d.Root, filepath.Base(fileName))
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// StoreFile copies sourcePath into the root (creating it if needed),
// overwriting any previous photo of the same name, and returns the bare
// file name.
func (d *DirStore) StoreFile(sourcePath string) (string, error) {
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return "", fmt.Errorf("create media root: %w", err)
	}
	name := filepath.Base(sourcePath)
	src, err := os.Open(sourcePath)
	if err != nil {
		return "", fmt.Errorf("open photo source: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(d.Root, name))
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copy photo: %w", err)
	}
	return name, nil
}
