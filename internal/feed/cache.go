package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raider-tools/arcsafe/internal/defs"
)

// Cache keeps raw copies of the feed documents on disk. The layout
// mirrors the upstream paths: hideout/<slug>.json plus projects.json
// under one cache directory.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir. The directory is created
// lazily on the first write.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// DefaultCacheDir resolves the cache directory: the ARCSAFE_CACHE_DIR
// environment variable when set, otherwise the per-user cache directory.
func DefaultCacheDir() (string, error) {
	if env := os.Getenv(defs.EnvCacheDir); env != "" {
		return filepath.Clean(env), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("feed: resolve cache dir: %w", err)
	}
	return filepath.Join(base, defs.AppDir), nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) hideoutPath(slug string) string {
	return filepath.Join(c.dir, defs.HideoutDir, slug+".json")
}

func (c *Cache) projectsPath() string {
	return filepath.Join(c.dir, defs.ProjectsFile)
}

// ReadHideout returns the cached workstation document and its
// modification time. A missing file surfaces as fs.ErrNotExist.
func (c *Cache) ReadHideout(slug string) ([]byte, time.Time, error) {
	return c.read(c.hideoutPath(slug))
}

// ReadProjects returns the cached projects document and its
// modification time.
func (c *Cache) ReadProjects() ([]byte, time.Time, error) {
	return c.read(c.projectsPath())
}

func (c *Cache) read(path string) ([]byte, time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	return data, info.ModTime(), nil
}

// WriteHideout stores a workstation document in the cache.
func (c *Cache) WriteHideout(slug string, data []byte) error {
	return c.write(c.hideoutPath(slug), data)
}

// WriteProjects stores the projects document in the cache.
func (c *Cache) WriteProjects(data []byte) error {
	return c.write(c.projectsPath(), data)
}

// write replaces the target atomically via a temp file and rename, so
// an interrupted write never leaves a truncated document behind.
func (c *Cache) write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("feed: create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".arcsafe-feed-*.tmp")
	if err != nil {
		return fmt.Errorf("feed: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("feed: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("feed: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("feed: replace cache file: %w", err)
	}
	return nil
}
