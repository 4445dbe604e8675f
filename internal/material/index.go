package material

import (
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths. TGA files take
// priority over other formats for the same stem (alpha channel).
type Index struct {
	entries map[string]string
}

var textureExts = map[string]bool{
	".tga":  true,
	".bmp":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// BuildIndex scans the given directories recursively for texture files.
func BuildIndex(dirs ...string) *Index {
	idx := &Index{entries: make(map[string]string)}
	for _, dir := range dirs {
		filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(p))
			if !textureExts[ext] {
				return nil
			}
			stem := strings.ToLower(strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)))

			existing, exists := idx.entries[stem]
			if !exists {
				idx.entries[stem] = p
			} else if ext == ".tga" && strings.ToLower(filepath.Ext(existing)) != ".tga" {
				idx.entries[stem] = p
			}
			return nil
		})
	}
	return idx
}

// ResolvePath returns the filesystem path for a material name, or
// ("", false). Material names may carry directory prefixes in either
// slash convention; only the stem is matched.
func (idx *Index) ResolvePath(name string) (string, bool) {
	p, ok := idx.entries[baseStem(name)]
	return p, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
