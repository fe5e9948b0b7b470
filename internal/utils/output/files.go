package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Rotate moves an existing directory aside to the first free "<dir>N" name
// so a fresh run starts with an empty output directory.
func Rotate(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	for i := 1; ; i++ {
		target := fmt.Sprintf("%s%d", dir, i)
		if _, err := os.Stat(target); os.IsNotExist(err) {
			if err := os.Rename(dir, target); err != nil {
				return fmt.Errorf("rotate %s: %w", dir, err)
			}
			log.Info().Str("from", dir).Str("to", target).Msg("Previous output rotated")
			return nil
		}
	}
}

// DeleteByExt removes every file in dir with the given extension and
// returns how many were deleted. The extension includes the dot.
func DeleteByExt(dir, ext string) (int, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// StampIDs rewrites a JSON array file assigning id = 10 + 10*i in array
// order. Some downstream consumers still key on these positional ids; the
// store itself never does.
func StampIDs(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("stamp ids: %s is not a JSON array of objects: %w", path, err)
	}

	for i := range items {
		items[i]["id"] = 10 + 10*i
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}
