// Package storage persists the inventory as a single YAML file.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Flarenzy/site-ipam/internal/domain"
	"github.com/Flarenzy/site-ipam/internal/fsutil"
)

type YAMLRepository struct {
	path string
}

var _ domain.InventoryRepository = (*YAMLRepository)(nil)

func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

func (r *YAMLRepository) Path() string {
	return r.path
}

func (r *YAMLRepository) Load(ctx context.Context) (domain.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return domain.Inventory{}, err
	}

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Inventory{}, fmt.Errorf("%w: inventory file %s", domain.ErrNotFound, r.path)
	}
	if err != nil {
		return domain.Inventory{}, fmt.Errorf("read inventory: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Inventory{}, fmt.Errorf("%w: %s: %v", domain.ErrParse, r.path, err)
	}
	return domain.Inventory{Sites: doc.Sites}, nil
}

func (r *YAMLRepository) Save(ctx context.Context, inventory domain.Inventory) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return fsutil.WriteFile(r.path, 0o644, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Sites: inventory.Sites}); err != nil {
			return fmt.Errorf("encode inventory: %w", err)
		}
		return enc.Close()
	})
}

// Ping reports whether the inventory file is still readable.
func (r *YAMLRepository) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(r.path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", r.path)
	}
	return nil
}
