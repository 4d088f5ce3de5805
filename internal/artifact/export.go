package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"consult/internal/thread"
)

// ExportAll writes every artifact's fence-stripped content into dir,
// one file per artifact, named slug-shortid.ext. Files are written
// concurrently; the first failure aborts the rest.
func ExportAll(dir string, artifacts []thread.Artifact) error {
	if len(artifacts) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	var g errgroup.Group
	for _, a := range artifacts {
		a := a
		g.Go(func() error {
			name := fmt.Sprintf("%s-%s%s", Slug(a.Title), shortID(a.ID), Ext(a.Type))
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(StripFences(a.Content)), 0644); err != nil {
				return fmt.Errorf("export %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
