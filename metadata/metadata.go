// Package metadata resolves and merges side-channel metadata for scores. The
// path index is loaded once at construction and injected where needed; lookup
// misses and unreadable files are reported, never fatal.
package metadata

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bareebaree/transmuseTATE/db"
	"github.com/bareebaree/transmuseTATE/model"
)

// Resolver maps a score's project-relative path to its metadata file.
type Resolver struct {
	projectRoot string
	paths       map[string]string
	dynamo      bool
}

// NewResolver loads the index CSV. Columns are addressed by header name:
// "mxl" holds the relative score path, "metadata" the relative metadata path.
func NewResolver(csvPath, projectRoot string, dynamo bool) (*Resolver, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("could not open index csv: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read index csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("index csv %v is empty", csvPath)
	}

	scoreCol, metaCol := -1, -1
	for i, name := range rows[0] {
		switch name {
		case "mxl":
			scoreCol = i
		case "metadata":
			metaCol = i
		}
	}
	if scoreCol < 0 || metaCol < 0 {
		return nil, fmt.Errorf("index csv %v is missing mxl/metadata columns", csvPath)
	}

	paths := make(map[string]string)
	for _, row := range rows[1:] {
		if len(row) <= scoreCol || len(row) <= metaCol {
			continue
		}
		paths[normalize(row[scoreCol])] = row[metaCol]
	}
	return &Resolver{projectRoot: projectRoot, paths: paths, dynamo: dynamo}, nil
}

// EmptyResolver is used when no index is available; every lookup misses.
func EmptyResolver(projectRoot string, dynamo bool) *Resolver {
	return &Resolver{projectRoot: projectRoot, paths: map[string]string{}, dynamo: dynamo}
}

func normalize(rel string) string {
	return strings.TrimPrefix(rel, "./")
}

// Lookup returns the absolute metadata path for a relative score path.
func (r *Resolver) Lookup(relScorePath string) (string, bool) {
	rel, ok := r.paths[normalize(relScorePath)]
	if !ok {
		return "", false
	}
	return filepath.Join(r.projectRoot, normalize(rel)), true
}

// Load reads one JSON metadata record.
func Load(path string) (model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Collect runs the full merge for one score: resolve, load, overlay the
// computed filename key (last write wins). Always returns a usable record.
func (r *Resolver) Collect(relScorePath, sourcePath string) model.Record {
	record := model.Record{}

	if metaPath, ok := r.Lookup(relScorePath); ok {
		rec, err := Load(metaPath)
		if err != nil {
			fmt.Printf("Failed to load metadata %v because: %v\n", metaPath, err)
		} else {
			record = rec
		}
	} else {
		fmt.Printf("No metadata entry in index for: %v\n", relScorePath)
		if r.dynamo {
			rec, err := db.GetScoreMetadata(filepath.Base(sourcePath))
			if err != nil {
				fmt.Printf("Dynamo metadata lookup failed because: %v\n", err)
			} else if rec != nil {
				record = rec
			}
		}
	}

	record["filename"] = filepath.Base(sourcePath)
	return record
}
