// Package batch drives the pipeline over a set of score files: encode, merge
// metadata, persist per-file artifacts, append to the aggregate table. Every
// file yields a typed Result; a bad file never aborts the run.
package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bareebaree/transmuseTATE/constants"
	"github.com/bareebaree/transmuseTATE/metadata"
	"github.com/bareebaree/transmuseTATE/model"
	"github.com/bareebaree/transmuseTATE/remi"
	"github.com/bareebaree/transmuseTATE/util"
)

// ParseFunc is the score-parsing collaborator boundary.
type ParseFunc func(path string) (model.Score, error)

type Runner struct {
	Parse           ParseFunc
	Resolver        *metadata.Resolver
	ProjectRoot     string
	OutDir          string
	StepsPerQuarter int
	RunID           string
}

// ProcessFile runs encode + merge + persist for one score. All failures come
// back in the Result; nothing is written for a failed file.
func (r *Runner) ProcessFile(path string) model.Result {
	rel := relPath(r.ProjectRoot, path)
	res := model.Result{RelPath: rel}

	parsed, err := r.Parse(path)
	if err != nil {
		res.Err = err
		return res
	}

	tokens, skipped, err := remi.EncodeScore(parsed, r.StepsPerQuarter)
	if err != nil {
		res.Err = err
		return res
	}
	res.NumTokens = len(tokens)
	res.SkippedEvents = skipped

	res.Record = r.Resolver.Collect(rel, path)

	stem := fileStem(path)
	res.TokenPath = filepath.Join(r.OutDir, stem+constants.TokenFileSuffix)
	if err := os.WriteFile(res.TokenPath, []byte(strings.Join(tokens, " ")), 0666); err != nil {
		res.Err = fmt.Errorf("could not write token file: %w", err)
		return res
	}

	res.MetadataPath = filepath.Join(r.OutDir, stem+constants.MetadataFileSuffix)
	data, err := json.MarshalIndent(res.Record, "", "  ")
	if err != nil {
		res.Err = fmt.Errorf("could not marshal metadata: %w", err)
		return res
	}
	if err := os.WriteFile(res.MetadataPath, data, 0666); err != nil {
		res.Err = fmt.Errorf("could not write metadata file: %w", err)
		return res
	}

	return res
}

// RunAll processes each file to completion before the next; reruns overwrite
// prior outputs. The aggregate table's header is written once, from the first
// successful record.
func (r *Runner) RunAll(paths []string) []model.Result {
	if err := os.MkdirAll(r.OutDir, 0777); err != nil {
		panic("Could not create results dir because: " + err.Error())
	}
	csvPath := filepath.Join(r.OutDir, constants.AggregateCSVName)
	os.Remove(csvPath)

	fmt.Printf("Starting run %v over %v score files\n", r.RunID, len(paths))

	var results []model.Result
	var agg *aggregateWriter
	for i, path := range paths {
		fmt.Printf("Processing %v of %v: %v\n", i+1, len(paths), relPath(r.ProjectRoot, path))
		res := r.ProcessFile(path)
		results = append(results, res)

		if res.Failed() {
			fmt.Printf("Skipping %v because: %v\n", res.RelPath, res.Err)
			continue
		}
		if res.SkippedEvents > 0 {
			fmt.Printf("Ignored %v unrecognized events in %v\n", res.SkippedEvents, res.RelPath)
		}

		if agg == nil {
			w, err := newAggregateWriter(csvPath, res.Record)
			if err != nil {
				fmt.Printf("Could not open aggregate table because: %v\n", err)
				continue
			}
			agg = w
		}
		if err := agg.Append(res.Record); err != nil {
			fmt.Printf("Could not append %v to aggregate table because: %v\n", res.RelPath, err)
		}
	}
	if agg != nil {
		agg.Close()
	}
	return results
}

func relPath(projectRoot, path string) string {
	rel, err := filepath.Rel(projectRoot, path)
	if err != nil {
		rel = path
	}
	return "./" + filepath.ToSlash(rel)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// aggregateWriter appends one CSV row per successful file. Columns come from
// the first successful record: filename first, then the remaining keys
// sorted, so reruns are byte-identical.
type aggregateWriter struct {
	f       *os.File
	w       *csv.Writer
	columns []string
}

func newAggregateWriter(path string, first model.Record) (*aggregateWriter, error) {
	columns := []string{"filename"}
	for _, k := range util.SortedKeys(first) {
		if k != "filename" {
			columns = append(columns, k)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return nil, err
	}
	return &aggregateWriter{f: f, w: w, columns: columns}, nil
}

func (a *aggregateWriter) Append(rec model.Record) error {
	row := make([]string, 0, len(a.columns))
	for _, col := range a.columns {
		row = append(row, formatValue(rec[col]))
	}
	if err := a.w.Write(row); err != nil {
		return err
	}
	a.w.Flush()
	return a.w.Error()
}

func (a *aggregateWriter) Close() {
	a.w.Flush()
	a.f.Close()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(data)
	}
}
