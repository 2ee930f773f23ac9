package ingest

import (
	"log"
	"strconv"
	"time"

	"attrilens/adapters/tabular"
	"attrilens/domain/attrition"
	"attrilens/domain/core"
	"attrilens/domain/dataset"
)

// Loader turns a tabular source file into a validated, normalized Dataset:
// required columns checked, the binary outcome flag derived, and every
// declared bucket column attached. Loads are memoized per source path (the
// source is treated as immutable for the session), with explicit
// invalidation when the caller knows the file changed.
type Loader struct {
	cache *Cache
}

// NewLoader creates a loader with its own memoization cache.
func NewLoader() *Loader {
	return &Loader{cache: NewCache()}
}

// Load returns the normalized Dataset for the source path, reading the file
// at most once per path until Invalidate is called.
func (l *Loader) Load(path string) (*dataset.Dataset, error) {
	if ds, ok := l.cache.Get(path); ok {
		return ds, nil
	}

	ds, err := l.load(path)
	if err != nil {
		return nil, err
	}
	l.cache.Put(path, ds)
	return ds, nil
}

// Invalidate drops the cached Dataset for the source path.
func (l *Loader) Invalidate(path string) {
	l.cache.Drop(path)
}

func (l *Loader) load(path string) (*dataset.Dataset, error) {
	start := time.Now()

	table, err := tabular.NewDataReader(path).Read()
	if err != nil {
		return nil, err
	}

	ds, err := dataset.New(table.Headers, table.Rows)
	if err != nil {
		return nil, err
	}

	if missing := ds.MissingColumns(attrition.RequiredColumns...); len(missing) > 0 {
		return nil, core.NewMissingColumnError(missing...)
	}

	ds, err = withOutcomeFlag(ds)
	if err != nil {
		return nil, err
	}
	for _, spec := range attrition.BucketSpecs {
		if ds, err = withBucketColumn(ds, spec); err != nil {
			return nil, err
		}
	}

	log.Printf("[Loader] %s normalized in %.2fms (%d rows, %d columns)",
		path, float64(time.Since(start).Nanoseconds())/1e6, ds.Len(), len(ds.Columns()))
	return ds, nil
}

// withOutcomeFlag derives the numeric outcome column: "1" where Attrition
// equals the fixed PositiveOutcome literal, "0" for anything else.
func withOutcomeFlag(ds *dataset.Dataset) (*dataset.Dataset, error) {
	raw, err := ds.Column(attrition.ColAttrition)
	if err != nil {
		return nil, err
	}
	flags := make([]string, len(raw))
	for i, value := range raw {
		if value == attrition.PositiveOutcome {
			flags[i] = "1"
		} else {
			flags[i] = "0"
		}
	}
	return ds.WithColumn(attrition.ColAttritionFlag, flags)
}

// withBucketColumn derives one ordered categorical column from its spec.
// The source column is read, never modified.
func withBucketColumn(ds *dataset.Dataset, spec attrition.BucketSpec) (*dataset.Dataset, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	raw, err := ds.Column(spec.Source)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(raw))
	for i, cell := range raw {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			labels[i] = attrition.Unclassified
			continue
		}
		labels[i] = spec.Cut(v)
	}
	return ds.WithColumn(spec.Derived, labels)
}
