package main

import (
	"github.com/pkg/errors"

	"github.com/worldaudit/blockscan/region"
	"github.com/worldaudit/blockscan/scan"
)

// scanChunks folds one source's chunks into the report: count every non-air
// block, store non-empty counts under the chunk's location label. Chunks
// outside bounds are skipped before decoding their block list.
func scanChunks(r *Report, src region.ChunkSource, bounds *Bounds) error {
	chunks, err := src.Chunks()
	if err != nil {
		return err
	}
	for _, c := range chunks {
		if !bounds.Contains(c.X, c.Z) {
			continue
		}
		counts := scan.CountBlocks(c.Blocks())
		if counts.Len() > 0 {
			r.Put(c.X, c.Z, counts)
		}
	}
	return nil
}

// scanWorld runs the full sequential scan over every region file of the
// named world. The first provider error aborts: no retry, no partial report.
func scanWorld(cfg *Config, world string) (*Report, error) {
	dir, err := cfg.regionDir(world)
	if err != nil {
		return nil, err
	}
	files, err := region.ListFiles(dir, cfg.Filters)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	for _, p := range files {
		f, err := region.Open(p)
		if err != nil {
			return nil, err
		}
		if err := scanChunks(report, f, cfg.Bounds); err != nil {
			return nil, errors.Wrapf(err, "scanning %s", p)
		}
	}
	return report, nil
}
