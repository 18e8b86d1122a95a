// SPDX-License-Identifier: MIT

// Package pipeline runs one OPL → DSM conversion end to end:
// read → extract → build → [cluster] → write.
//
// The input file is read fully and closed before any computation. Output
// files are written only after every stage succeeded, so a failed run
// (invalid input, clustering error) leaves no partial artifacts behind.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/opldsm/cluster"
	"github.com/katalvlaran/opldsm/config"
	"github.com/katalvlaran/opldsm/dsm"
	"github.com/katalvlaran/opldsm/export"
	"github.com/katalvlaran/opldsm/opl"
)

const outputPerm = 0o644

// Summary describes a completed run.
type Summary struct {
	RunID        string
	Kind         dsm.Kind
	Output       string
	Objects      int
	Processes    int
	Relations    int
	RelatedPairs int
	Lines        int
	Ignored      int

	// Set only when clustering ran.
	Clustered     bool
	Clusters      int
	Seed          int64
	ClusterReport string
}

// Runner executes conversions. The zero value is not usable; call New.
type Runner struct {
	logger *slog.Logger
	seeds  func() int64
}

// New creates a Runner that logs to logger (nil → slog.Default()).
func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger: logger,
		seeds:  func() int64 { return time.Now().UnixNano() },
	}
}

// Run validates cfg and performs one conversion.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) (*Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	log := r.logger.With(slog.String("run_id", runID))

	res, err := r.extract(cfg.Input, log)
	if err != nil {
		return nil, err
	}
	log.Info("Processed",
		slog.Int("objects", len(res.Objects)),
		slog.Int("processes", len(res.Processes)),
		slog.Int("relationships", len(res.Relations)))

	d, err := dsm.Build(res.Processes, res.Objects, res.Relations)
	if err != nil {
		return nil, fmt.Errorf("build matrices: %w", err)
	}

	sum := &Summary{
		RunID:        runID,
		Kind:         cfg.Kind(),
		Output:       cfg.Output,
		Objects:      len(res.Objects),
		Processes:    len(res.Processes),
		Relations:    len(res.Relations),
		RelatedPairs: d.RelatedPairs(),
		Lines:        res.Stats.Lines,
		Ignored:      res.Stats.Ignored,
	}

	var report []byte
	if cfg.Clusters > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seed := r.seeds()
		if cfg.Seed != nil {
			seed = *cfg.Seed
		}
		log.Info("Clustering", slog.Int("clusters", cfg.Clusters), slog.Int64("seed", seed))

		cr, err := cluster.Reorder(d, cluster.NewSpectral(cfg.Spectral.Options()...), cfg.Clusters, seed)
		if err != nil {
			return nil, fmt.Errorf("cluster: %w", err)
		}
		d = cr.DSM
		sum.Clustered, sum.Clusters, sum.Seed = true, cfg.Clusters, seed

		if cfg.ClusterReport != "" {
			var buf bytes.Buffer
			if err := export.WriteClusterReport(&buf, cr.Objects.SortedLabels(), cr.Processes.SortedLabels()); err != nil {
				return nil, err
			}
			report = buf.Bytes()
			sum.ClusterReport = cfg.ClusterReport
		}
	}

	tbl, err := d.Table(sum.Kind)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := export.WriteMatrix(&out, tbl); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	artifacts := []artifact{{name: "output", path: cfg.Output, data: out.Bytes()}}
	if report != nil {
		artifacts = append(artifacts, artifact{name: "cluster report", path: cfg.ClusterReport, data: report})
	}
	log.Info("Writing matrix to file", slog.String("matrix", string(sum.Kind)), slog.String("path", cfg.Output))
	if err := commit(artifacts); err != nil {
		return nil, err
	}

	return sum, nil
}

// extract reads the whole input file, closes it, and extracts entities.
func (r *Runner) extract(path string, log *slog.Logger) (*opl.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	res, err := opl.ExtractReader(bytes.NewReader(data))
	if err != nil {
		log.Warn("Extraction failed", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}
	log.Debug("Extracted",
		slog.Int("lines", res.Stats.Lines),
		slog.Int("skipped", res.Stats.Skipped),
		slog.Int("ignored", res.Stats.Ignored),
		slog.Int("declarations", res.Stats.Declarations))
	for _, kind := range []opl.Kind{opl.KindProcess, opl.KindObject} {
		if names := res.Registry.Undeclared(kind); len(names) > 0 {
			log.Debug("Undeclared names", slog.String("kind", kind.String()), slog.Any("names", names))
		}
	}
	return res, nil
}

// artifact is one file produced by a run.
type artifact struct {
	name string
	path string
	data []byte
	tmp  string
}

// commit writes every artifact or none. Each is staged as a temp file next
// to its destination and renamed only once all of them are staged; a failed
// rename removes the artifacts already moved into place.
func commit(artifacts []artifact) error {
	defer func() {
		for _, a := range artifacts {
			if a.tmp != "" {
				_ = os.Remove(a.tmp)
			}
		}
	}()

	for i := range artifacts {
		tmp, err := stage(artifacts[i].path, artifacts[i].data)
		if err != nil {
			return fmt.Errorf("write %s: %w", artifacts[i].name, err)
		}
		artifacts[i].tmp = tmp
	}
	for i := range artifacts {
		if err := os.Rename(artifacts[i].tmp, artifacts[i].path); err != nil {
			for _, done := range artifacts[:i] {
				_ = os.Remove(done.path)
			}
			return fmt.Errorf("write %s: %w", artifacts[i].name, err)
		}
		artifacts[i].tmp = ""
	}
	return nil
}

// stage writes data to a temp file in the directory of path and returns its name.
func stage(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(tmp, outputPerm)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}
