// Package artifacts measures the files a build leaves behind.
package artifacts

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	ferrors "git.home.luguber.info/inful/versobench/internal/foundation/errors"
	"git.home.luguber.info/inful/versobench/internal/logfields"
	"git.home.luguber.info/inful/versobench/internal/metrics"
)

// TreeSpec describes one output tree to measure.
type TreeSpec struct {
	Dir        string   // relative to the project root
	Extensions []string // matched case-sensitively, including the dot
	Kind       string   // submetric label, e.g. "generated olean"
}

// DefaultTrees are the lake output trees measured after a successful build.
func DefaultTrees() []TreeSpec {
	return []TreeSpec{
		{Dir: filepath.Join(".lake", "build", "ir"), Extensions: []string{".c"}, Kind: "generated c"},
		{Dir: filepath.Join(".lake", "build", "lib", "lean"), Extensions: []string{".olean"}, Kind: "generated olean"},
	}
}

// Artifact is one matched file.
type Artifact struct {
	Module string
	Size   int64
}

// Inventory lists the matched files of one tree in walk order plus their total size.
type Inventory struct {
	Kind      string
	Artifacts []Artifact
	Total     int64
}

// Walk visits every regular file under root and records those whose extension is in
// tree.Extensions. Module names are the relative path without extension, separators
// replaced by dots. A missing root is a filesystem error.
func Walk(root string, tree TreeSpec) (Inventory, error) {
	inv := Inventory{Kind: tree.Kind}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		ext := filepath.Ext(path)
		if !slices.Contains(tree.Extensions, ext) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		module := strings.ReplaceAll(filepath.ToSlash(strings.TrimSuffix(rel, ext)), "/", ".")
		inv.Artifacts = append(inv.Artifacts, Artifact{Module: module, Size: info.Size()})
		inv.Total += info.Size()
		return nil
	})
	if err != nil {
		return Inventory{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "walk build output").
			WithContext(logfields.KeyPath, root).
			Build()
	}
	slog.Debug("Walked build output", logfields.Path(root), slog.String("kind", tree.Kind),
		slog.Int("files", len(inv.Artifacts)), slog.Int64("bytes", inv.Total))
	return inv, nil
}

// Emit records one metric per artifact and the tree total.
func Emit(inv Inventory, sink metrics.Sink) error {
	for _, a := range inv.Artifacts {
		if err := sink.Record("build/"+a.Module, inv.Kind, metrics.Bytes(a.Size), false); err != nil {
			return err
		}
	}
	return sink.Record("build/.total", inv.Kind, metrics.Bytes(inv.Total), false)
}

// Measure walks every tree below projectDir and emits the results.
func Measure(projectDir string, trees []TreeSpec, sink metrics.Sink) error {
	for _, tree := range trees {
		inv, err := Walk(filepath.Join(projectDir, tree.Dir), tree)
		if err != nil {
			return err
		}
		if err := Emit(inv, sink); err != nil {
			return err
		}
	}
	return nil
}
