// Package loc counts lines of the files tracked by a git repository and reports
// them per file and per directory.
package loc

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/versobench/internal/git"
	"git.home.luguber.info/inful/versobench/internal/logfields"
	"git.home.luguber.info/inful/versobench/internal/metrics"
)

// Dir is one directory of the inventory.
type Dir struct {
	Files map[string]int
	Dirs  map[string]*Dir
}

func newDir() *Dir { return &Dir{Files: map[string]int{}, Dirs: map[string]*Dir{}} }

// Total returns the lines of every file below d.
func (d *Dir) Total() int {
	n := 0
	for _, l := range d.Files {
		n += l
	}
	for _, sub := range d.Dirs {
		n += sub.Total()
	}
	return n
}

func (d *Dir) add(rel string, lines int) {
	parts := strings.Split(rel, "/")
	cur := d
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur.Dirs[p]
		if !ok {
			next = newDir()
			cur.Dirs[p] = next
		}
		cur = next
	}
	cur.Files[parts[len(parts)-1]] = lines
}

// Count builds the line inventory of the files tracked in the repository at root.
// Tracked files missing from the worktree are skipped.
func Count(root string) (*Dir, error) {
	files, err := git.TrackedFiles(root)
	if err != nil {
		return nil, err
	}
	inv := newDir()
	for _, rel := range files {
		n, err := countLines(filepath.Join(root, filepath.FromSlash(rel)))
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("Tracked file missing from worktree", logfields.File(rel))
			continue
		}
		if err != nil {
			return nil, err
		}
		inv.add(rel, n)
	}
	return inv, nil
}

// countLines counts newline-terminated lines, plus a final unterminated one.
func countLines(p string) (int, error) {
	f, err := os.Open(p)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, 32*1024)
	lines := 0
	var last byte = '\n'
	for {
		n, err := f.Read(buf)
		if n > 0 {
			lines += bytes.Count(buf[:n], []byte{'\n'})
			last = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if last != '\n' {
		lines++
	}
	return lines, nil
}

// Emit records files/<path>//loc for every file and directory, children before
// their parent, and files//loc for the whole repository.
func Emit(inv *Dir, sink metrics.Sink) error {
	_, err := emitDir(inv, "", sink)
	return err
}

func emitDir(d *Dir, rel string, sink metrics.Sink) (int, error) {
	names := make([]string, 0, len(d.Files)+len(d.Dirs))
	for n := range d.Files {
		names = append(names, n)
	}
	for n := range d.Dirs {
		names = append(names, n)
	}
	slices.Sort(names)

	total := 0
	for _, name := range names {
		child := path.Join(rel, name)
		if sub, ok := d.Dirs[name]; ok {
			n, err := emitDir(sub, child, sink)
			if err != nil {
				return 0, err
			}
			total += n
			continue
		}
		lines := d.Files[name]
		if err := sink.Record(path.Join("files", child), "loc", metrics.Count(float64(lines)), false); err != nil {
			return 0, err
		}
		total += lines
	}
	if err := sink.Record(path.Join("files", rel), "loc", metrics.Count(float64(total)), false); err != nil {
		return 0, err
	}
	return total, nil
}
