// Package persistence saves a whole inventory to a text file and rebuilds it from one.
package persistence

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/abgdnv/bgrs/internal/inventory/codec"
	inverrors "github.com/abgdnv/bgrs/internal/inventory/errors"
	"github.com/abgdnv/bgrs/internal/inventory/store"
	"github.com/spf13/afero"
)

// DefaultPath is where the inventory is saved unless configured otherwise.
const DefaultPath = "inventaire_sauvegarde.txt"

// Gateway reads and writes inventory files on a filesystem.
type Gateway struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewGateway creates a gateway working on fsys.
func NewGateway(fsys afero.Fs, logger *slog.Logger) *Gateway {
	return &Gateway{
		fs:     fsys,
		logger: logger.With("component", "persistence"),
	}
}

// SkippedLine is a line that could not be loaded.
type SkippedLine struct {
	Line int // 1-based
	Err  error
}

// LoadReport summarizes a load.
type LoadReport struct {
	Loaded  int
	Skipped []SkippedLine
}

// Save overwrites path with one line per record, in store order.
// Returns ErrIO if the file cannot be opened, written or closed.
func (g *Gateway) Save(s *store.Store, path string) (err error) {
	f, err := g.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s for writing: %w", inverrors.ErrIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close %s: %w", inverrors.ErrIO, path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	count := 0
	for r := range s.All() {
		if _, err := w.WriteString(codec.Encode(r) + "\n"); err != nil {
			return fmt.Errorf("%w: failed to write %s: %w", inverrors.ErrIO, path, err)
		}
		count++
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", inverrors.ErrIO, path, err)
	}
	g.logger.Info("Inventory saved", "path", path, "records", count)
	return nil
}

// Load rebuilds a store from path. opts configure the returned store.
//
// A missing file is the normal first-run state and yields an empty store.
// Lines that cannot be decoded or inserted are skipped, logged with their line
// number and listed in the report; loading goes on with the next line.
// Records are inserted in file order, so the store holds them in reverse file order.
// Returns ErrIO if the file exists but cannot be opened or read.
func (g *Gateway) Load(path string, opts ...store.Option) (*store.Store, *LoadReport, error) {
	f, err := g.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.logger.Info("No saved inventory found, starting empty", "path", path)
			return store.New(opts...), &LoadReport{}, nil
		}
		return nil, nil, fmt.Errorf("%w: failed to open %s for reading: %w", inverrors.ErrIO, path, err)
	}
	defer f.Close()

	s := store.New(opts...)
	report := &LoadReport{}
	reader := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		text, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			s.Teardown()
			return nil, nil, fmt.Errorf("%w: failed to read %s at line %d: %w", inverrors.ErrIO, path, lineNo, readErr)
		}
		if text == "" && readErr != nil {
			break
		}

		if err := insertLine(s, trimEOL(text)); err != nil {
			g.logger.Warn("Skipping unreadable line", "path", path, "line", lineNo, "error", err)
			report.Skipped = append(report.Skipped, SkippedLine{Line: lineNo, Err: err})
		} else {
			report.Loaded++
		}

		if readErr != nil {
			break
		}
	}

	g.logger.Info("Inventory loaded", "path", path, "records", report.Loaded, "skipped", len(report.Skipped))
	return s, report, nil
}

func insertLine(s *store.Store, line string) error {
	record, err := codec.Decode(line)
	if err != nil {
		return err
	}
	return s.Insert(&record)
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
