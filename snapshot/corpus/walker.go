package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

// DefaultPattern matches every .sql file at any depth.
const DefaultPattern = "**/*.sql"

const (
	logMsgSkippedRootFile = "skipping query file outside of a group folder"
	logMsgDiscoveredFile  = "discovered query file"
	logAttrPath           = "path"
	logAttrFolder         = "folder"
)

// ErrInvalidPattern is returned by WithPattern for patterns doublestar cannot parse.
var ErrInvalidPattern = errors.New("invalid query file pattern")

// Walker discovers query files below a root directory.
type Walker struct {
	pattern string
	logger  snapshot.Logger
}

// WalkerOption defines a functional option for configuring a Walker.
type WalkerOption func(*Walker) error

// WithPattern sets the doublestar pattern, relative to the walked root, that query files must match.
func WithPattern(pattern string) WalkerOption {
	return func(w *Walker) error {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}

		w.pattern = pattern

		return nil
	}
}

// WithWalkerLogger sets the logger for the Walker.
func WithWalkerLogger(logger snapshot.Logger) WalkerOption {
	return func(w *Walker) error {
		w.logger = logger
		return nil
	}
}

// NewWalker creates a Walker matching DefaultPattern unless configured otherwise.
func NewWalker(options ...WalkerOption) (*Walker, error) {
	w := &Walker{pattern: DefaultPattern}

	for _, option := range options {
		if err := option(w); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Walk calls fn for every query file below root. Directories are visited in lexical order, the
// files of a directory before those of its subdirectories.
//
// Files are read from disk while walking, so walking twice may observe different results if the
// tree changed in between. Walk stops at the first error returned by fn and returns it unchanged.
// It fails with snapshot.ErrDiscoveryFailed if root is missing, not a directory, or unreadable.
func (w *Walker) Walk(root string, fn func(snapshot.QueryFile) error) error {
	if err := requireDirectory(root); err != nil {
		return err
	}

	var callbackErr error

	walkErr := doublestar.GlobWalk(
		os.DirFS(root),
		w.pattern,
		func(relPath string, _ fs.DirEntry) error {
			folder, fileName, ok := splitGroupPath(relPath)
			if !ok {
				w.logDebug(logMsgSkippedRootFile, logAttrPath, relPath)
				return nil
			}

			w.logDebug(logMsgDiscoveredFile, logAttrPath, relPath, logAttrFolder, folder)

			queryFile := snapshot.BuildQueryFile(folder, fileName, filepath.Join(root, filepath.FromSlash(relPath)))
			if err := fn(queryFile); err != nil {
				callbackErr = err
				return err
			}

			return nil
		},
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)

	if callbackErr != nil {
		return callbackErr
	}

	if walkErr != nil {
		return errors.Join(snapshot.ErrDiscoveryFailed, walkErr)
	}

	return nil
}

// Files collects all query files below root, see Walk.
func (w *Walker) Files(root string) (snapshot.QueryFiles, error) {
	files := make(snapshot.QueryFiles, 0)

	err := w.Walk(root, func(queryFile snapshot.QueryFile) error {
		files = append(files, queryFile)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// splitGroupPath derives the group folder (first segment) and the file name (last segment) of a
// slash separated path relative to the walked root.
func splitGroupPath(relPath string) (folder string, fileName string, ok bool) {
	first, rest, found := strings.Cut(relPath, "/")
	if !found || first == "" || rest == "" {
		return "", "", false
	}

	return first, path.Base(relPath), true
}

func requireDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Join(snapshot.ErrDiscoveryFailed, err)
	}

	if !info.IsDir() {
		return errors.Join(snapshot.ErrDiscoveryFailed, fmt.Errorf("%s is not a directory", dir))
	}

	return nil
}

func (w *Walker) logDebug(message string, args ...any) {
	if w.logger != nil {
		w.logger.Debug(message, args...)
	}
}
