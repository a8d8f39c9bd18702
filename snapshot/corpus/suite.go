package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

const (
	setupDirName    = "setup"
	setupScriptName = "setup.sql"
	queriesDirName  = "queries"
)

// Suites is an alias type for a slice of Suite
type Suites = []Suite

// Suite is one test suite below a snapshots root.
type Suite struct {
	Name string
	Root string
	// SetupScript is empty if the suite has no setup script.
	SetupScript string
	QueriesDir  string
}

// HasSetupScript reports whether the suite ships a setup script.
func (s Suite) HasSetupScript() bool {
	return s.SetupScript != ""
}

// DiscoverSuites lists the suites below snapshotsRoot in lexical order.
// A directory is a suite if it contains a queries directory.
//
// If names are given, only those suites are returned, in the given order; a name that does not
// denote a suite fails with snapshot.ErrDiscoveryFailed.
func DiscoverSuites(snapshotsRoot string, names ...string) (Suites, error) {
	if err := requireDirectory(snapshotsRoot); err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(snapshotsRoot)
	if err != nil {
		return nil, errors.Join(snapshot.ErrDiscoveryFailed, err)
	}

	found := make(map[string]Suite)
	ordered := make(Suites, 0)

	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() {
			continue
		}

		suite, ok, suiteErr := loadSuite(snapshotsRoot, dirEntry.Name())
		if suiteErr != nil {
			return nil, suiteErr
		}

		if ok {
			found[suite.Name] = suite
			ordered = append(ordered, suite)
		}
	}

	if len(names) == 0 {
		return ordered, nil
	}

	selected := make(Suites, 0, len(names))
	for _, name := range names {
		if slices.ContainsFunc(selected, func(s Suite) bool { return s.Name == name }) {
			continue
		}

		suite, ok := found[name]
		if !ok {
			return nil, errors.Join(snapshot.ErrDiscoveryFailed, fmt.Errorf("suite %q not found below %s", name, snapshotsRoot))
		}

		selected = append(selected, suite)
	}

	return selected, nil
}

func loadSuite(snapshotsRoot, name string) (Suite, bool, error) {
	root := filepath.Join(snapshotsRoot, name)
	queriesDir := filepath.Join(root, queriesDirName)

	info, err := os.Stat(queriesDir)
	if errors.Is(err, os.ErrNotExist) {
		return Suite{}, false, nil
	}
	if err != nil {
		return Suite{}, false, errors.Join(snapshot.ErrDiscoveryFailed, err)
	}
	if !info.IsDir() {
		return Suite{}, false, nil
	}

	suite := Suite{
		Name:       name,
		Root:       root,
		QueriesDir: queriesDir,
	}

	setupScript := filepath.Join(root, setupDirName, setupScriptName)
	if _, statErr := os.Stat(setupScript); statErr == nil {
		suite.SetupScript = setupScript
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return Suite{}, false, errors.Join(snapshot.ErrDiscoveryFailed, statErr)
	}

	return suite, true, nil
}
