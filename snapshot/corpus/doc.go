// Package corpus discovers the query files a plan snapshot run captures.
//
// A snapshots root holds one directory per suite:
//
//	<snapshots-root>/<suite>/setup/setup.sql
//	<snapshots-root>/<suite>/queries/<group>/<name>.sql
//
// DiscoverSuites lists the suites, a Walker enumerates the query files below a suite's
// queries directory. The group of a query file is the first path segment below the
// directory being walked, so deeper nesting still lands in the top-level group.
package corpus
