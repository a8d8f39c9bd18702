package snapshot

import "strings"

var symbolicNameReplacer = strings.NewReplacer("-", "_", ".", "_")

// SymbolicName derives the snapshot name of a query file from its file name,
// e.g. "select-all.sql" becomes "select_all_sql".
func SymbolicName(fileName string) string {
	return symbolicNameReplacer.Replace(fileName)
}
