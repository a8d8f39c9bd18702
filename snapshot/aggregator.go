package snapshot

import "sort"

// Entry is one captured plan inside a Group.
type Entry struct {
	FileName string
	Plan     string
}

// Name returns the symbolic name of the entry, see SymbolicName.
func (e Entry) Name() string {
	return SymbolicName(e.FileName)
}

// Entries is an alias type for a slice of Entry
type Entries = []Entry

// Group is the set of entries recorded for one folder, in recording order.
// It is handed to the template emitters by value.
type Group struct {
	Folder  string
	Entries Entries
}

// SortedByFileName returns a copy of the Group with its entries ordered lexically by file name.
func (g Group) SortedByFileName() Group {
	entries := make(Entries, len(g.Entries))
	copy(entries, g.Entries)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].FileName < entries[j].FileName
	})

	return Group{Folder: g.Folder, Entries: entries}
}

// Aggregator collects normalized plans per folder.
//
// Recording the same (folder, file name) pair twice overwrites the plan but keeps the position
// of the first recording. The zero value is not usable, use NewAggregator.
// An Aggregator is not safe for concurrent use.
type Aggregator struct {
	folders []string
	groups  map[string]*orderedEntries
}

type orderedEntries struct {
	entries Entries
	index   map[string]int
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		folders: make([]string, 0),
		groups:  make(map[string]*orderedEntries),
	}
}

// Record inserts or overwrites the plan for the given folder and file name.
func (a *Aggregator) Record(folder, fileName, plan string) {
	group, ok := a.groups[folder]
	if !ok {
		group = &orderedEntries{index: make(map[string]int)}
		a.groups[folder] = group
		a.folders = append(a.folders, folder)
	}

	if pos, seen := group.index[fileName]; seen {
		group.entries[pos].Plan = plan
		return
	}

	group.index[fileName] = len(group.entries)
	group.entries = append(group.entries, Entry{FileName: fileName, Plan: plan})
}

// Groups returns the recorded folder names in the order they were first recorded.
func (a *Aggregator) Groups() []string {
	folders := make([]string, len(a.folders))
	copy(folders, a.folders)

	return folders
}

// Entries returns a copy of the entries recorded for the folder, in recording order.
// It returns nil for an unknown folder.
func (a *Aggregator) Entries(folder string) Entries {
	group, ok := a.groups[folder]
	if !ok {
		return nil
	}

	entries := make(Entries, len(group.entries))
	copy(entries, group.entries)

	return entries
}

// Group returns the folder's Group. The returned value does not share memory with the Aggregator.
func (a *Aggregator) Group(folder string) Group {
	return Group{Folder: folder, Entries: a.Entries(folder)}
}

// Len returns the total number of recorded entries across all folders.
func (a *Aggregator) Len() int {
	total := 0
	for _, group := range a.groups {
		total += len(group.entries)
	}

	return total
}
