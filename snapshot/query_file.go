package snapshot

import (
	"errors"
	"os"
)

// QueryFiles is an alias type for a slice of QueryFile
type QueryFiles = []QueryFile

// QueryFile is one discovered query file of a corpus.
//
// Folder is the first path segment below the corpus root, FileName is the base name of the file.
// Both together identify the snapshot entry the file's plan ends up in.
type QueryFile struct {
	Folder   string
	FileName string
	Path     string
}

// BuildQueryFile is a factory method for QueryFile.
func BuildQueryFile(folder, fileName, path string) QueryFile {
	return QueryFile{
		Folder:   folder,
		FileName: fileName,
		Path:     path,
	}
}

// SQL reads the raw SQL text of the query file.
func (q QueryFile) SQL() (string, error) {
	content, err := os.ReadFile(q.Path)
	if err != nil {
		return "", errors.Join(ErrReadingQueryFileFailed, err)
	}

	return string(content), nil
}
