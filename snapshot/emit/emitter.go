package emit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

// Format names an output format.
type Format string

const (
	// FormatYAML selects the YAMLEmitter.
	FormatYAML Format = "yaml"

	// FormatXML selects the XMLEmitter.
	FormatXML Format = "xml"
)

// ErrUnsupportedFormat is returned by ForFormat for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Emitter renders one snapshot group into the content of one template file.
type Emitter interface {
	// Extension is the file extension without the leading dot, e.g. "yaml".
	Extension() string
	Render(group snapshot.Group) ([]byte, error)
}

// SupportedFormats lists the format names accepted by ForFormat.
func SupportedFormats() []Format {
	return []Format{FormatYAML, FormatXML}
}

// ForFormat returns the Emitter for a format name.
func ForFormat(format Format) (Emitter, error) {
	switch format {
	case FormatYAML:
		return NewYAMLEmitter(), nil
	case FormatXML:
		return NewXMLEmitter(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}

// OutputFileName returns the template file name for a folder, <folder>.tpl.<extension>.
func OutputFileName(e Emitter, folder string) string {
	return folder + ".tpl." + e.Extension()
}

// WriteGroup renders the group and writes it to outDir, replacing any previous file.
// The directory is created if it does not exist. It returns the path of the written file.
//
// The content is written to a temporary file in outDir first and then renamed over the target,
// so the target never holds a partially written document.
func WriteGroup(e Emitter, outDir string, group snapshot.Group) (string, error) {
	content, renderErr := e.Render(group)
	if renderErr != nil {
		return "", errors.Join(snapshot.ErrEmittingFailed, renderErr)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", errors.Join(snapshot.ErrEmittingFailed, err)
	}

	target := filepath.Join(outDir, OutputFileName(e, group.Folder))

	if err := writeFileAtomic(target, content); err != nil {
		return "", errors.Join(snapshot.ErrEmittingFailed, err)
	}

	return target, nil
}

func writeFileAtomic(target string, content []byte) error {
	if err := atomic.WriteFile(target, bytes.NewReader(content)); err != nil {
		return err
	}

	// a freshly created file inherits the temp file's 0600
	return os.Chmod(target, 0o644)
}
