package emit

import (
	"bytes"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

const yamlTemplate = `plan-snapshots:{{ if not .Entries }} []{{ end }}
{{- range .Entries }}
- name: {{ yamlName .Name }}
{{- if needsEscapes .Plan }}
  input: {{ doubleQuoted .Plan }}
{{- else if contains "\n" .Plan }}
  input: |-
{{ .Plan | indent 4 }}
{{- else }}
  input: {{ singleQuoted .Plan }}
{{- end }}
{{- end }}
`

var plainYAMLName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// YAML 1.1 resolves these plain scalars to booleans or null, so they are never written unquoted.
var yamlReservedWords = map[string]struct{}{
	"y": {}, "n": {}, "yes": {}, "no": {}, "on": {}, "off": {},
	"true": {}, "false": {}, "null": {},
}

var extraFunctionMap = template.FuncMap{
	"singleQuoted": singleQuoted,
	"doubleQuoted": strconv.Quote,
	"needsEscapes": needsEscapes,
	"yamlName":     yamlName,
}

var yamlFunctionMap = sprig.TxtFuncMap()

func init() {
	maps.Copy(yamlFunctionMap, extraFunctionMap)
}

// YAMLEmitter renders a group as a plan-snapshots YAML document.
//
//	plan-snapshots:
//	- name: select_sql
//	  input: '{"Plan":{"Node Type":"Seq Scan"}}'
//
// Plans are single-quoted with embedded single quotes doubled. A plan spanning several lines is
// written as a literal block scalar instead, because a single-quoted scalar folds line breaks.
// A plan holding a carriage return or another non-printable character is written double-quoted
// with escapes, since no other scalar style can carry it unchanged.
type YAMLEmitter struct {
	template *template.Template
}

// NewYAMLEmitter creates a YAMLEmitter.
func NewYAMLEmitter() *YAMLEmitter {
	return &YAMLEmitter{
		template: template.Must(template.New("plan_snapshots_yaml").Funcs(yamlFunctionMap).Parse(yamlTemplate)),
	}
}

// Extension implements Emitter.
func (e *YAMLEmitter) Extension() string {
	return string(FormatYAML)
}

// Render implements Emitter.
func (e *YAMLEmitter) Render(group snapshot.Group) ([]byte, error) {
	var buf bytes.Buffer

	if err := e.template.Execute(&buf, group); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func singleQuoted(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// needsEscapes reports whether s holds a character other than line feed and tab that YAML
// either treats as a line break (carriage return) or does not allow unescaped.
func needsEscapes(s string) bool {
	for _, r := range s {
		if r == '\n' || r == '\t' {
			continue
		}

		if r == utf8.RuneError || !unicode.IsPrint(r) {
			return true
		}
	}

	return false
}

func yamlName(name string) string {
	if needsEscapes(name) || strings.Contains(name, "\n") {
		return strconv.Quote(name)
	}

	if !plainYAMLName.MatchString(name) {
		return singleQuoted(name)
	}

	if _, reserved := yamlReservedWords[strings.ToLower(name)]; reserved {
		return singleQuoted(name)
	}

	return name
}
