package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/emit"
)

type yamlDocument struct {
	PlanSnapshots []struct {
		Name  string `yaml:"name"`
		Input string `yaml:"input"`
	} `yaml:"plan-snapshots"`
}

func Test_YAMLEmitter_Render(t *testing.T) {
	// arrange
	group := snapshot.Group{
		Folder: "basic",
		Entries: snapshot.Entries{
			{FileName: "select.sql", Plan: `{"Plan":{"Node Type":"Seq Scan"}}`},
			{FileName: "filter.sql", Plan: `[{"Plan":{"Filter":"(a = 'x')"}}]`},
		},
	}

	// act
	out, err := emit.NewYAMLEmitter().Render(group)

	// assert
	require.NoError(t, err)
	assert.Equal(t,
		"plan-snapshots:\n"+
			"- name: select_sql\n"+
			"  input: '{\"Plan\":{\"Node Type\":\"Seq Scan\"}}'\n"+
			"- name: filter_sql\n"+
			"  input: '[{\"Plan\":{\"Filter\":\"(a = ''x'')\"}}]'\n",
		string(out),
	)
}

func Test_YAMLEmitter_Render_EmptyGroup(t *testing.T) {
	out, err := emit.NewYAMLEmitter().Render(snapshot.Group{Folder: "empty"})

	require.NoError(t, err)
	assert.Equal(t, "plan-snapshots: []\n", string(out))
}

func Test_YAMLEmitter_Render_RoundTrip(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		plan     string
	}{
		{name: "compact json", fileName: "select.sql", plan: `{"Plan":{"Node Type":"Seq Scan"}}`},
		{name: "single quotes", fileName: "quotes.sql", plan: `Filter: (name = 'it''s')`},
		{name: "fallback text", fileName: "text.sql", plan: "Seq Scan on t (cost=0.00..1.00)"},
		{name: "empty plan", fileName: "empty.sql", plan: ""},
		{name: "yaml indicators", fileName: "indicators.sql", plan: `- a: b # c & *d !e %f @g`},
		{name: "multi line", fileName: "multi.sql", plan: "2|0|0|SCAN t\n3|0|0|USE TEMP B-TREE FOR ORDER BY"},
		{name: "multi line with indentation", fileName: "indented.sql", plan: "QUERY PLAN\n  ->  Seq Scan on t\n\n  trailing  "},
		{name: "lone carriage return", fileName: "cr.sql", plan: "Seq Scan\ron t"},
		{name: "carriage return line feed", fileName: "crlf.sql", plan: "QUERY PLAN\r\nSeq Scan on t"},
		{name: "control characters", fileName: "ctl.sql", plan: "bell\a tab\t \"quoted\" back\\slash \u2028 é"},
		{name: "carriage return in name", fileName: "odd\rname.sql", plan: "x"},
		{name: "reserved name", fileName: "yes", plan: "x"},
		{name: "name with spaces", fileName: "my query.sql", plan: "x"},
		{name: "numeric name", fileName: "01.sql", plan: "x"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			group := snapshot.Group{Folder: "g", Entries: snapshot.Entries{{FileName: tc.fileName, Plan: tc.plan}}}

			// act
			out, err := emit.NewYAMLEmitter().Render(group)
			require.NoError(t, err)

			var doc yamlDocument
			require.NoError(t, yaml.Unmarshal(out, &doc), string(out))

			// assert
			require.Len(t, doc.PlanSnapshots, 1)
			assert.Equal(t, snapshot.SymbolicName(tc.fileName), doc.PlanSnapshots[0].Name)
			assert.Equal(t, tc.plan, doc.PlanSnapshots[0].Input)
		})
	}
}

func Test_YAMLEmitter_Render_MultiLinePlanUsesLiteralBlock(t *testing.T) {
	group := snapshot.Group{Folder: "g", Entries: snapshot.Entries{{FileName: "a.sql", Plan: "line one\nline two"}}}

	out, err := emit.NewYAMLEmitter().Render(group)

	require.NoError(t, err)
	assert.Equal(t,
		"plan-snapshots:\n"+
			"- name: a_sql\n"+
			"  input: |-\n"+
			"    line one\n"+
			"    line two\n",
		string(out),
	)
}

func Test_YAMLEmitter_Render_CarriageReturnIsEscaped(t *testing.T) {
	group := snapshot.Group{Folder: "g", Entries: snapshot.Entries{{FileName: "a.sql", Plan: "Seq Scan\ron t"}}}

	out, err := emit.NewYAMLEmitter().Render(group)

	require.NoError(t, err)
	assert.Equal(t,
		"plan-snapshots:\n"+
			"- name: a_sql\n"+
			"  input: \"Seq Scan\\ron t\"\n",
		string(out),
	)
}
