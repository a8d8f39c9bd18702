package snapshot_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

func Test_NormalizePlan(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "compacts_json_object",
			raw:      "{\"Plan\": {\"Node Type\": \"Seq Scan\"}}\n",
			expected: `{"Plan":{"Node Type":"Seq Scan"}}`,
		},
		{
			name: "compacts_pretty_printed_postgres_plan",
			raw: `[
  {
    "Plan": {
      "Node Type": "Seq Scan",
      "Relation Name": "t",
      "Startup Cost": 0.00,
      "Total Cost": 35.50
    }
  }
]
`,
			expected: `[{"Plan":{"Node Type":"Seq Scan","Relation Name":"t","Startup Cost":0.0,"Total Cost":35.5}}]`,
		},
		{
			name:     "keeps_key_order",
			raw:      `{"z": 1, "a": 2, "m": 3}`,
			expected: `{"z":1,"a":2,"m":3}`,
		},
		{
			name:     "keeps_whitespace_inside_strings",
			raw:      `{"Filter": "(a = 'x y')"}`,
			expected: `{"Filter":"(a = 'x y')"}`,
		},
		{
			name:     "falls_back_to_trimmed_text",
			raw:      "  Seq Scan on t  (cost=0.00..1.00)\n",
			expected: "Seq Scan on t  (cost=0.00..1.00)",
		},
		{
			name:     "falls_back_on_broken_json",
			raw:      "{\"Plan\": \n",
			expected: `{"Plan":`,
		},
		{
			name:     "falls_back_on_concatenated_json_documents",
			raw:      "{\"a\": 1}\n{\"b\": 2}\n",
			expected: "{\"a\": 1}\n{\"b\": 2}",
		},
		{
			name:     "falls_back_on_trailing_content",
			raw:      "[1] trailing",
			expected: "[1] trailing",
		},
		{
			name:     "falls_back_on_unbalanced_closing_brace",
			raw:      `{"a":1}}`,
			expected: `{"a":1}}`,
		},
		{
			name:     "falls_back_on_malformed_number",
			raw:      `{"a": 1.2.3}`,
			expected: `{"a": 1.2.3}`,
		},
		{
			name:     "canonical_decimal_numbers",
			raw:      `{"a": 1.00, "b": 35.50, "c": 1E5, "d": 0.00001, "e": 2.5e16, "f": -0.0}`,
			expected: `{"a":1.0,"b":35.5,"c":100000.0,"d":1e-05,"e":2.5e+16,"f":-0.0}`,
		},
		{
			name:     "keeps_integer_digits",
			raw:      `[0, -7, 12345678901234567890123]`,
			expected: `[0,-7,12345678901234567890123]`,
		},
		{
			name:     "canonical_string_escapes",
			raw:      `{"caf\u00e9": "\u00e9 \/ \t <&>", "n": null, "b": [true, false], "o": {}, "l": []}`,
			expected: "{\"café\":\"é / \\t <&>\",\"n\":null,\"b\":[true,false],\"o\":{},\"l\":[]}",
		},
		{
			name:     "keeps_json_scalars_as_text",
			raw:      " 42 \n",
			expected: "42",
		},
		{
			name:     "empty_input",
			raw:      "\n",
			expected: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			normalized := snapshot.NormalizePlan(tc.raw)

			// assert
			assert.Equal(t, tc.expected, normalized)
		})
	}
}

func Test_NormalizePlan_IsIdempotent(t *testing.T) {
	inputs := []string{
		"{\"Plan\": {\"Node Type\": \"Seq Scan\"}}\n",
		"[ 1, 2, {\"x\" : [ ] } ]",
		`{"n": [1.00, 1e-7, 2E20, -0.5], "s": "\u0001\u00e9"}`,
		`{"s": "with \"escaped\" quotes and \\ backslash", "u": "é"}`,
		"Seq Scan on t (cost=0.00..1.00)",
		"  multi\n  line\n  text  \n",
		"{broken",
		"",
	}

	for _, input := range inputs {
		once := snapshot.NormalizePlan(input)
		twice := snapshot.NormalizePlan(once)

		assert.Equal(t, once, twice, "input: %q", input)
	}
}

func Test_IsStructuredPlan(t *testing.T) {
	assert.True(t, snapshot.IsStructuredPlan(`{"Plan":{}}`))
	assert.True(t, snapshot.IsStructuredPlan(" [1,2]\n"))
	assert.False(t, snapshot.IsStructuredPlan("Seq Scan on t"))
	assert.False(t, snapshot.IsStructuredPlan(`"just a string"`))
}

func Test_IsStructuredPlan_AgreesWithNormalizePlan(t *testing.T) {
	tests := []struct {
		name       string
		plan       string
		structured bool
	}{
		{name: "object", plan: `{"Plan":{}}`, structured: true},
		{name: "pretty array", plan: "[\n  1,\n  2\n]\n", structured: true},
		{name: "trailing text", plan: "[1] trailing", structured: false},
		{name: "extra closing brace", plan: `{"a":1}}`, structured: false},
		{name: "two documents", plan: "{\"a\": 1}\n{\"b\": 2}", structured: false},
		{name: "truncated", plan: `{"Plan":`, structured: false},
		{name: "plain text", plan: "Seq Scan on t", structured: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			structured := snapshot.IsStructuredPlan(tc.plan)
			normalized := snapshot.NormalizePlan(tc.plan)

			// assert
			assert.Equal(t, tc.structured, structured)
			if !tc.structured {
				assert.Equal(t, strings.TrimSpace(tc.plan), normalized)
			}
		})
	}
}

func Test_NormalizePlan_EquivalentDocumentsNormalizeEqually(t *testing.T) {
	assert.Equal(t, snapshot.NormalizePlan(`{"a": 1.0}`), snapshot.NormalizePlan(`{"a":1.00}`))
	assert.Equal(t, snapshot.NormalizePlan(`{"s": "\u00e9"}`), snapshot.NormalizePlan(`{"s":"é"}`))
}
