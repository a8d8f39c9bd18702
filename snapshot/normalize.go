package snapshot

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// NormalizePlan turns the raw text of an explain plan into its canonical form.
//
// Structured plans (a single JSON object or array) are re-serialized without insignificant
// whitespace. Key order is kept as returned by the engine; strings are written with the minimal
// escaping, integers keep their digits, and other numbers are written in their shortest round-trip
// form with a fraction or exponent (1.00 becomes 1.0, 35.50 becomes 35.5).
// Anything else is returned with leading and trailing whitespace trimmed.
//
// NormalizePlan never fails, and NormalizePlan(NormalizePlan(p)) == NormalizePlan(p) for every input.
func NormalizePlan(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if canonical, ok := canonicalJSON(trimmed); ok {
		return canonical
	}

	return trimmed
}

// IsStructuredPlan reports whether NormalizePlan treats the plan as structured data.
func IsStructuredPlan(plan string) bool {
	_, ok := canonicalJSON(strings.TrimSpace(plan))
	return ok
}

// canonicalJSON re-serializes s if it is exactly one JSON object or array, and reports whether it was.
func canonicalJSON(s string) (string, bool) {
	if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		return "", false
	}

	iter := jsoniter.ConfigFastest.BorrowIterator([]byte(s))
	defer jsoniter.ConfigFastest.ReturnIterator(iter)

	stream := jsoniter.ConfigFastest.BorrowStream(nil)
	defer jsoniter.ConfigFastest.ReturnStream(stream)

	copyValue(iter, stream)
	if iter.Error != nil || stream.Error != nil {
		return "", false
	}

	// exactly one document: nothing but whitespace may follow
	if iter.WhatIsNext() != jsoniter.InvalidValue || iter.Error != io.EOF {
		return "", false
	}

	return string(stream.Buffer()), true
}

func copyValue(iter *jsoniter.Iterator, stream *jsoniter.Stream) {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		stream.WriteObjectStart()
		first := true
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
			if !first {
				stream.WriteMore()
			}
			first = false

			stream.WriteObjectField(field)
			copyValue(iter, stream)

			return iter.Error == nil
		})
		stream.WriteObjectEnd()

	case jsoniter.ArrayValue:
		stream.WriteArrayStart()
		first := true
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			if !first {
				stream.WriteMore()
			}
			first = false

			copyValue(iter, stream)

			return iter.Error == nil
		})
		stream.WriteArrayEnd()

	case jsoniter.StringValue:
		stream.WriteString(iter.ReadString())

	case jsoniter.NumberValue:
		number, ok := canonicalNumber(string(iter.ReadNumber()))
		if !ok {
			iter.ReportError("canonicalJSON", "invalid number")
			return
		}
		stream.WriteRaw(number)

	case jsoniter.BoolValue:
		stream.WriteBool(iter.ReadBool())

	case jsoniter.NilValue:
		iter.ReadNil()
		stream.WriteNil()

	default:
		iter.ReportError("canonicalJSON", "unexpected token")
	}
}

// canonicalNumber keeps integer literals and rewrites all other numbers in their shortest
// round-trip form, in exponent notation below 1e-4 and from 1e16 on.
func canonicalNumber(literal string) (string, bool) {
	// jsoniter collects any run of number characters; the grammar is checked here
	if !json.Valid([]byte(literal)) {
		return "", false
	}

	if !strings.ContainsAny(literal, ".eE") {
		return literal, true
	}

	f, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(f, 0) {
		return literal, true
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64), true
	}

	formatted := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(formatted, ".") {
		formatted += ".0"
	}

	return formatted, true
}
