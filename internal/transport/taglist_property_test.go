package transport

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Comma-free tags submitted as a comma-joined string decode to the same
// list as the array form, modulo the whitespace trimming the service
// applies later.
func TestProperty_TagListStringAndArrayFormsAgree(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("comma-joined and array forms decode to the same tags", prop.ForAll(
		func(tags []string) bool {
			arrayForm, err := json.Marshal(tags)
			if err != nil {
				t.Logf("FAIL: could not marshal array form: %v", err)
				return false
			}
			stringForm, err := json.Marshal(strings.Join(tags, ","))
			if err != nil {
				t.Logf("FAIL: could not marshal string form: %v", err)
				return false
			}

			var fromArray, fromString TagList
			if err := json.Unmarshal(arrayForm, &fromArray); err != nil {
				t.Logf("FAIL: array form rejected: %v", err)
				return false
			}
			if err := json.Unmarshal(stringForm, &fromString); err != nil {
				t.Logf("FAIL: string form rejected: %v", err)
				return false
			}

			if len(fromArray) != len(fromString) {
				t.Logf("FAIL: length mismatch %d vs %d", len(fromArray), len(fromString))
				return false
			}
			for i := range fromArray {
				if fromArray[i] != fromString[i] {
					t.Logf("FAIL: tag %d mismatch %q vs %q", i, fromArray[i], fromString[i])
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.RegexMatch(`[a-z]{1,10}`)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestTagListRejectsOtherShapes(t *testing.T) {
	var tags TagList
	if err := json.Unmarshal([]byte(`{"a":1}`), &tags); err == nil {
		t.Error("Expected an object payload to be rejected")
	}
	if err := json.Unmarshal([]byte(`42`), &tags); err == nil {
		t.Error("Expected a numeric payload to be rejected")
	}
}
