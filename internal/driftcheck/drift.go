// Package driftcheck computes field-level differences between the expected
// and actual property bags of a drifted resource. The control plane usually
// reports these itself; this is the fallback when it returns only the bags.
package driftcheck

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"driftremediator/internal/models"
)

// Difference types, matching the control plane's vocabulary.
const (
	DifferenceTypeAdd      = "ADD"
	DifferenceTypeRemove   = "REMOVE"
	DifferenceTypeNotEqual = "NOT_EQUAL"
)

// ComparePropertyBags walks both bags and returns one diff per divergent
// property, with slash-separated paths and values rendered as JSON scalars.
// Nested maps are descended into; anything else is compared as a whole.
func ComparePropertyBags(expected, actual map[string]any) []models.PropertyDiff {
	var diffs []models.PropertyDiff
	compareLevel("", expected, actual, &diffs)
	return diffs
}

func compareLevel(prefix string, expected, actual map[string]any, diffs *[]models.PropertyDiff) {
	for _, key := range unionKeys(expected, actual) {
		path := prefix + "/" + key
		expectedValue, inExpected := expected[key]
		actualValue, inActual := actual[key]

		switch {
		case !inExpected:
			*diffs = append(*diffs, models.PropertyDiff{
				PropertyPath:   path,
				ActualValue:    formatValue(actualValue),
				DifferenceType: DifferenceTypeAdd,
			})
		case !inActual:
			*diffs = append(*diffs, models.PropertyDiff{
				PropertyPath:   path,
				ExpectedValue:  formatValue(expectedValue),
				DifferenceType: DifferenceTypeRemove,
			})
		default:
			expectedMap, expectedIsMap := expectedValue.(map[string]any)
			actualMap, actualIsMap := actualValue.(map[string]any)
			if expectedIsMap && actualIsMap {
				compareLevel(path, expectedMap, actualMap, diffs)
				continue
			}
			if !reflect.DeepEqual(expectedValue, actualValue) {
				*diffs = append(*diffs, models.PropertyDiff{
					PropertyPath:   path,
					ExpectedValue:  formatValue(expectedValue),
					ActualValue:    formatValue(actualValue),
					DifferenceType: DifferenceTypeNotEqual,
				})
			}
		}
	}
}

func unionKeys(a, b map[string]any) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var keys []string
	for key := range a {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for key := range b {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	}
}
