package scan

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	names := []string{"list1", "list2", "anotherlist"}

	for _, testCase := range []struct {
		name     string
		glob     string
		expected []string
	}{
		{name: "match all", glob: "*", expected: []string{"list1", "list2", "anotherlist"}},
		{name: "match with ?", glob: "list?", expected: []string{"list1", "list2"}},
		{name: "match with * at the end", glob: "list*", expected: []string{"list1", "list2"}},
		{name: "match with * at the beginning", glob: "*list", expected: []string{"anotherlist"}},
		{name: "match with multiple *", glob: "*list*", expected: []string{"list1", "list2", "anotherlist"}},
		{name: "no match", glob: "nomatch", expected: nil},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			got := slices.Collect(MatchGlob(testCase.glob, slices.Values(names)))
			assert.Equal(t, testCase.expected, got)
		})
	}
}
