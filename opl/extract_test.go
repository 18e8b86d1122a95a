package opl_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/opldsm/opl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtract_SimpleModel covers the three basic line shapes.
func TestExtract_SimpleModel(t *testing.T) {
	res, err := opl.Extract([]string{
		"1. Car is a physical object.",
		"2. Driving is a process.",
		"3. Driving requires Car.",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Car"}, res.Objects)
	assert.Equal(t, []string{"Driving"}, res.Processes)
	assert.Equal(t, []opl.Relation{{Object: "Car", Keyword: opl.Requires, Process: "Driving"}}, res.Relations)
	assert.Equal(t, opl.Stats{Lines: 3, Declarations: 2}, res.Stats)
}

// TestExtract_HandlesWithConjunction splits "and"-joined agents into one relation each.
func TestExtract_HandlesWithConjunction(t *testing.T) {
	res, err := opl.Extract([]string{"1. Fuel and Battery handles Engine."})
	require.NoError(t, err)

	assert.Equal(t, []string{"Engine"}, res.Processes)
	assert.Equal(t, []string{"Battery", "Fuel"}, res.Objects)
	assert.Equal(t, []opl.Relation{
		{Object: "Fuel", Keyword: opl.Handles, Process: "Engine"},
		{Object: "Battery", Keyword: opl.Handles, Process: "Engine"},
	}, res.Relations)
}

// TestExtract_TypedObjectList accepts commas and "and" in the object list.
func TestExtract_TypedObjectList(t *testing.T) {
	res, err := opl.Extract([]string{"7. Assembling consumes Bolts, Nuts and Frame."})
	require.NoError(t, err)

	require.Len(t, res.Relations, 3)
	for i, obj := range []string{"Bolts", "Nuts", "Frame"} {
		assert.Equal(t, opl.Relation{Object: obj, Keyword: opl.Consumes, Process: "Assembling"}, res.Relations[i])
	}
}

// TestExtract_FirstKeywordWins pins the known-ambiguous substring scan:
// "affects" outranks "requires" even when "requires" appears first in the text.
func TestExtract_FirstKeywordWins(t *testing.T) {
	res, err := opl.Extract([]string{"1. Tuning requires Engine and affects Speed."})
	require.NoError(t, err)

	assert.Equal(t, []string{"Tuning requires Engine and"}, res.Processes)
	require.Len(t, res.Relations, 1)
	assert.Equal(t, opl.Affects, res.Relations[0].Keyword)
	assert.Equal(t, "Speed", res.Relations[0].Object)
}

// TestExtract_RepeatedKeyword pins the known-ambiguous split when the chosen
// keyword occurs twice: the object list is everything after the first
// occurrence, so the second "requires" stays inside the object name.
func TestExtract_RepeatedKeyword(t *testing.T) {
	res, err := opl.Extract([]string{"1. Driving requires Car requires Fuel."})
	require.NoError(t, err)

	assert.Equal(t, []string{"Driving"}, res.Processes)
	assert.Equal(t, []opl.Relation{
		{Object: "Car requires Fuel", Keyword: opl.Requires, Process: "Driving"},
	}, res.Relations)
}

// TestExtract_KeywordMatchedAsSubstring keeps substring semantics for keywords.
func TestExtract_KeywordMatchedAsSubstring(t *testing.T) {
	res, err := opl.Extract([]string{"1. Reyields requires Gas."})
	require.NoError(t, err)

	// "requires" outranks "yields", so the split happens on "requires".
	require.Len(t, res.Relations, 1)
	assert.Equal(t, opl.Relation{Object: "Gas", Keyword: opl.Requires, Process: "Reyields"}, res.Relations[0])
}

func TestExtract_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		relations int
		stats     opl.Stats
	}{
		{
			name:      "trailing comma contributes nothing",
			lines:     []string{"1. Painting yields Car, ."},
			relations: 1,
			stats:     opl.Stats{Lines: 1},
		},
		{
			name:      "lines without dot are skipped",
			lines:     []string{"", "Painting yields Car", "1. Painting yields Car."},
			relations: 1,
			stats:     opl.Stats{Lines: 3, Skipped: 2},
		},
		{
			name:      "unrecognized line is ignored",
			lines:     []string{"1. Painting yields Car.", "2. This sentence means nothing."},
			relations: 1,
			stats:     opl.Stats{Lines: 2, Ignored: 1},
		},
		{
			name:      "duplicate relations are kept",
			lines:     []string{"1. Painting yields Car.", "2. Painting yields Car."},
			relations: 2,
			stats:     opl.Stats{Lines: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := opl.Extract(tt.lines)
			require.NoError(t, err)
			assert.Len(t, res.Relations, tt.relations)
			assert.Equal(t, tt.stats, res.Stats)
		})
	}
}

// TestExtract_NameBeforeIs keeps the whole remainder when " is " is absent.
func TestExtract_NameBeforeIs(t *testing.T) {
	res, err := opl.Extract([]string{
		"1. Steering Wheel is an informatical and physical object.",
		"2. Parking process",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Steering Wheel"}, res.Objects)
	assert.Equal(t, []string{"Parking process"}, res.Processes)
}

// TestExtract_InvalidInput rejects inputs missing either entity set.
func TestExtract_InvalidInput(t *testing.T) {
	tests := map[string][]string{
		"empty":        nil,
		"no dots":      {"Car is an object", "Driving is a process"},
		"objects only": {"1. Car is a physical object."},
		"process only": {"1. Driving is a process."},
	}
	for name, lines := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := opl.Extract(lines)
			require.ErrorIs(t, err, opl.ErrInvalidInput)
			assert.Nil(t, res)
		})
	}
}

// TestExtractReader_MatchesExtract feeds the same text through both front-ends.
func TestExtractReader_MatchesExtract(t *testing.T) {
	text := "1. Car is a physical object.\n\n2. Driving is a process.\r\n3. Driver handles Driving.\n"

	fromReader, err := opl.ExtractReader(strings.NewReader(text))
	require.NoError(t, err)
	fromLines, err := opl.Extract(strings.Split(text, "\n"))
	require.NoError(t, err)

	assert.Equal(t, fromLines.Processes, fromReader.Processes)
	assert.Equal(t, fromLines.Objects, fromReader.Objects)
	assert.Equal(t, fromLines.Relations, fromReader.Relations)
	assert.Equal(t, []string{"Car", "Driver"}, fromReader.Objects)
}

// TestExtract_UndeclaredMentions reports names only seen in relations.
func TestExtract_UndeclaredMentions(t *testing.T) {
	res, err := opl.Extract([]string{
		"1. Car is a physical object.",
		"2. Driving requires Car and Road.",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Car", "Road"}, res.Objects)
	assert.Equal(t, []string{"Road"}, res.Registry.Undeclared(opl.KindObject))
	assert.Equal(t, []string{"Driving"}, res.Registry.Undeclared(opl.KindProcess))
}
