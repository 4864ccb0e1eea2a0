package relation

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goldLine = `{"DocID": "wsj_1000", "ID": 7, "Arg1": {"CharacterSpanList": [[9, 20]], "RawText": "it rained", "TokenList": [[9, 11, 2, 0, 2], [12, 18, 3, 0, 3]]}, "Arg2": {"TokenList": [[30, 33, 6, 1, 0]]}, "Connective": {"TokenList": []}, "Sense": ["Expansion.Conjunction"], "Type": "Implicit"}`

const predictedLine = `{"DocID": "wsj_1000", "Arg1": {"TokenList": [2, 3]}, "Arg2": {"TokenList": [6]}, "Connective": {"TokenList": []}, "Sense": ["Expansion.Conjunction"], "Type": "Implicit"}`

func TestDecode(t *testing.T) {
	input := goldLine + "\n\n" + predictedLine + "\n"

	rels, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rels, 2)

	gold := rels[0]
	assert.Equal(t, "wsj_1000", gold.DocID)
	assert.Equal(t, 7, gold.ID)
	assert.Equal(t, []int{2, 3}, gold.Arg1.Positions())
	assert.True(t, gold.Arg1.TokenList[0].HasAddress)
	assert.Equal(t, 1, gold.Arg2.TokenList[0].Sentence)
	assert.Equal(t, [][2]int{{9, 20}}, gold.Arg1.CharacterSpanList)

	pred := rels[1]
	assert.Equal(t, []int{2, 3}, pred.Arg1.Positions())
	assert.False(t, pred.Arg1.TokenList[0].HasAddress)
	assert.NotNil(t, pred.Connective.TokenList)
	assert.Equal(t, "Expansion.Conjunction", pred.PrimarySense())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "{nope"},
		{name: "short address", input: `{"DocID": "d", "Arg1": {"TokenList": [[1, 2, 3]]}}`},
		{name: "string token", input: `{"DocID": "d", "Arg1": {"TokenList": ["x"]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	rels, err := Decode(strings.NewReader(goldLine + "\n" + predictedLine))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rels))
	assert.Contains(t, buf.String(), `[[9,11,2,0,2],[12,18,3,0,3]]`)
	assert.Contains(t, buf.String(), `"TokenList":[2,3]`)

	again, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, rels, again)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.json")
	require.NoError(t, os.WriteFile(path, []byte(predictedLine+"\n"), 0o644))

	rels, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, rels, 1)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestIndexSet(t *testing.T) {
	s := NewIndexSet(5, 1, 3, 3, 1)
	assert.Equal(t, IndexSet{1, 3, 5}, s)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(4))

	assert.Equal(t, 2, s.Intersect(NewIndexSet(3, 4, 5, 6)))
	assert.Equal(t, 0, s.Intersect(NewIndexSet()))
	assert.Equal(t, 0, NewIndexSet().Len())
}

func TestGroupByDoc(t *testing.T) {
	rels := []Relation{
		{DocID: "a", ID: 1},
		{DocID: "b", ID: 2},
		{DocID: "a", ID: 3},
	}

	groups := GroupByDoc(rels)
	require.Len(t, groups, 2)
	require.Len(t, groups["a"], 2)
	assert.Equal(t, 1, groups["a"][0].ID)
	assert.Equal(t, 3, groups["a"][1].ID)
	assert.Same(t, &rels[1], groups["b"][0])
}

func TestExplicitSplit(t *testing.T) {
	rels := []Relation{
		{ID: 1, Type: TypeExplicit},
		{ID: 2, Type: TypeImplicit},
		{ID: 3, Type: TypeEntRel},
	}

	assert.Len(t, Explicit(rels), 1)
	assert.Len(t, NonExplicit(rels), 2)
	assert.Equal(t, 2, NonExplicit(rels)[0].ID)
}
