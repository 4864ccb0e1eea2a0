package relation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRelation() Relation {
	return Relation{
		DocID:      "wsj_0001",
		Arg1:       Span{TokenList: Tokens(1, 2)},
		Arg2:       Span{TokenList: Tokens(4, 5)},
		Connective: Span{TokenList: Tokens()},
		Sense:      []string{"Comparison.Contrast"},
		Type:       TypeImplicit,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Relation)
		lang    string
		wantErr string
	}{
		{name: "valid", mutate: func(*Relation) {}, lang: English},
		{name: "missing type", mutate: func(r *Relation) { r.Type = "" }, lang: English, wantErr: "'Type'"},
		{name: "unknown type", mutate: func(r *Relation) { r.Type = "Bogus" }, lang: English, wantErr: "invalid type"},
		{name: "norel", mutate: func(r *Relation) { r.Type = TypeNoRel }, lang: English, wantErr: "NoRel"},
		{name: "no sense", mutate: func(r *Relation) { r.Sense = nil }, lang: English, wantErr: "'Sense'"},
		{name: "two senses", mutate: func(r *Relation) { r.Sense = []string{"EntRel", "EntRel"} }, lang: English, wantErr: "one element"},
		{name: "wrong language sense", mutate: func(*Relation) {}, lang: Chinese, wantErr: "invalid sense"},
		{name: "unknown language skips senses", mutate: func(r *Relation) { r.Sense = []string{"Whatever"} }, lang: "xx"},
		{name: "missing arg1", mutate: func(r *Relation) { r.Arg1.TokenList = nil }, lang: English, wantErr: "Arg1"},
		{name: "missing arg2", mutate: func(r *Relation) { r.Arg2.TokenList = nil }, lang: English, wantErr: "Arg2"},
		{name: "missing connective", mutate: func(r *Relation) { r.Connective.TokenList = nil }, lang: English, wantErr: "Connective"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRelation()
			tt.mutate(&r)
			err := Validate(&r, tt.lang)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateList(t *testing.T) {
	good := validRelation()
	bad := validRelation()
	bad.Type = TypeNoRel
	worse := validRelation()
	worse.Sense = nil

	assert.NoError(t, ValidateList([]Relation{good, good}, English))

	err := ValidateList([]Relation{good, bad, worse}, English)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation 1")
	assert.Contains(t, err.Error(), "relation 2")
	assert.NotContains(t, err.Error(), "relation 0")
}

func TestIdentifyLanguage(t *testing.T) {
	en := validRelation()
	zh := validRelation()
	zh.Sense = []string{"Causation"}

	assert.Equal(t, English, IdentifyLanguage([]Relation{en, en, zh}))
	assert.Equal(t, Chinese, IdentifyLanguage([]Relation{en, zh, zh}))
	assert.Equal(t, Chinese, IdentifyLanguage(nil))
	assert.Equal(t, EnglishSenses, ValidSenses([]Relation{en}))
}
