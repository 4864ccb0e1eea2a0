package relation

import (
	"errors"
	"fmt"
	"slices"
)

// Languages with a known sense inventory.
const (
	English = "en"
	Chinese = "zh"
)

// Types lists the relation types accepted in system output.
var Types = []string{TypeExplicit, TypeImplicit, TypeAltLex, TypeEntRel, TypeNoRel}

// EnglishSenses is the CoNLL 2016 English sense inventory.
var EnglishSenses = []string{
	"Temporal.Asynchronous.Precedence",
	"Temporal.Asynchronous.Succession",
	"Temporal.Synchrony",
	"Contingency.Cause.Reason",
	"Contingency.Cause.Result",
	"Contingency.Condition",
	"Comparison.Contrast",
	"Comparison.Concession",
	"Expansion.Conjunction",
	"Expansion.Instantiation",
	"Expansion.Restatement",
	"Expansion.Alternative",
	"Expansion.Alternative.Chosen alternative",
	"Expansion.Exception",
	"EntRel",
}

// ChineseSenses is the CoNLL 2016 Chinese sense inventory.
var ChineseSenses = []string{
	"Alternative",
	"Causation",
	"Conditional",
	"Conjunction",
	"Contrast",
	"EntRel",
	"Expansion",
	"Progression",
	"Purpose",
	"Temporal",
}

// SensesFor returns the sense inventory for lang, or nil if lang is unknown.
func SensesFor(lang string) []string {
	switch lang {
	case English:
		return EnglishSenses
	case Chinese:
		return ChineseSenses
	default:
		return nil
	}
}

// Validate checks that a system relation has the fields the scorers need.
// An unknown lang skips the sense inventory check.
func Validate(r *Relation, lang string) error {
	if r.Type == "" {
		return fmt.Errorf("%w: field 'Type' is required but not found", ErrInvalid)
	}
	if !slices.Contains(Types, r.Type) {
		return fmt.Errorf("%w: invalid type of %s", ErrInvalid, r.Type)
	}
	if r.Type == TypeNoRel {
		return fmt.Errorf("%w: NoRel should be removed as it is treated as a negative example", ErrInvalid)
	}

	switch len(r.Sense) {
	case 0:
		return fmt.Errorf("%w: field 'Sense' is required but not found", ErrInvalid)
	case 1:
	default:
		return fmt.Errorf("%w: sense field must be a list of one element, got %d", ErrInvalid, len(r.Sense))
	}
	if senses := SensesFor(lang); senses != nil && !slices.Contains(senses, r.Sense[0]) {
		return fmt.Errorf("%w: invalid sense of %s", ErrInvalid, r.Sense[0])
	}

	if r.Arg1.TokenList == nil {
		return fmt.Errorf("%w: field 'Arg1.TokenList' is required but not found", ErrInvalid)
	}
	if r.Arg2.TokenList == nil {
		return fmt.Errorf("%w: field 'Arg2.TokenList' is required but not found", ErrInvalid)
	}
	if r.Connective.TokenList == nil {
		return fmt.Errorf("%w: field 'Connective.TokenList' is required but not found", ErrInvalid)
	}
	return nil
}

// ValidateList validates every relation and joins all failures.
func ValidateList(rs []Relation, lang string) error {
	var errs []error
	for i := range rs {
		if err := Validate(&rs[i], lang); err != nil {
			errs = append(errs, fmt.Errorf("relation %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// IdentifyLanguage guesses the language of a gold set from its senses.
func IdentifyLanguage(gold []Relation) string {
	var english, chinese int
	for i := range gold {
		sense := gold[i].PrimarySense()
		switch {
		case slices.Contains(EnglishSenses, sense):
			english++
		case slices.Contains(ChineseSenses, sense):
			chinese++
		}
	}
	if english > chinese {
		return English
	}
	return Chinese
}

// ValidSenses returns the sense inventory matching the gold set's language.
func ValidSenses(gold []Relation) []string {
	return SensesFor(IdentifyLanguage(gold))
}
