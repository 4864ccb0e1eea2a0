// Package eval scores discourse parser output against gold relations, with
// exact and partial argument matching.
package eval

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jamesainslie/go-relalign/relation"
)

// TIRA layout file names.
const (
	GoldFile   = "relations.json"
	OutputFile = "output.json"
)

// Dataset is a gold set paired with a system's predictions.
type Dataset struct {
	Gold      []relation.Relation
	Predicted []relation.Relation
}

// LoadDataset reads gold and predicted relation files.
func LoadDataset(goldPath, predictedPath string) (*Dataset, error) {
	gold, err := relation.LoadFile(goldPath)
	if err != nil {
		return nil, fmt.Errorf("load gold: %w", err)
	}
	predicted, err := relation.LoadFile(predictedPath)
	if err != nil {
		return nil, fmt.Errorf("load predictions: %w", err)
	}
	return &Dataset{Gold: gold, Predicted: predicted}, nil
}

// LoadTIRA reads <datasetDir>/relations.json and <runDir>/output.json.
func LoadTIRA(datasetDir, runDir string) (*Dataset, error) {
	return LoadDataset(filepath.Join(datasetDir, GoldFile), filepath.Join(runDir, OutputFile))
}

// Language returns the sense inventory language: lang if set, otherwise the
// one guessed from the gold senses.
func (d *Dataset) Language(lang string) string {
	if lang != "" {
		return lang
	}
	return relation.IdentifyLanguage(d.Gold)
}

// Validate checks every predicted relation.
func (d *Dataset) Validate(lang string) error {
	return relation.ValidateList(d.Predicted, d.Language(lang))
}

// Subset restricts a dataset to some relation types.
type Subset struct {
	Name   string
	Filter func([]relation.Relation) []relation.Relation
}

// Subsets evaluated by a full report.
var Subsets = []Subset{
	{Name: "All", Filter: func(rs []relation.Relation) []relation.Relation { return rs }},
	{Name: "Explicit only", Filter: relation.Explicit},
	{Name: "Non-explicit only", Filter: relation.NonExplicit},
}

// Apply returns the dataset restricted to the subset.
func (s Subset) Apply(d *Dataset) *Dataset {
	return &Dataset{Gold: s.Filter(d.Gold), Predicted: s.Filter(d.Predicted)}
}

// Report holds exact and partial scores for one subset.
type Report struct {
	Subset  string
	Exact   *ExactResult
	Partial *PartialResult
}

// Evaluate scores every subset of the dataset. The sense inventory is
// chosen once from the full gold set.
func Evaluate(ctx context.Context, d *Dataset, cfg Config) ([]Report, error) {
	cfg.Language = d.Language(cfg.Language)

	reports := make([]Report, 0, len(Subsets))
	for _, s := range Subsets {
		sub := s.Apply(d)
		cfg.logger().Debug("evaluating subset",
			"subset", s.Name,
			"gold", len(sub.Gold),
			"predicted", len(sub.Predicted))

		partial, err := Partial(ctx, sub.Gold, sub.Predicted, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		reports = append(reports, Report{
			Subset:  s.Name,
			Exact:   Exact(sub.Gold, sub.Predicted, cfg),
			Partial: partial,
		})
	}
	return reports, nil
}
