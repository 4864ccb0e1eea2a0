package eval

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrHeadMap is returned when a connective head map cannot be loaded.
var ErrHeadMap = errors.New("invalid connective head map")

// HeadMap maps raw connective text to its head words, e.g.
// "two weeks after" to "after". Connectives without an entry are their own
// head.
type HeadMap struct {
	heads map[string]string
}

// headFile is the YAML layout of a head map file.
type headFile struct {
	Heads map[string]string `yaml:"heads"`
}

// NewHeadMap returns a head map from raw connective to head.
func NewHeadMap(heads map[string]string) *HeadMap {
	h := &HeadMap{heads: make(map[string]string, len(heads))}
	for raw, head := range heads {
		h.heads[normalizeConnective(raw)] = normalizeConnective(head)
	}
	return h
}

// LoadHeadMap reads a YAML head map file.
func LoadHeadMap(path string) (*HeadMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read head map: %w", err)
	}

	var f headFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrHeadMap, path, err)
	}
	for raw, head := range f.Heads {
		if headIndices(strings.Fields(normalizeConnective(raw)), normalizeConnective(head)) == nil {
			return nil, fmt.Errorf("%w: head %q is not part of %q", ErrHeadMap, head, raw)
		}
	}
	return NewHeadMap(f.Heads), nil
}

// Len returns the number of mapped connectives.
func (h *HeadMap) Len() int { return len(h.heads) }

// Head returns the head of a raw connective and the positions of its words
// within the connective.
func (h *HeadMap) Head(raw string) (string, []int) {
	raw = normalizeConnective(raw)
	words := strings.Fields(raw)

	head, ok := h.heads[raw]
	if ok {
		if idx := headIndices(words, head); idx != nil {
			return head, idx
		}
	}

	all := make([]int, len(words))
	for i := range all {
		all[i] = i
	}
	return raw, all
}

// headIndices locates head as a contiguous run of words; nil if absent.
func headIndices(words []string, head string) []int {
	hw := strings.Fields(head)
	if len(hw) == 0 {
		return nil
	}
	for start := 0; start+len(hw) <= len(words); start++ {
		if slices.Equal(words[start:start+len(hw)], hw) {
			idx := make([]int, len(hw))
			for i := range idx {
				idx[i] = start + i
			}
			return idx
		}
	}
	return nil
}

func normalizeConnective(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
