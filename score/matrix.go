package score

// Candidate is a predicted relation that scores at or above the cutoff
// against some gold relation.
type Candidate struct {
	Pred  int
	Score float64
}

// Matrix is the sparse gold×predicted score matrix of one document.
// Row gi lists its candidates in ascending predicted index.
type Matrix struct {
	rows      [][]Candidate
	adjacency [][]bool
	suitors   []int
	numPred   int
}

// Build scores every gold/predicted pair with fn and keeps those at or
// above cutoff. Pairs scoring 0 are never kept, even with a zero cutoff.
func Build(gold, predicted []Scored, fn Func, cutoff float64) *Matrix {
	m := &Matrix{
		rows:      make([][]Candidate, len(gold)),
		adjacency: make([][]bool, len(gold)),
		suitors:   make([]int, len(predicted)),
		numPred:   len(predicted),
	}

	for gi := range gold {
		m.adjacency[gi] = make([]bool, len(predicted))
		for pi := range predicted {
			s := fn(&gold[gi], &predicted[pi])
			if s <= 0 || s < cutoff {
				continue
			}
			m.rows[gi] = append(m.rows[gi], Candidate{Pred: pi, Score: s})
			m.adjacency[gi][pi] = true
			m.suitors[pi]++
		}
	}
	return m
}

// NumGold returns the number of rows.
func (m *Matrix) NumGold() int { return len(m.rows) }

// NumPredicted returns the number of columns.
func (m *Matrix) NumPredicted() int { return m.numPred }

// Row returns the candidates of gold row gi.
func (m *Matrix) Row(gi int) []Candidate { return m.rows[gi] }

// Adjacent reports whether the pair (gi, pi) was retained.
func (m *Matrix) Adjacent(gi, pi int) bool { return m.adjacency[gi][pi] }

// Suitors returns how many gold rows retain predicted column pi.
func (m *Matrix) Suitors(pi int) int { return m.suitors[pi] }

// Score returns the retained score of (gi, pi) and whether it was retained.
func (m *Matrix) Score(gi, pi int) (float64, bool) {
	if !m.adjacency[gi][pi] {
		return 0, false
	}
	for _, c := range m.rows[gi] {
		if c.Pred == pi {
			return c.Score, true
		}
	}
	return 0, false
}

// Edges returns the total number of retained pairs.
func (m *Matrix) Edges() int {
	n := 0
	for _, row := range m.rows {
		n += len(row)
	}
	return n
}
