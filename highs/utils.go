package highs

import (
	"sort"

	"github.com/bartolsthoorn/clonereg/milp"
)

// rowwise is a milp.Model flattened into the compressed sparse row arrays
// Highs_passModel expects.
type rowwise struct {
	numCol, numRow int
	maximize       bool

	colCost, colLower, colUpper []float64
	kinds                       []milp.VarKind

	rowLower, rowUpper []float64
	start, index       []int
	value              []float64
}

func (lp *rowwise) hasInteger() bool {
	for _, k := range lp.kinds {
		if k != milp.Continuous {
			return true
		}
	}
	return false
}

// toRowwise converts a model to compressed sparse row format. Within a row
// terms are sorted by column and repeated columns are summed; every row gets
// a start entry, including rows whose coefficients cancel out.
func toRowwise(m *milp.Model) *rowwise {
	lp := &rowwise{
		numCol:   m.NumVars(),
		numRow:   m.NumConstraints(),
		maximize: m.Maximize,
		colCost:  make([]float64, m.NumVars()),
		colLower: make([]float64, m.NumVars()),
		colUpper: make([]float64, m.NumVars()),
		kinds:    make([]milp.VarKind, m.NumVars()),
		rowLower: make([]float64, m.NumConstraints()),
		rowUpper: make([]float64, m.NumConstraints()),
		start:    make([]int, m.NumConstraints()),
		index:    make([]int, 0, m.NumNonzeros()),
		value:    make([]float64, 0, m.NumNonzeros()),
	}
	copy(lp.colCost, m.Objective)
	for i, v := range m.Variables {
		lp.colLower[i] = v.Lower
		lp.colUpper[i] = v.Upper
		lp.kinds[i] = v.Kind
	}

	for r, c := range m.Constraints {
		lp.rowLower[r], lp.rowUpper[r] = c.Sense.Bounds(c.RHS)
		lp.start[r] = len(lp.index)

		sorted := make([]milp.Term, len(c.Terms))
		copy(sorted, c.Terms)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Var < sorted[j].Var
		})

		rowStart := len(lp.index)
		for _, t := range sorted {
			last := len(lp.index) - 1
			if last >= rowStart && lp.index[last] == int(t.Var) {
				lp.value[last] += t.Coef
				continue
			}
			lp.index = append(lp.index, int(t.Var))
			lp.value = append(lp.value, t.Coef)
		}
	}
	return lp
}
