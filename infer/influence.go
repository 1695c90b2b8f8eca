package infer

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Influence lists, for every clone i and target gene p, the source genes q
// that are mutated in clone i and whose edge q→p is not neutral
// (Z⁰[q,p] < α−ε). Influence[i][p] is sorted ascending.
type Influence [][][]int

// ActiveInfluence computes the active-influence sets of a validated input.
func ActiveInfluence(in *Input, params Params) Influence {
	n, m := in.Dims()
	threshold := params.Alpha - params.Eps

	// informative[q][p] marks edges q→p that carry a signal.
	informative := make([][]bool, m)
	for q := range informative {
		informative[q] = make([]bool, m)
		for p := range informative[q] {
			informative[q][p] = in.Effects[Neutral].At(q, p) < threshold
		}
	}

	sets := make(Influence, n)
	for i := range sets {
		sets[i] = make([][]int, m)
		for q := 0; q < m; q++ {
			if in.Mutations.At(i, q) != 1 {
				continue
			}
			for p := 0; p < m; p++ {
				if informative[q][p] {
					sets[i][p] = append(sets[i][p], q)
				}
			}
		}
	}
	return sets
}

// Edges returns the total number of active (clone, source, target) triples.
func (inf Influence) Edges() int {
	total := 0
	for _, row := range inf {
		for _, sources := range row {
			total += len(sources)
		}
	}
	return total
}

// Uninformed returns the number of (clone, gene) pairs that fall back to the
// flat prior because no active source gene influences them.
func (inf Influence) Uninformed() int {
	total := 0
	for _, row := range inf {
		for _, sources := range row {
			if len(sources) == 0 {
				total++
			}
		}
	}
	return total
}

// prior is the flat state probability used when no source gene is active.
func prior(s State, alpha float64) float64 {
	if s == Neutral {
		return alpha
	}
	return (1 - alpha) / 2
}

// logEffects returns log Z_s for every state.
func logEffects(in *Input) [NumStates]*mat.Dense {
	var out [NumStates]*mat.Dense
	for _, s := range States {
		l := mat.DenseCopyOf(in.Effects[s])
		l.Apply(func(_, _ int, v float64) float64 { return math.Log(v) }, l)
		out[s] = l
	}
	return out
}

// stateCoef is the objective coefficient of c_s[i,p]: the summed
// log-probabilities of the active sources, or the log prior when none is
// active.
func stateCoef(logZ *mat.Dense, sources []int, p int, prior float64) float64 {
	if len(sources) == 0 {
		return math.Log(prior)
	}
	sum := 0.0
	for _, q := range sources {
		sum += logZ.At(q, p)
	}
	return sum
}
