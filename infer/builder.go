package infer

import (
	"fmt"
	"math"

	"github.com/bartolsthoorn/clonereg/milp"
)

// Problem is a built model together with the information needed to read its
// solution back.
type Problem struct {
	Model     *milp.Model
	Layout    Layout
	Influence Influence
	Params    Params
}

// Build validates in and params and returns the maximisation model. The
// result depends only on its arguments: equal inputs give identical models.
func Build(in *Input, params Params) (*Problem, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	n, m := in.Dims()
	b := &builder{
		in:     in,
		params: params,
		layout: Layout{Clones: n, Genes: m},
		model:  &milp.Model{},
	}
	b.influence = ActiveInfluence(in, params)

	b.addVariables()
	b.setObjective()
	b.addRowSums()
	b.addMixture()
	b.addExactlyOne()
	b.addCoupling()
	b.addProducts(Down)
	b.addProducts(Up)
	b.addTightening()

	return &Problem{
		Model:     b.model,
		Layout:    b.layout,
		Influence: b.influence,
		Params:    params,
	}, nil
}

type builder struct {
	in        *Input
	params    Params
	layout    Layout
	influence Influence
	model     *milp.Model
}

// each calls fn for every (clone, gene) pair in row-major order.
func (b *builder) each(fn func(i, p int)) {
	for i := 0; i < b.layout.Clones; i++ {
		for p := 0; p < b.layout.Genes; p++ {
			fn(i, p)
		}
	}
}

// addVariables creates the variables in Layout order.
func (b *builder) addVariables() {
	b.each(func(i, p int) {
		b.model.AddVar(valueName(i, p), 0, 1, milp.Continuous)
	})
	for _, s := range States {
		b.each(func(i, p int) {
			b.model.AddVar(selectorName(s, i, p), 0, 1, milp.Binary)
		})
	}
	for _, s := range []State{Down, Up} {
		b.each(func(i, p int) {
			b.model.AddVar(productName(s, i, p), 0, 1, milp.Continuous)
		})
	}
	if b.model.NumVars() != b.layout.NumVars() {
		panic(fmt.Sprintf("infer: created %d variables, layout has %d", b.model.NumVars(), b.layout.NumVars()))
	}
}

func (b *builder) setObjective() {
	logZ := logEffects(b.in)
	terms := make([]milp.Term, 0, NumStates*b.layout.Clones*b.layout.Genes)
	for _, s := range States {
		pr := prior(s, b.params.Alpha)
		b.each(func(i, p int) {
			terms = append(terms, milp.Term{
				Var:  b.layout.Selector(s, i, p),
				Coef: stateCoef(logZ[s], b.influence[i][p], p, pr),
			})
		})
	}
	b.model.SetObjective(true, terms)
}

// addRowSums keeps every clone's contributions within [1−ε, 1+ε]. The two
// one-sided rows stand in for the equality Σ_p c[i,p] = 1.
func (b *builder) addRowSums() {
	l := b.layout
	rows := make([][]milp.Term, l.Clones)
	for i := range rows {
		rows[i] = make([]milp.Term, l.Genes)
		for p := range rows[i] {
			rows[i][p] = milp.Term{Var: l.Value(i, p), Coef: 1}
		}
	}
	for i, row := range rows {
		b.model.AddConstraint(fmt.Sprintf("rowsum_lo_%d", i), row, milp.GreaterEq, 1-b.params.Eps)
	}
	for i, row := range rows {
		b.model.AddConstraint(fmt.Sprintf("rowsum_hi_%d", i), row, milp.LessEq, 1+b.params.Eps)
	}
}

// addMixture requires Σ_i u[i]·c[i,p] = d[p] for every gene.
func (b *builder) addMixture() {
	l := b.layout
	for p := 0; p < l.Genes; p++ {
		row := make([]milp.Term, l.Clones)
		for i := range row {
			row[i] = milp.Term{Var: l.Value(i, p), Coef: b.in.Mixture[i]}
		}
		b.model.AddConstraint(fmt.Sprintf("mix_%d", p), row, milp.Equal, b.in.Tumor[p])
	}
}

func (b *builder) addExactlyOne() {
	l := b.layout
	b.each(func(i, p int) {
		b.model.AddConstraint(fmt.Sprintf("one_%d_%d", i, p), []milp.Term{
			{Var: l.Selector(Down, i, p), Coef: 1},
			{Var: l.Selector(Neutral, i, p), Coef: 1},
			{Var: l.Selector(Up, i, p), Coef: 1},
		}, milp.Equal, 1)
	})
}

// addCoupling forces c⁻ = 1 when c < e and c⁺ = 1 when c > e.
func (b *builder) addCoupling() {
	l := b.layout
	b.each(func(i, p int) {
		b.model.AddConstraint(fmt.Sprintf("down_%d_%d", i, p), []milp.Term{
			{Var: l.Selector(Down, i, p), Coef: 1},
			{Var: l.Value(i, p), Coef: 1},
		}, milp.GreaterEq, b.in.Normal[p])
	})
	b.each(func(i, p int) {
		b.model.AddConstraint(fmt.Sprintf("up_%d_%d", i, p), []milp.Term{
			{Var: l.Selector(Up, i, p), Coef: 1},
			{Var: l.Value(i, p), Coef: -1},
		}, milp.GreaterEq, negate(b.in.Normal[p]))
	})
}

// addProducts linearises f_s = c_s·c for a binary c_s and c ∈ [0,1]:
//
//	f_s ≤ c_s,  f_s ≤ c,  f_s ≥ c_s + c − 1
func (b *builder) addProducts(s State) {
	l := b.layout
	b.each(func(i, p int) {
		b.model.AddConstraint(fmt.Sprintf("mc_%s_sel_%d_%d", s, i, p), []milp.Term{
			{Var: l.Product(s, i, p), Coef: 1},
			{Var: l.Selector(s, i, p), Coef: -1},
		}, milp.LessEq, 0)
	})
	b.each(func(i, p int) {
		b.model.AddConstraint(fmt.Sprintf("mc_%s_val_%d_%d", s, i, p), []milp.Term{
			{Var: l.Product(s, i, p), Coef: 1},
			{Var: l.Value(i, p), Coef: -1},
		}, milp.LessEq, 0)
	})
	b.each(func(i, p int) {
		b.model.AddConstraint(fmt.Sprintf("mc_%s_env_%d_%d", s, i, p), []milp.Term{
			{Var: l.Product(s, i, p), Coef: 1},
			{Var: l.Selector(s, i, p), Coef: -1},
			{Var: l.Value(i, p), Coef: -1},
		}, milp.GreaterEq, -1)
	})
}

// addTightening keeps a selected state at least ε away from the baseline:
// c⁻ = 1 implies c ≤ max(e−ε, 0) and c⁺ = 1 implies c ≥ min(e+ε, 1).
func (b *builder) addTightening() {
	l := b.layout
	eps := b.params.Eps
	b.each(func(i, p int) {
		b.model.AddConstraint(fmt.Sprintf("tight_minus_%d_%d", i, p), []milp.Term{
			{Var: l.Product(Down, i, p), Coef: 1},
			{Var: l.Selector(Down, i, p), Coef: 1},
		}, milp.LessEq, math.Max(b.in.Normal[p]-eps, 0)+1)
	})
	b.each(func(i, p int) {
		b.model.AddConstraint(fmt.Sprintf("tight_plus_%d_%d", i, p), []milp.Term{
			{Var: l.Product(Up, i, p), Coef: 1},
			{Var: l.Selector(Up, i, p), Coef: -1},
		}, milp.GreaterEq, math.Min(b.in.Normal[p]+eps, 1)-1)
	})
}

// negate returns -v without producing a negative zero.
func negate(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}
