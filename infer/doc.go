// Package infer builds and reads back the mixed-integer program that assigns
// every tumor clone and gene an expression contribution and a regulatory
// state.
//
// Build turns a mutation matrix B (clones×genes), the normal abundance
// vector e, the clone mixture u, the tumor abundance vector d and the effect
// probabilities Z = (Z⁻, Z⁰, Z⁺) into a milp.Model. The model maximises the
// log-likelihood of the chosen states and encodes every logical coupling with
// linear rows:
//
//	Σ_p c[i,p] ∈ [1−ε, 1+ε]                 row normalisation
//	Σ_i u[i]·c[i,p] = d[p]                 mixture consistency
//	c⁻ + c⁰ + c⁺ = 1                       exactly one state
//	c⁻ + c ≥ e[p],  c⁺ − c ≥ −e[p]          state/baseline coupling
//	f ≤ c_s, f ≤ c, f ≥ c_s + c − 1         f = c_s·c (McCormick)
//	f⁻ + c⁻ ≤ max(e−ε,0)+1, f⁺ − c⁺ ≥ min(e+ε,1)−1
//
// Extract maps solved values back to the clone×gene matrices.
package infer
