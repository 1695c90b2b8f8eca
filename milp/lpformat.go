package milp

import (
	"bufio"
	"io"
	"math"
	"strconv"
)

// termsPerLine bounds LP-format line length; readers such as CPLEX reject
// lines longer than 255 characters.
const termsPerLine = 6

// WriteLP serialises the model in CPLEX LP text format. Unnamed variables
// and constraints are written as x<index> and r<index>.
func (m *Model) WriteLP(w io.Writer) error {
	bw := bufio.NewWriter(w)
	lw := &lpWriter{w: bw}

	if m.Maximize {
		lw.line("Maximize")
	} else {
		lw.line("Minimize")
	}
	obj := make([]Term, 0, len(m.Objective))
	for i, c := range m.Objective {
		if c != 0 {
			obj = append(obj, Term{Var: Var(i), Coef: c})
		}
	}
	lw.expr(m, " obj:", obj, "")
	lw.line("")

	lw.line("Subject To")
	for i, c := range m.Constraints {
		label := c.Name
		if label == "" {
			label = "r" + strconv.Itoa(i)
		}
		lw.expr(m, " "+label+":", c.Terms, " "+c.Sense.String()+" "+formatNumber(c.RHS))
	}

	lw.line("Bounds")
	for i, v := range m.Variables {
		if v.Kind == Binary && v.Lower == 0 && v.Upper == 1 {
			continue
		}
		name := m.varName(Var(i))
		switch {
		case math.IsInf(v.Lower, -1) && math.IsInf(v.Upper, 1):
			lw.line(" " + name + " free")
		default:
			lw.line(" " + formatNumber(v.Lower) + " <= " + name + " <= " + formatNumber(v.Upper))
		}
	}

	if m.NumBinary() > 0 {
		lw.line("Binaries")
		for i, v := range m.Variables {
			if v.Kind == Binary {
				lw.line(" " + m.varName(Var(i)))
			}
		}
	}
	lw.line("End")

	if lw.err != nil {
		return lw.err
	}
	return bw.Flush()
}

func (m *Model) varName(v Var) string {
	if name := m.Variables[v].Name; name != "" {
		return name
	}
	return "x" + strconv.Itoa(int(v))
}

type lpWriter struct {
	w   *bufio.Writer
	err error
}

func (lw *lpWriter) line(s string) {
	if lw.err != nil {
		return
	}
	if _, err := lw.w.WriteString(s); err != nil {
		lw.err = err
		return
	}
	lw.err = lw.w.WriteByte('\n')
}

// expr writes a labelled expression, wrapping long rows onto continuation lines.
func (lw *lpWriter) expr(m *Model, label string, terms []Term, suffix string) {
	buf := label
	if len(terms) == 0 {
		lw.line(buf + " 0" + suffix)
		return
	}
	for i, t := range terms {
		if i > 0 && i%termsPerLine == 0 {
			lw.line(buf)
			buf = "  "
		}
		coef := t.Coef
		sign := "+"
		if coef < 0 {
			sign = "-"
			coef = -coef
		}
		if i == 0 && sign == "+" {
			buf += " "
		} else {
			buf += " " + sign + " "
		}
		if coef != 1 {
			buf += formatNumber(coef) + " "
		}
		buf += m.varName(t.Var)
	}
	lw.line(buf + suffix)
}

func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
