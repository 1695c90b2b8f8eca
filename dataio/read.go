// Package dataio reads problem instances from whitespace-delimited text files
// and writes solved matrices and the run summary.
package dataio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/bartolsthoorn/clonereg/infer"
)

// Input file names inside an instance directory.
const (
	MutationsFile = "B.txt"
	MixtureFile   = "u.txt"
	NormalFile    = "e.txt"
	TumorFile     = "d.txt"
	TruthFile     = "C.txt"
	TruthSignFile = "C_sign.txt"
)

// EffectsFile returns the file name of Z_s, e.g. "Z_minus.txt".
func EffectsFile(s infer.State) string {
	return "Z_" + s.String() + ".txt"
}

// ErrMalformed indicates a file that is not a numeric matrix or vector.
var ErrMalformed = errors.New("malformed numeric file")

// ParseError reports where a numeric file could not be read.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("dataio: %s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("dataio: %s: %s", e.Path, e.Msg)
}

// Is reports whether target is ErrMalformed.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformed
}

// Instance is an input directory loaded into memory.
type Instance struct {
	Input *infer.Input

	// Truth and TruthSign are the optional ground-truth C and C_sign. They are
	// only used to report deviations.
	Truth     *mat.Dense
	TruthSign *mat.Dense
}

// LoadInstance reads the required files B, u, e, d, Z_minus, Z_zero and
// Z_plus from dir, and C and C_sign when present.
func LoadInstance(dir string) (*Instance, error) {
	in := &infer.Input{}
	var err error
	if in.Mutations, err = ReadMatrix(filepath.Join(dir, MutationsFile)); err != nil {
		return nil, err
	}
	if in.Mixture, err = ReadVector(filepath.Join(dir, MixtureFile)); err != nil {
		return nil, err
	}
	if in.Normal, err = ReadVector(filepath.Join(dir, NormalFile)); err != nil {
		return nil, err
	}
	if in.Tumor, err = ReadVector(filepath.Join(dir, TumorFile)); err != nil {
		return nil, err
	}
	for _, s := range infer.States {
		if in.Effects[s], err = ReadMatrix(filepath.Join(dir, EffectsFile(s))); err != nil {
			return nil, err
		}
	}

	inst := &Instance{Input: in}
	n, m := in.Dims()
	if inst.Truth, err = readOptional(filepath.Join(dir, TruthFile), n, m); err != nil {
		return nil, err
	}
	if inst.TruthSign, err = readOptional(filepath.Join(dir, TruthSignFile), n, m); err != nil {
		return nil, err
	}
	return inst, nil
}

func readOptional(path string, rows, cols int) (*mat.Dense, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	m, err := ReadMatrix(path)
	if err != nil {
		return nil, err
	}
	if r, c := m.Dims(); r != rows || c != cols {
		return nil, &ParseError{Path: path, Msg: fmt.Sprintf("shape %dx%d, want %dx%d", r, c, rows, cols)}
	}
	return m, nil
}

// ReadMatrix reads a whitespace-delimited matrix, one row per line.
func ReadMatrix(path string) (*mat.Dense, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &ParseError{Path: path, Msg: "no values"}
	}
	cols := len(rows[0].values)
	data := make([]float64, 0, len(rows)*cols)
	for _, r := range rows {
		if len(r.values) != cols {
			return nil, &ParseError{Path: path, Line: r.line, Msg: fmt.Sprintf("%d values, want %d", len(r.values), cols)}
		}
		data = append(data, r.values...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// ReadVector reads whitespace-delimited values, on one line or several.
func ReadVector(path string) ([]float64, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	var v []float64
	for _, r := range rows {
		v = append(v, r.values...)
	}
	if len(v) == 0 {
		return nil, &ParseError{Path: path, Msg: "no values"}
	}
	return v, nil
}

type row struct {
	line   int
	values []float64
}

func readRows(path string) ([]row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := parseRows(f)
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Path = path
	}
	return rows, err
}

// parseRows splits r into lines of floats. Blank lines and text after '#'
// are ignored.
func parseRows(r io.Reader) ([]row, error) {
	var rows []row
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		values := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Msg: fmt.Sprintf("%q is not a number", f)}
			}
			values[i] = v
		}
		rows = append(rows, row{line: line, values: values})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
