package infer_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/bartolsthoorn/clonereg/infer"
)

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	require.NoError(t, twoByTwo().Validate())
	require.NoError(t, infer.DefaultParams().Validate())
}

func TestBuildRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *infer.Input)
		want   error
	}{
		{"nil B", func(in *infer.Input) { in.Mutations = nil }, infer.ErrInputShape},
		{"short u", func(in *infer.Input) { in.Mixture = []float64{1} }, infer.ErrInputShape},
		{"long e", func(in *infer.Input) { in.Normal = []float64{0.5, 0.5, 0.5} }, infer.ErrInputShape},
		{"short d", func(in *infer.Input) { in.Tumor = nil }, infer.ErrInputShape},
		{"nil Z", func(in *infer.Input) { in.Effects[infer.Up] = nil }, infer.ErrInputShape},
		{"non-square Z", func(in *infer.Input) {
			in.Effects[infer.Neutral] = mat.NewDense(2, 3, nil)
		}, infer.ErrInputShape},
		{"non-binary B", func(in *infer.Input) { in.Mutations = dense([][]float64{{1, 0.5}, {0, 0}}) }, infer.ErrInvalidInput},
		{"e above 1", func(in *infer.Input) { in.Normal = []float64{1.5, 0.5} }, infer.ErrInvalidInput},
		{"negative u", func(in *infer.Input) { in.Mixture = []float64{1.5, -0.5} }, infer.ErrInvalidInput},
		{"u not summing to 1", func(in *infer.Input) { in.Mixture = []float64{0.5, 0.4} }, infer.ErrInvalidInput},
		{"NaN d", func(in *infer.Input) { in.Tumor = []float64{math.NaN(), 0.5} }, infer.ErrInvalidInput},
		{"zero Z", func(in *infer.Input) {
			in.Effects[infer.Down] = dense([][]float64{{0, 0.002}, {0.005, 0.005}})
			in.Effects[infer.Up] = dense([][]float64{{0.5, 0.003}, {0.005, 0.005}})
		}, infer.ErrInvalidProbability},
		{"Z triple off one", func(in *infer.Input) {
			in.Effects[infer.Up] = dense([][]float64{{0.3, 0.003}, {0.005, 0.5}})
		}, infer.ErrInvalidProbability},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := twoByTwo()
			tc.mutate(in)
			prob, err := infer.Build(in, infer.DefaultParams())
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, prob)
		})
	}
}

func TestBuildRejectsBadParams(t *testing.T) {
	for _, params := range []infer.Params{
		{Eps: 1e-5, Alpha: 0},
		{Eps: 1e-5, Alpha: 1},
		{Eps: 1e-5, Alpha: math.NaN()},
		{Eps: -1, Alpha: 0.99},
		{Eps: math.Inf(1), Alpha: 0.99},
	} {
		prob, err := infer.Build(twoByTwo(), params)
		require.ErrorIs(t, err, infer.ErrInvalidInput, "%+v", params)
		assert.Nil(t, prob)
	}
}

func TestShapeErrorIsChecked(t *testing.T) {
	in := twoByTwo()
	in.Effects[infer.Down] = mat.NewDense(3, 3, nil)
	err := in.Validate()

	var shape *infer.ShapeError
	require.True(t, errors.As(err, &shape))
	assert.Equal(t, "Z_minus", shape.Field)
	assert.Equal(t, "3x3", shape.Got)
	assert.Equal(t, "2x2", shape.Want)
	assert.NotErrorIs(t, err, infer.ErrInvalidProbability)
}

func TestProbabilityErrorNamesEntry(t *testing.T) {
	in := twoByTwo()
	in.Effects[infer.Neutral] = dense([][]float64{{0.5, 0.995}, {-0.99, 0.99}})
	err := in.Validate()

	var perr *infer.ProbabilityError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Z_zero[1,0]", perr.Field)
	assert.Equal(t, -0.99, perr.Value)
}
