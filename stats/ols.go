package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// rankTol is the relative singular value cutoff for the effective rank.
	rankTol = 1e-10
	// perfectFitTol bounds SSE relative to the dependent variable's sum of
	// squares below which residual variance is treated as zero.
	perfectFitTol = 1e-20
)

var (
	errTooFewObservations = errors.New("fewer observations than regressors")
	errSVD                = errors.New("SVD factorization failed")
)

// olsFit holds an ordinary least squares fit.
type olsFit struct {
	Coeffs    []float64
	StdErrors []float64
	Residuals []float64
	SSE       float64
	Rank      int
	// Perfect is set when the regressors explain the dependent variable
	// exactly, so standard errors are zero and t-ratios are undefined.
	Perfect bool
}

// olsRegression performs ordinary least squares regression of y on the rows
// of x. Rank-deficient designs get the minimum-norm solution, with degrees of
// freedom taken from the effective rank.
func olsRegression(x [][]float64, y []float64) (*olsFit, error) {
	n := len(y)
	if n == 0 || len(x) != n {
		return nil, errTooFewObservations
	}
	k := len(x[0])
	if n <= k {
		return nil, errTooFewObservations
	}

	design := mat.NewDense(n, k, nil)
	for i, row := range x {
		design.SetRow(i, row)
	}

	var svd mat.SVD
	if ok := svd.Factorize(design, mat.SVDThin); !ok {
		return nil, errSVD
	}
	rank := svd.Rank(rankTol)
	if rank == 0 {
		return nil, errSVD
	}

	yv := mat.NewVecDense(n, y)
	beta := mat.NewVecDense(k, nil)
	svd.SolveVecTo(beta, yv, rank)

	var fitted mat.VecDense
	fitted.MulVec(design, beta)

	residuals := make([]float64, n)
	floats.SubTo(residuals, y, fitted.RawVector().Data)
	sse := floats.Dot(residuals, residuals)

	fit := &olsFit{
		Coeffs:    mat.Col(nil, 0, beta),
		Residuals: residuals,
		SSE:       sse,
		Rank:      rank,
		StdErrors: make([]float64, k),
	}

	yy := floats.Dot(y, y)
	if yy == 0 || sse <= perfectFitTol*yy {
		fit.Perfect = true
		return fit, nil
	}

	df := n - rank
	if df <= 0 {
		return nil, errTooFewObservations
	}
	s2 := sse / float64(df)

	// diag((X'X)^+) = sum_j V[i,j]^2 / sigma_j^2 over the retained singular values
	var v mat.Dense
	svd.VTo(&v)
	sv := svd.Values(nil)
	for i := 0; i < k; i++ {
		d := 0.0
		for j := 0; j < rank; j++ {
			vij := v.At(i, j)
			d += vij * vij / (sv[j] * sv[j])
		}
		fit.StdErrors[i] = math.Sqrt(s2 * d)
	}

	return fit, nil
}

// tRatio returns the t statistic for coefficient i. For a perfect fit the
// statistic is -Inf when the coefficient is negative (deterministic mean
// reversion) and 0 otherwise (a unit root cannot be rejected).
func (f *olsFit) tRatio(i int) float64 {
	if f.Perfect {
		if f.Coeffs[i] < -1e-8 {
			return math.Inf(-1)
		}
		return 0
	}
	if f.StdErrors[i] == 0 {
		return math.NaN()
	}
	return f.Coeffs[i] / f.StdErrors[i]
}
