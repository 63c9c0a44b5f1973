package markov

import "gonum.org/v1/gonum/floats"

// ForwardTable runs the forward recurrence and returns the [T][N] table of
// joint probabilities alpha[t][j] = P(o_0..o_t, q_t = j).
// prior: [N], trans: [N][N], emis: [N][M], obs: [T] symbol IDs.
func ForwardTable(prior []float64, trans, emis [][]float64, obs []int) [][]float64 {
	T := len(obs)
	if T == 0 {
		return nil
	}
	N := len(prior)

	alpha := make([][]float64, T)

	// t = 0
	alpha[0] = make([]float64, N)
	for j := range N {
		alpha[0][j] = prior[j] * emis[j][obs[0]]
	}

	// t = 1..T-1, summing over every predecessor
	terms := make([]float64, N)
	for t := 1; t < T; t++ {
		alpha[t] = make([]float64, N)
		o := obs[t]
		for j := range N {
			for i := range N {
				terms[i] = alpha[t-1][i] * trans[i][j]
			}
			alpha[t][j] = floats.Sum(terms) * emis[j][o]
		}
	}
	return alpha
}

// Forward returns the likelihood P(obs | model): the sum of the last row of
// the forward table. No scaling is applied, so long sequences underflow.
func Forward(prior []float64, trans, emis [][]float64, obs []int) float64 {
	alpha := ForwardTable(prior, trans, emis, obs)
	if len(alpha) == 0 {
		return 0
	}
	return floats.Sum(alpha[len(alpha)-1])
}

// Backward runs the backward recurrence and folds in the first observation,
// returning the same likelihood as Forward up to rounding.
func Backward(prior []float64, trans, emis [][]float64, obs []int) float64 {
	T := len(obs)
	if T == 0 {
		return 0
	}
	N := len(prior)

	// beta[T-1][i] = 1
	beta := make([]float64, N)
	for i := range N {
		beta[i] = 1
	}

	next := make([]float64, N)
	terms := make([]float64, N)
	for t := T - 2; t >= 0; t-- {
		o := obs[t+1]
		for i := range N {
			for j := range N {
				terms[j] = trans[i][j] * emis[j][o] * beta[j]
			}
			next[i] = floats.Sum(terms)
		}
		beta, next = next, beta
	}

	for i := range N {
		terms[i] = prior[i] * emis[i][obs[0]] * beta[i]
	}
	return floats.Sum(terms)
}
