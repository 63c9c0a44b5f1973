package markov

import "gonum.org/v1/gonum/floats"

// Viterbi finds the most probable state sequence (linear probability space).
// It returns the state IDs and the probability of that path.
//
// Ties are broken toward the lowest state index, both when choosing the
// predecessor of a cell and when choosing the final state.
func Viterbi(prior []float64, trans, emis [][]float64, obs []int) ([]int, float64) {
	T := len(obs)
	N := len(prior)
	if T == 0 || N == 0 {
		return nil, 0
	}

	// delta[t][j] = best probability of a path ending at time t in state j
	delta := make([][]float64, T)
	// psi[t][j] = predecessor of j on that path
	psi := make([][]int, T)

	// t = 0
	delta[0] = make([]float64, N)
	psi[0] = make([]int, N)
	for j := range N {
		delta[0][j] = prior[j] * emis[j][obs[0]]
	}

	// t = 1..T-1
	candidates := make([]float64, N)
	for t := 1; t < T; t++ {
		delta[t] = make([]float64, N)
		psi[t] = make([]int, N)
		o := obs[t]
		for j := range N {
			for i := range N {
				candidates[i] = delta[t-1][i] * trans[i][j] * emis[j][o]
			}
			best := argmax(candidates)
			delta[t][j] = candidates[best]
			psi[t][j] = best
		}
	}

	// Backtrack from the best final state
	path := make([]int, T)
	path[T-1] = argmax(delta[T-1])
	for t := T - 1; t > 0; t-- {
		path[t-1] = psi[t][path[t]]
	}

	return path, delta[T-1][path[T-1]]
}

// argmax returns the first index holding the maximum value.
func argmax(s []float64) int {
	return floats.MaxIdx(s)
}
