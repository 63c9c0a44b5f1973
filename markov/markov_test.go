package markov

import (
	"math"
	"testing"
)

// Two-state weather model: 0=Rainy 1=Sunny, symbols 0=walk 1=shop 2=clean.
var (
	weatherPrior = []float64{0.6, 0.4}
	weatherTrans = [][]float64{
		{0.7, 0.3},
		{0.4, 0.6},
	}
	weatherEmis = [][]float64{
		{0.1, 0.4, 0.5},
		{0.6, 0.3, 0.1},
	}
)

func TestAlphabet(t *testing.T) {
	a := NewAlphabet("walk", "shop")
	id2 := a.Add("clean")
	id3 := a.Add("walk") // duplicate

	if id2 != 2 || id3 != 0 {
		t.Errorf("IDs: %d, %d; want 2, 0", id2, id3)
	}
	if a.Size() != 3 {
		t.Errorf("Size = %d, want 3", a.Size())
	}
	if a.Label(1) != "shop" || a.Label(7) != "" || a.Label(-1) != "" {
		t.Errorf("Label lookups wrong: %q %q %q", a.Label(1), a.Label(7), a.Label(-1))
	}
}

func TestAlphabetEncode(t *testing.T) {
	a := NewAlphabet("walk", "shop", "clean")

	ids, missing, ok := a.Encode([]string{"clean", "walk", "walk"})
	if !ok || missing != -1 {
		t.Fatalf("Encode failed at %d", missing)
	}
	want := []int{2, 0, 0}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids = %v, want %v", ids, want)
			break
		}
	}

	_, missing, ok = a.Encode([]string{"walk", "dog", "cat"})
	if ok || missing != 1 {
		t.Errorf("Encode missing = %d ok = %v, want 1 false", missing, ok)
	}
}

func TestForwardWeather(t *testing.T) {
	obs := []int{0, 1, 2}

	alpha := ForwardTable(weatherPrior, weatherTrans, weatherEmis, obs)
	if len(alpha) != 3 {
		t.Fatalf("table rows = %d, want 3", len(alpha))
	}
	// t=0: prior * emission(walk)
	if math.Abs(alpha[0][0]-0.06) > 1e-12 || math.Abs(alpha[0][1]-0.24) > 1e-12 {
		t.Errorf("alpha[0] = %v, want [0.06 0.24]", alpha[0])
	}
	// t=1: (0.06*0.7 + 0.24*0.4) * 0.4, (0.06*0.3 + 0.24*0.6) * 0.3
	if math.Abs(alpha[1][0]-0.0552) > 1e-12 || math.Abs(alpha[1][1]-0.0486) > 1e-12 {
		t.Errorf("alpha[1] = %v, want [0.0552 0.0486]", alpha[1])
	}

	p := Forward(weatherPrior, weatherTrans, weatherEmis, obs)
	if math.Abs(p-0.033612) > 1e-9 {
		t.Errorf("Forward = %v, want 0.033612", p)
	}
}

func TestForwardBruteForce(t *testing.T) {
	obs := []int{2, 0, 1, 1}

	// Sum the joint probability of every state path.
	var total float64
	N := len(weatherPrior)
	path := make([]int, len(obs))
	var walk func(pos int)
	walk = func(pos int) {
		if pos == len(obs) {
			p := weatherPrior[path[0]] * weatherEmis[path[0]][obs[0]]
			for t := 1; t < len(obs); t++ {
				p *= weatherTrans[path[t-1]][path[t]] * weatherEmis[path[t]][obs[t]]
			}
			total += p
			return
		}
		for s := range N {
			path[pos] = s
			walk(pos + 1)
		}
	}
	walk(0)

	got := Forward(weatherPrior, weatherTrans, weatherEmis, obs)
	if math.Abs(got-total) > 1e-12 {
		t.Errorf("Forward = %v, brute force = %v", got, total)
	}
}

func TestBackwardMatchesForward(t *testing.T) {
	sequences := [][]int{
		{0},
		{0, 1, 2},
		{2, 2, 1, 0, 0, 1},
	}
	for _, obs := range sequences {
		f := Forward(weatherPrior, weatherTrans, weatherEmis, obs)
		b := Backward(weatherPrior, weatherTrans, weatherEmis, obs)
		if math.Abs(f-b) > 1e-12 {
			t.Errorf("obs %v: forward %v != backward %v", obs, f, b)
		}
	}
}

func TestForwardEmpty(t *testing.T) {
	if ForwardTable(weatherPrior, weatherTrans, weatherEmis, nil) != nil {
		t.Error("expected nil table for empty sequence")
	}
	if Forward(weatherPrior, weatherTrans, weatherEmis, nil) != 0 {
		t.Error("expected zero likelihood for empty sequence")
	}
	if Backward(weatherPrior, weatherTrans, weatherEmis, nil) != 0 {
		t.Error("expected zero backward likelihood for empty sequence")
	}
}

func TestViterbiWeather(t *testing.T) {
	path, prob := Viterbi(weatherPrior, weatherTrans, weatherEmis, []int{0, 1, 2})
	if len(path) != 3 {
		t.Fatalf("path length = %d, want 3", len(path))
	}

	// Sunny, Rainy, Rainy: 0.24 -> 0.24*0.4*0.4 -> 0.0384*0.7*0.5
	want := []int{1, 0, 0}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v, want %v", path, want)
		}
	}
	if math.Abs(prob-0.01344) > 1e-12 {
		t.Errorf("prob = %v, want 0.01344", prob)
	}
}

func TestViterbiTieBreak(t *testing.T) {
	// Every state is equally likely everywhere; the lowest index must win.
	prior := []float64{0.5, 0.5}
	trans := [][]float64{
		{0.5, 0.5},
		{0.5, 0.5},
	}
	emis := [][]float64{
		{1.0},
		{1.0},
	}

	path, _ := Viterbi(prior, trans, emis, []int{0, 0, 0, 0})
	for i, s := range path {
		if s != 0 {
			t.Fatalf("path[%d] = %d, want 0 (path %v)", i, s, path)
		}
	}
}

func TestViterbiZeroProbability(t *testing.T) {
	// The symbol cannot be emitted by any state: all cells are zero and
	// the path falls back to state 0 everywhere.
	prior := []float64{0.5, 0.5}
	trans := [][]float64{
		{0.5, 0.5},
		{0.5, 0.5},
	}
	emis := [][]float64{
		{1.0, 0.0},
		{1.0, 0.0},
	}

	path, prob := Viterbi(prior, trans, emis, []int{1, 1})
	if prob != 0 {
		t.Errorf("prob = %v, want 0", prob)
	}
	if path[0] != 0 || path[1] != 0 {
		t.Errorf("path = %v, want [0 0]", path)
	}
}

func TestViterbiBruteForce(t *testing.T) {
	obs := []int{2, 0, 1, 1, 2}
	N := len(weatherPrior)

	bestProb := -1.0
	path := make([]int, len(obs))
	var walk func(pos int)
	walk = func(pos int) {
		if pos == len(obs) {
			p := weatherPrior[path[0]] * weatherEmis[path[0]][obs[0]]
			for t := 1; t < len(obs); t++ {
				p *= weatherTrans[path[t-1]][path[t]] * weatherEmis[path[t]][obs[t]]
			}
			if p > bestProb {
				bestProb = p
			}
			return
		}
		for s := range N {
			path[pos] = s
			walk(pos + 1)
		}
	}
	walk(0)

	_, prob := Viterbi(weatherPrior, weatherTrans, weatherEmis, obs)
	if math.Abs(prob-bestProb) > 1e-15 {
		t.Errorf("Viterbi prob = %v, brute force = %v", prob, bestProb)
	}
}

func TestViterbiEmpty(t *testing.T) {
	path, prob := Viterbi(weatherPrior, weatherTrans, weatherEmis, nil)
	if path != nil || prob != 0 {
		t.Errorf("got %v, %v; want nil, 0", path, prob)
	}
}
