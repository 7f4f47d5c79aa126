package recommend

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

const (
	// MinHiddenWidth is the narrowest hidden layer a Ranker is built with.
	MinHiddenWidth = 16
	// DefaultHiddenWidth is the hidden layer width used by the service.
	DefaultHiddenWidth = 32
)

// ErrInvalidParams is returned when loaded parameters do not form a valid network.
var ErrInvalidParams = errors.New("invalid ranker parameters")

// Ranker scores a feature vector as a relevance probability with a
// NumFeatures -> hidden (ReLU) -> 1 (sigmoid) feed-forward network.
//
// Parameters are plain data. Score never mutates them, so concurrent scoring
// is safe as long as nothing trains the same Ranker at the same time.
type Ranker struct {
	W1 [][NumFeatures]float64 `json:"w1"`
	B1 []float64              `json:"b1"`
	W2 []float64              `json:"w2"`
	B2 float64                `json:"b2"`
}

// NewRanker builds a Ranker with uniform(-1/sqrt(fan_in), 1/sqrt(fan_in))
// initialization from the given seed. Widths below MinHiddenWidth are raised.
func NewRanker(hidden int, seed int64) *Ranker {
	if hidden < MinHiddenWidth {
		hidden = MinHiddenWidth
	}
	rng := rand.New(rand.NewSource(seed))
	uniform := func(bound float64) float64 {
		return (rng.Float64()*2 - 1) * bound
	}

	r := &Ranker{
		W1: make([][NumFeatures]float64, hidden),
		B1: make([]float64, hidden),
		W2: make([]float64, hidden),
	}
	inBound := 1 / math.Sqrt(NumFeatures)
	for j := range r.W1 {
		for k := range r.W1[j] {
			r.W1[j][k] = uniform(inBound)
		}
		r.B1[j] = uniform(inBound)
	}
	outBound := 1 / math.Sqrt(float64(hidden))
	for j := range r.W2 {
		r.W2[j] = uniform(outBound)
	}
	r.B2 = uniform(outBound)
	return r
}

// Hidden returns the width of the hidden layer.
func (r *Ranker) Hidden() int {
	return len(r.W1)
}

// Validate checks that the parameter shapes agree and every value is finite.
func (r *Ranker) Validate() error {
	h := len(r.W1)
	if h < MinHiddenWidth {
		return fmt.Errorf("%w: hidden width %d below %d", ErrInvalidParams, h, MinHiddenWidth)
	}
	if len(r.B1) != h || len(r.W2) != h {
		return fmt.Errorf("%w: shape mismatch w1=%d b1=%d w2=%d", ErrInvalidParams, h, len(r.B1), len(r.W2))
	}
	for i, p := range r.params() {
		if math.IsNaN(*p) || math.IsInf(*p, 0) {
			return fmt.Errorf("%w: parameter %d is not finite", ErrInvalidParams, i)
		}
	}
	return nil
}

// Clone returns a deep copy of the parameters.
func (r *Ranker) Clone() *Ranker {
	c := &Ranker{
		W1: make([][NumFeatures]float64, len(r.W1)),
		B1: append([]float64(nil), r.B1...),
		W2: append([]float64(nil), r.W2...),
		B2: r.B2,
	}
	copy(c.W1, r.W1)
	return c
}

// Score returns the relevance probability of x, in [0, 1].
func (r *Ranker) Score(x FeatureVector) float64 {
	_, _, p := r.forward(x)
	return p
}

// forward returns the hidden pre-activations, the hidden activations and the output.
func (r *Ranker) forward(x FeatureVector) (pre, act []float64, out float64) {
	h := len(r.W1)
	pre = make([]float64, h)
	act = make([]float64, h)
	z := r.B2
	for j := 0; j < h; j++ {
		s := r.B1[j]
		for k := 0; k < NumFeatures; k++ {
			s += r.W1[j][k] * x[k]
		}
		pre[j] = s
		if s > 0 {
			act[j] = s
		}
		z += r.W2[j] * act[j]
	}
	return pre, act, sigmoid(z)
}

// gradients returns the mean binary cross-entropy over the batch and its
// gradient with respect to every parameter, shaped like r.
func (r *Ranker) gradients(xs []FeatureVector, ys []float64) (*Ranker, float64) {
	h := len(r.W1)
	g := &Ranker{
		W1: make([][NumFeatures]float64, h),
		B1: make([]float64, h),
		W2: make([]float64, h),
	}
	n := float64(len(xs))
	loss := 0.0

	for idx, x := range xs {
		y := ys[idx]
		pre, act, p := r.forward(x)
		loss += binaryCrossEntropy(p, y)

		// d(BCE)/dz through the sigmoid collapses to p - y.
		dz := (p - y) / n
		g.B2 += dz
		for j := 0; j < h; j++ {
			g.W2[j] += dz * act[j]
			if pre[j] <= 0 {
				continue
			}
			dh := dz * r.W2[j]
			g.B1[j] += dh
			for k := 0; k < NumFeatures; k++ {
				g.W1[j][k] += dh * x[k]
			}
		}
	}
	return g, loss / n
}

// params returns pointers to every parameter in a fixed order.
func (r *Ranker) params() []*float64 {
	h := len(r.W1)
	ps := make([]*float64, 0, h*(NumFeatures+2)+1)
	for j := range r.W1 {
		for k := range r.W1[j] {
			ps = append(ps, &r.W1[j][k])
		}
	}
	for j := range r.B1 {
		ps = append(ps, &r.B1[j])
	}
	for j := range r.W2 {
		ps = append(ps, &r.W2[j])
	}
	return append(ps, &r.B2)
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// minLog bounds log(0) the same way common BCE implementations do.
const minLog = -100.0

func clampedLog(x float64) float64 {
	if x <= 0 {
		return minLog
	}
	return math.Max(math.Log(x), minLog)
}

func binaryCrossEntropy(p, y float64) float64 {
	return -(y*clampedLog(p) + (1-y)*clampedLog(1-p))
}
