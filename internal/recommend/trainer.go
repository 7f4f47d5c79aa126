package recommend

import "math"

// TrainConfig contains the optimizer settings for Train.
type TrainConfig struct {
	// Epochs is the number of full-batch gradient steps. Default: 50.
	Epochs int

	// LearningRate is the Adam step size. Default: 0.01.
	LearningRate float64

	// Beta1 and Beta2 are the first and second moment decay rates.
	// Defaults: 0.9 and 0.999.
	Beta1 float64
	Beta2 float64

	// Epsilon keeps the update finite when the second moment is tiny. Default: 1e-8.
	Epsilon float64
}

// DefaultTrainConfig returns the default training configuration.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Epochs:       50,
		LearningRate: 0.01,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-8,
	}
}

func (c TrainConfig) withDefaults() TrainConfig {
	d := DefaultTrainConfig()
	if c.Epochs <= 0 {
		c.Epochs = d.Epochs
	}
	if c.LearningRate <= 0 {
		c.LearningRate = d.LearningRate
	}
	if c.Beta1 <= 0 || c.Beta1 >= 1 {
		c.Beta1 = d.Beta1
	}
	if c.Beta2 <= 0 || c.Beta2 >= 1 {
		c.Beta2 = d.Beta2
	}
	if c.Epsilon <= 0 {
		c.Epsilon = d.Epsilon
	}
	return c
}

// TrainResult summarizes one training call.
type TrainResult struct {
	Examples    int     `json:"examples"`
	InitialLoss float64 `json:"initial_loss"`
	FinalLoss   float64 `json:"final_loss"`
}

// Train fits r to the user's feedback: liked recipes are labeled 1, disliked 0.
// corpus is the reference batch for ingredient weights; nil means liked and
// disliked together. With no labeled examples Train leaves r untouched.
//
// Train mutates r and must not run concurrently with scoring on the same Ranker.
func Train(r *Ranker, corpus, liked, disliked []Recipe, intent Intent, cfg TrainConfig) TrainResult {
	if len(liked)+len(disliked) == 0 {
		return TrainResult{}
	}
	cfg = cfg.withDefaults()

	if corpus == nil {
		corpus = make([]Recipe, 0, len(liked)+len(disliked))
		corpus = append(corpus, liked...)
		corpus = append(corpus, disliked...)
	}
	stats := NewCorpusStats(corpus, liked, disliked)

	xs := make([]FeatureVector, 0, len(liked)+len(disliked))
	ys := make([]float64, 0, len(liked)+len(disliked))
	for _, rec := range liked {
		xs = append(xs, BuildFeatures(ExtractMetadata(rec), intent, stats))
		ys = append(ys, 1)
	}
	for _, rec := range disliked {
		xs = append(xs, BuildFeatures(ExtractMetadata(rec), intent, stats))
		ys = append(ys, 0)
	}

	opt := newAdam(len(r.params()), cfg)
	res := TrainResult{Examples: len(xs)}
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		grads, loss := r.gradients(xs, ys)
		if epoch == 0 {
			res.InitialLoss = loss
		}
		opt.step(r.params(), grads.params())
	}
	_, res.FinalLoss = r.gradients(xs, ys)
	return res
}

// adam keeps the per-parameter moment estimates for one training call.
type adam struct {
	cfg TrainConfig
	m   []float64
	v   []float64
	t   int
}

func newAdam(n int, cfg TrainConfig) *adam {
	return &adam{cfg: cfg, m: make([]float64, n), v: make([]float64, n)}
}

func (a *adam) step(params, grads []*float64) {
	a.t++
	c1 := 1 - math.Pow(a.cfg.Beta1, float64(a.t))
	c2 := 1 - math.Pow(a.cfg.Beta2, float64(a.t))
	for i, p := range params {
		g := *grads[i]
		a.m[i] = a.cfg.Beta1*a.m[i] + (1-a.cfg.Beta1)*g
		a.v[i] = a.cfg.Beta2*a.v[i] + (1-a.cfg.Beta2)*g*g
		mHat := a.m[i] / c1
		vHat := a.v[i] / c2
		*p -= a.cfg.LearningRate * mHat / (math.Sqrt(vHat) + a.cfg.Epsilon)
	}
}
