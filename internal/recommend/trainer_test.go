package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrainNoExamplesIsNoop(t *testing.T) {
	r := NewRanker(32, 1)
	before := r.Clone()

	res := Train(r, sampleCorpus(), nil, nil, openIntent("chicken"), DefaultTrainConfig())

	assert.Equal(t, TrainResult{}, res)
	assert.Equal(t, before, r)
}

func TestTrainReducesLoss(t *testing.T) {
	corpus := sampleCorpus()
	liked := corpus[:2]
	disliked := corpus[3:5]
	intent := openIntent("chicken", "rice", "onion")

	r := NewRanker(32, 42)
	res := Train(r, corpus, liked, disliked, intent, DefaultTrainConfig())

	assert.Equal(t, 4, res.Examples)
	assert.Less(t, res.FinalLoss, res.InitialLoss)
	assert.NoError(t, r.Validate())
}

func TestTrainSeparatesLikedFromDisliked(t *testing.T) {
	corpus := sampleCorpus()
	liked := corpus[:1]
	disliked := corpus[4:5]
	intent := openIntent("chicken", "rice")

	r := NewRanker(32, 7)
	cfg := DefaultTrainConfig()
	cfg.Epochs = 200
	Train(r, corpus, liked, disliked, intent, cfg)

	stats := NewCorpusStats(corpus, liked, disliked)
	likedScore := r.Score(BuildFeatures(ExtractMetadata(liked[0]), intent, stats))
	dislikedScore := r.Score(BuildFeatures(ExtractMetadata(disliked[0]), intent, stats))
	assert.Greater(t, likedScore, dislikedScore)
}

func TestTrainNilCorpusUsesFeedback(t *testing.T) {
	liked := []Recipe{chickenRice()}
	r1 := NewRanker(16, 3)
	r2 := NewRanker(16, 3)

	Train(r1, nil, liked, nil, openIntent("rice"), DefaultTrainConfig())
	Train(r2, liked, liked, nil, openIntent("rice"), DefaultTrainConfig())

	assert.Equal(t, r2, r1)
}

func TestTrainConfigDefaults(t *testing.T) {
	assert.Equal(t, DefaultTrainConfig(), TrainConfig{}.withDefaults())

	cfg := TrainConfig{Epochs: 5, LearningRate: 0.1}.withDefaults()
	assert.Equal(t, 5, cfg.Epochs)
	assert.Equal(t, 0.1, cfg.LearningRate)
	assert.Equal(t, 0.9, cfg.Beta1)
}

func TestTrainIsDeterministic(t *testing.T) {
	corpus := sampleCorpus()
	r1 := NewRanker(32, 5)
	r2 := NewRanker(32, 5)
	Train(r1, corpus, corpus[:2], corpus[2:3], openIntent("beef"), DefaultTrainConfig())
	Train(r2, corpus, corpus[:2], corpus[2:3], openIntent("beef"), DefaultTrainConfig())
	assert.Equal(t, r1, r2)
}
