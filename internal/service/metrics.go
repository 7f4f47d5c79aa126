package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendRequestsTotal counts recommendation calls by outcome (ok, empty, error).
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chefcito_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"},
	)

	// RecommendDuration tracks how long a recommendation pass takes.
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chefcito_recommend_duration_seconds",
			Help:    "Duration of recommendation passes in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	// RecommendResults tracks how many recipes each call returned.
	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chefcito_recommend_results",
			Help:    "Number of recipes returned per recommendation",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)

	// TrainRunsTotal counts training calls by outcome (ok, noop, error).
	TrainRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chefcito_train_runs_total",
			Help: "Total number of ranker training runs",
		},
		[]string{"outcome"},
	)

	// TrainExamplesTotal counts labeled examples seen by the trainer.
	TrainExamplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chefcito_train_examples_total",
			Help: "Total number of labeled examples used for training",
		},
	)

	// TrainFinalLoss is the loss after the latest training run.
	TrainFinalLoss = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chefcito_train_final_loss",
			Help: "Binary cross-entropy after the most recent training run",
		},
	)

	// CorpusRecipes is the size of the loaded corpus.
	CorpusRecipes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chefcito_corpus_recipes",
			Help: "Number of recipes in the loaded corpus",
		},
	)

	// ModelStoreErrorsTotal counts model store failures by operation.
	ModelStoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chefcito_model_store_errors_total",
			Help: "Total number of model store failures",
		},
		[]string{"operation"},
	)
)

// RecordRecommend records one recommendation call.
func RecordRecommend(outcome string, results int, duration time.Duration) {
	RecommendRequestsTotal.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if outcome != "error" {
		RecommendResults.Observe(float64(results))
	}
}

// RecordTrain records one training call.
func RecordTrain(outcome string, examples int, finalLoss float64) {
	TrainRunsTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		TrainExamplesTotal.Add(float64(examples))
		TrainFinalLoss.Set(finalLoss)
	}
}
