package ml

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
)

// MinTrainingSamples is the minimum dataset size below which training
// aborts without writing any artifact.
const MinTrainingSamples = 20

// TrainSeed fixes the train/test shuffle so repeated runs over the same
// data produce the same split.
const TrainSeed = 42

type Sample struct {
	Features FeatureVector
	Final    float64
}

type TrainResult struct {
	Bundle  Bundle
	Metrics Metrics
}

// Train fits the grade model on an 80/20 split: scaler statistics come
// from the training split only, RMSE and R² are reported on the held-out
// fifth. Returns ErrDataInsufficient below MinTrainingSamples.
func Train(samples []Sample, seed int64) (*TrainResult, error) {
	if len(samples) < MinTrainingSamples {
		return nil, fmt.Errorf("%w: have %d samples, need %d", pkgerrors.ErrDataInsufficient, len(samples), MinTrainingSamples)
	}

	idx := make([]int, len(samples))
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	nTest := len(samples) / 5
	if nTest == 0 {
		nTest = 1
	}
	testIdx := idx[:nTest]
	trainIdx := idx[nTest:]

	trainX := make([][]float64, 0, len(trainIdx))
	trainY := make([]float64, 0, len(trainIdx))
	for _, i := range trainIdx {
		trainX = append(trainX, samples[i].Features.Values())
		trainY = append(trainY, samples[i].Final)
	}
	testX := make([][]float64, 0, len(testIdx))
	testY := make([]float64, 0, len(testIdx))
	for _, i := range testIdx {
		testX = append(testX, samples[i].Features.Values())
		testY = append(testY, samples[i].Final)
	}

	var scaler StandardScaler
	scaler.Fit(trainX)

	var model LinearModel
	if err := model.Fit(scaler.TransformAll(trainX), trainY); err != nil {
		return nil, err
	}

	rmse, r2 := evaluate(&model, &scaler, testX, testY)

	res := &TrainResult{
		Bundle: Bundle{
			Model:        model,
			Scaler:       scaler,
			FeatureNames: FeatureNames(),
			TrainedAt:    time.Now().UTC(),
		},
		Metrics: Metrics{
			RMSE:         rmse,
			R2:           r2,
			NSamples:     len(samples),
			NFeatures:    len(FeatureNames()),
			FeatureNames: FeatureNames(),
		},
	}
	return res, nil
}

// Save persists both artifacts; the bundle first, then the metrics.
func (r *TrainResult) Save(modelPath, metricsPath string) error {
	if err := SaveBundle(modelPath, &r.Bundle); err != nil {
		return fmt.Errorf("save model bundle: %w", err)
	}
	if err := SaveMetrics(metricsPath, &r.Metrics); err != nil {
		return fmt.Errorf("save metrics: %w", err)
	}
	return nil
}

func evaluate(model *LinearModel, scaler *StandardScaler, X [][]float64, y []float64) (rmse, r2 float64) {
	if len(X) == 0 {
		return 0, 0
	}

	preds := make([]float64, len(X))
	for i, row := range X {
		preds[i] = model.Predict(scaler.Transform(row))
	}

	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(len(y))

	var ssRes, ssTot float64
	for i := range y {
		d := y[i] - preds[i]
		ssRes += d * d
		t := y[i] - meanY
		ssTot += t * t
	}

	rmse = math.Sqrt(ssRes / float64(len(y)))
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	return rmse, r2
}
