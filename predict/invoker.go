// Package predict turns a validated patient record into a recurrence
// prediction using the loaded classifier.
package predict

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"thyrocast/ml"
	"thyrocast/patient"
)

type Label string

const (
	LabelRecurred    Label = "recurred"
	LabelNotRecurred Label = "not_recurred"
)

// Verdict is the clinical reading shown to the user. It can disagree with the
// label: a sub-0.5 probability still reads as likely for high-risk patients,
// and mid-range probabilities are flagged as borderline.
type Verdict string

const (
	VerdictLikely     Verdict = "likely"
	VerdictBorderline Verdict = "borderline"
	VerdictUnlikely   Verdict = "unlikely"
)

// Result is the classifier output for one record. Probability is the
// recurrence class probability; Label is recurred iff Probability >= 0.5.
type Result struct {
	Label        Label   `json:"predicted_label"`
	Probability  float64 `json:"probability"`
	ConfidenceNo float64 `json:"confidence_no"`
	Verdict      Verdict `json:"verdict"`
	HighRisk     bool    `json:"high_risk"`
}

// Thresholds control the verdict bands.
type Thresholds struct {
	BorderlineLow  float64 `yaml:"borderline_low"`
	BorderlineHigh float64 `yaml:"borderline_high"`
	HighRiskFloor  float64 `yaml:"high_risk_floor"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{BorderlineLow: 0.30, BorderlineHigh: 0.50, HighRiskFloor: 0.35}
}

// Invoker validates, encodes and classifies submitted records. Identical
// submissions within a session hit an LRU instead of the model.
type Invoker struct {
	model      ml.Classifier
	thresholds Thresholds
	cache      *lru.Cache[string, Result]
}

func NewInvoker(model ml.Classifier, thresholds Thresholds, cacheSize int) (*Invoker, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	if got, want := len(model.FeatureNames()), len(patient.FeatureNames()); got != want {
		return nil, fmt.Errorf("model expects %d features, form produces %d", got, want)
	}
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := lru.New[string, Result](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Invoker{model: model, thresholds: thresholds, cache: cache}, nil
}

// Invoke runs one prediction. A missing or out-of-domain field fails with
// *patient.InputMismatchError before the model is consulted.
func (inv *Invoker) Invoke(record patient.Record) (Result, error) {
	features, err := patient.Encode(record)
	if err != nil {
		return Result{}, err
	}

	key := cacheKey(features)
	if cached, ok := inv.cache.Get(key); ok {
		return cached, nil
	}

	proba, err := inv.model.PredictProba(features)
	if err != nil {
		return Result{}, fmt.Errorf("predict: %w", err)
	}
	proba = clamp01(proba)

	result := Result{
		Probability:  proba,
		ConfidenceNo: 1 - proba,
		HighRisk:     record.HighRisk(),
	}
	if proba >= 0.5 {
		result.Label = LabelRecurred
	} else {
		result.Label = LabelNotRecurred
	}
	result.Verdict = inv.verdict(proba, result.HighRisk)

	inv.cache.Add(key, result)
	return result, nil
}

func (inv *Invoker) verdict(proba float64, highRisk bool) Verdict {
	switch {
	case proba >= inv.thresholds.BorderlineHigh,
		highRisk && proba >= inv.thresholds.HighRiskFloor:
		return VerdictLikely
	case proba > inv.thresholds.BorderlineLow:
		return VerdictBorderline
	default:
		return VerdictUnlikely
	}
}

func cacheKey(features []float64) string {
	var b strings.Builder
	for i, f := range features {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return b.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
