package ml

// Classifier is the loaded recurrence model. PredictProba returns the
// probability of the positive (recurrence) class for one feature vector.
type Classifier interface {
	PredictProba(features []float64) (float64, error)
	FeatureNames() []string
}
