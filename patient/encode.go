package patient

import "fmt"

// InputMismatchError reports a submitted field that is missing or outside its
// expected domain.
type InputMismatchError struct {
	Field  string
	Reason string
}

func (e *InputMismatchError) Error() string {
	return fmt.Sprintf("input mismatch: %s: %s", e.Field, e.Reason)
}

// FeatureNames returns the model's feature order. Encode emits vectors in
// exactly this order.
func FeatureNames() []string {
	return []string{
		"age", "gender", "smoking", "smoking_history", "radiotherapy_history",
		"thyroid_function", "physical_exam", "adenopathy", "pathology",
		"focality", "risk", "t", "n", "m", "stage", "response",
	}
}

// Validate checks every required field against its domain. It returns nil or
// an *InputMismatchError naming the first offending field.
func Validate(r Record) error {
	if r.Age < MinAge || r.Age > MaxAge {
		return &InputMismatchError{Field: "age", Reason: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)}
	}
	for _, check := range []struct {
		field  string
		value  string
		domain []string
	}{
		{"gender", r.Gender, GenderValues},
		{"smoking", r.Smoking, YesNoValues},
		{"smoking_history", r.SmokingHistory, YesNoValues},
		{"radiotherapy_history", r.Radiotherapy, YesNoValues},
		{"thyroid_function", r.ThyroidFunction, ThyroidFuncValues},
		{"physical_exam", r.PhysicalExam, PhysicalExamValues},
		{"adenopathy", r.Adenopathy, AdenopathyValues},
		{"pathology", r.Pathology, PathologyValues},
		{"focality", r.Focality, FocalityValues},
		{"risk", r.Risk, RiskValues},
		{"t", r.T, TValues},
		{"n", r.N, NValues},
		{"m", r.M, MValues},
		{"stage", r.Stage, StageValues},
		{"response", r.Response, ResponseValues},
	} {
		if check.value == "" {
			return &InputMismatchError{Field: check.field, Reason: "required"}
		}
		if _, ok := code(check.value, check.domain); !ok {
			return &InputMismatchError{Field: check.field, Reason: fmt.Sprintf("unknown value %q", check.value)}
		}
	}
	return nil
}

// Encode validates the record and returns its feature vector in FeatureNames
// order. Categorical values encode to their domain index.
func Encode(r Record) ([]float64, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	values := []struct {
		value  string
		domain []string
	}{
		{r.Gender, GenderValues},
		{r.Smoking, YesNoValues},
		{r.SmokingHistory, YesNoValues},
		{r.Radiotherapy, YesNoValues},
		{r.ThyroidFunction, ThyroidFuncValues},
		{r.PhysicalExam, PhysicalExamValues},
		{r.Adenopathy, AdenopathyValues},
		{r.Pathology, PathologyValues},
		{r.Focality, FocalityValues},
		{r.Risk, RiskValues},
		{r.T, TValues},
		{r.N, NValues},
		{r.M, MValues},
		{r.Stage, StageValues},
		{r.Response, ResponseValues},
	}
	vector := make([]float64, 0, len(values)+1)
	vector = append(vector, float64(r.Age))
	for _, v := range values {
		idx, _ := code(v.value, v.domain)
		vector = append(vector, float64(idx))
	}
	return vector, nil
}

func code(value string, domain []string) (int, bool) {
	for i, v := range domain {
		if v == value {
			return i, true
		}
	}
	return 0, false
}
