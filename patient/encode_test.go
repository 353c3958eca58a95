package patient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() Record {
	return Record{
		Age:             45,
		Gender:          "M",
		Smoking:         "Yes",
		SmokingHistory:  "No",
		Radiotherapy:    "No",
		ThyroidFunction: "Euthyroid",
		PhysicalExam:    "Single nodular goiter-right",
		Adenopathy:      "Right",
		Pathology:       "Papillary",
		Focality:        "Multi-Focal",
		Risk:            "Intermediate",
		T:               "T3a",
		N:               "N1a",
		M:               "M0",
		Stage:           "II",
		Response:        "Structural Incomplete",
	}
}

func TestEncodeValidRecord(t *testing.T) {
	vector, err := Encode(validRecord())
	require.NoError(t, err)
	require.Len(t, vector, len(FeatureNames()))

	// Spot-check codes against the training encoding.
	assert.Equal(t, 45.0, vector[0], "age")
	assert.Equal(t, 1.0, vector[1], "gender M")
	assert.Equal(t, 1.0, vector[2], "smoking Yes")
	assert.Equal(t, 1.0, vector[7], "adenopathy Right")
	assert.Equal(t, 3.0, vector[11], "T3a")
	assert.Equal(t, 2.0, vector[12], "N1a")
	assert.Equal(t, 2.0, vector[15], "structural incomplete")
}

func TestEncodeAdenopathyExtensiveCode(t *testing.T) {
	record := validRecord()
	record.Adenopathy = "Extensive"
	vector, err := Encode(record)
	require.NoError(t, err)
	assert.Equal(t, 2.0, vector[7])
}

func TestValidateMissingField(t *testing.T) {
	record := validRecord()
	record.Stage = ""
	err := Validate(record)

	var mismatch *InputMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "stage", mismatch.Field)
	assert.Equal(t, "required", mismatch.Reason)
}

func TestValidateOutOfDomainValue(t *testing.T) {
	record := validRecord()
	record.T = "T9"
	err := Validate(record)

	var mismatch *InputMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "t", mismatch.Field)
}

func TestValidateAgeRange(t *testing.T) {
	for _, age := range []int{0, -3, 101} {
		record := validRecord()
		record.Age = age
		err := Validate(record)

		var mismatch *InputMismatchError
		require.True(t, errors.As(err, &mismatch), "age %d", age)
		assert.Equal(t, "age", mismatch.Field)
	}
}

func TestHighRisk(t *testing.T) {
	record := validRecord()
	assert.False(t, record.HighRisk())

	record.Stage = "IVA"
	assert.True(t, record.HighRisk())

	record = validRecord()
	record.M = "M1"
	assert.True(t, record.HighRisk())
}

func TestDemoRecordIsValid(t *testing.T) {
	for i := 0; i < 50; i++ {
		record := DemoRecord(i + 1)
		assert.NoError(t, Validate(record))
		assert.NotEmpty(t, record.Name)
	}
}

func TestFieldsCoverFeatureNames(t *testing.T) {
	names := FeatureNames()
	require.Equal(t, "age", names[0])
	fields := Fields()
	require.Len(t, fields, len(names)-1)
	for i, field := range fields {
		assert.Equal(t, names[i+1], field.Name)
	}
}
