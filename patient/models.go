// Package patient defines the patient record submitted through the form and
// the categorical attribute domains the recurrence model was trained on.
package patient

// Record is one submitted set of patient attributes. Name is display-only and
// never fed to the model. A Record is built once per submission and not
// mutated afterwards.
type Record struct {
	Name            string `json:"name,omitempty"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`
	Smoking         string `json:"smoking"`
	SmokingHistory  string `json:"smoking_history"`
	Radiotherapy    string `json:"radiotherapy_history"`
	ThyroidFunction string `json:"thyroid_function"`
	PhysicalExam    string `json:"physical_exam"`
	Adenopathy      string `json:"adenopathy"`
	Pathology       string `json:"pathology"`
	Focality        string `json:"focality"`
	Risk            string `json:"risk"`
	T               string `json:"t"`
	N               string `json:"n"`
	M               string `json:"m"`
	Stage           string `json:"stage"`
	Response        string `json:"response"`
}

const (
	MinAge = 1
	MaxAge = 100
)

// Attribute value domains. Order matters: the integer code of a value is its
// index in the slice, matching the encoding used when the model was trained.
var (
	GenderValues       = []string{"F", "M"}
	YesNoValues        = []string{"No", "Yes"}
	ThyroidFuncValues  = []string{"Euthyroid", "Clinical Hyperthyroidism", "Clinical Hypothyroidism", "Subclinical Hyperthyroidism", "Subclinical Hypothyroidism"}
	PhysicalExamValues = []string{"Single nodular goiter-left", "Multinodular goiter", "Single nodular goiter-right", "Normal", "Diffuse goiter"}
	AdenopathyValues   = []string{"No", "Right", "Extensive", "Left", "Bilateral", "Posterior"}
	PathologyValues    = []string{"Micropapillary", "Papillary", "Follicular", "Hurthel cell"}
	FocalityValues     = []string{"Uni-Focal", "Multi-Focal"}
	RiskValues         = []string{"Low", "Intermediate", "High"}
	TValues            = []string{"T1a", "T1b", "T2", "T3a", "T3b", "T4a", "T4b"}
	NValues            = []string{"N0", "N1b", "N1a"}
	MValues            = []string{"M0", "M1"}
	StageValues        = []string{"I", "II", "III", "IVA", "IVB"}
	ResponseValues     = []string{"Indeterminate", "Excellent", "Structural Incomplete", "Biochemical Incomplete"}
)

// Field carries everything the form page and the encoder need to know about
// one categorical attribute.
type Field struct {
	Name   string
	Label  string
	Values []string
}

// Fields lists the categorical attributes in form display order.
func Fields() []Field {
	return []Field{
		{Name: "gender", Label: "Gender", Values: GenderValues},
		{Name: "smoking", Label: "Smoking", Values: YesNoValues},
		{Name: "smoking_history", Label: "History of Smoking", Values: YesNoValues},
		{Name: "radiotherapy_history", Label: "History of Radiotherapy", Values: YesNoValues},
		{Name: "thyroid_function", Label: "Thyroid Function", Values: ThyroidFuncValues},
		{Name: "physical_exam", Label: "Physical Examination", Values: PhysicalExamValues},
		{Name: "adenopathy", Label: "Adenopathy", Values: AdenopathyValues},
		{Name: "pathology", Label: "Pathology", Values: PathologyValues},
		{Name: "focality", Label: "Focality", Values: FocalityValues},
		{Name: "risk", Label: "Risk Level", Values: RiskValues},
		{Name: "t", Label: "T (Tumor)", Values: TValues},
		{Name: "n", Label: "N (Nodes)", Values: NValues},
		{Name: "m", Label: "M (Metastasis)", Values: MValues},
		{Name: "stage", Label: "Stage", Values: StageValues},
		{Name: "response", Label: "Response to Treatment", Values: ResponseValues},
	}
}

// HighRisk reports whether the record falls in the high-risk group: stage IVA
// or IVB, or distant metastasis (M1).
func (r Record) HighRisk() bool {
	return r.Stage == "IVA" || r.Stage == "IVB" || r.M == "M1"
}
