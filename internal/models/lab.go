package models

// Уровни риска в результате анализа.
const (
	RiskNormal          = "Normal"
	RiskAttentionNeeded = "Attention Needed"
)

// Типы анализов, для которых есть правила.
const (
	LabBloodGlucose = "blood-glucose"
	LabLipidPanel   = "lipid-panel"
	LabCBC          = "cbc"
)

// LabAnalysis заключение по результатам анализа.
type LabAnalysis struct {
	Summary        string `json:"summary"`
	RiskLevel      string `json:"riskLevel"`
	Recommendation string `json:"recommendation"`
}

// LabRequest входные данные анализа. Значения могут быть числами или строками с числом.
type LabRequest struct {
	TestType string         `json:"testType"`
	Values   map[string]any `json:"values"`
	FileName string         `json:"fileName"`
}

// LabReport ответ на запрос анализа.
type LabReport struct {
	Success        bool           `json:"success"`
	RequestID      string         `json:"requestId"`
	TestType       string         `json:"testType"`
	ReceivedValues map[string]any `json:"receivedValues"`
	Analysis       LabAnalysis    `json:"analysis"`
	Disclaimer     string         `json:"disclaimer"`
	NextSteps      []string       `json:"nextSteps"`
}
