// Package lab оценивает результаты анализов по фиксированным пороговым правилам.
package lab

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/felix-musau/myai/internal/lib/idgen"
	"github.com/felix-musau/myai/internal/models"
)

const disclaimer = "This is an automated analysis for informational purposes only. " +
	"Always consult with a qualified healthcare provider for proper interpretation of your lab results."

var nextSteps = []string{
	"Review these results with your healthcare provider",
	"Schedule a follow-up appointment if needed",
	"Maintain regular health check-ups",
}

// RequestIDGenerator выдает идентификаторы вида PREFIX-<id>.
type RequestIDGenerator interface {
	NewRequestID(prefix string) string
}

// Service анализирует результаты.
type Service struct {
	log *slog.Logger
	ids RequestIDGenerator
}

func New(log *slog.Logger, ids RequestIDGenerator) *Service {
	return &Service{log: log, ids: ids}
}

// Analyze применяет правила для testType и формирует отчет.
func (s *Service) Analyze(_ context.Context, req models.LabRequest) *models.LabReport {
	s.log.Info("lab results analysis requested",
		slog.String("test_type", req.TestType),
		slog.String("file_name", req.FileName),
		slog.Int("values", len(req.Values)),
	)

	return &models.LabReport{
		Success:        true,
		RequestID:      s.ids.NewRequestID(idgen.PrefixLabAnalysis),
		TestType:       req.TestType,
		ReceivedValues: req.Values,
		Analysis:       Evaluate(req.TestType, req.Values),
		Disclaimer:     disclaimer,
		NextSteps:      append([]string(nil), nextSteps...),
	}
}

// Evaluate возвращает заключение по правилам для типа анализа.
// Отсутствующее или нечисловое значение превращается в NaN и не проходит ни одно сравнение.
func Evaluate(testType string, values map[string]any) models.LabAnalysis {
	switch testType {
	case models.LabBloodGlucose:
		return bloodGlucose(number(values, "glucose"))
	case models.LabLipidPanel:
		return lipidPanel(number(values, "totalCholesterol"), number(values, "ldl"), number(values, "hdl"))
	case models.LabCBC:
		return cbc(number(values, "hemoglobin"), number(values, "wbc"), number(values, "platelets"))
	default:
		return models.LabAnalysis{
			Summary:        "Lab results have been received and are ready for review.",
			RiskLevel:      models.RiskNormal,
			Recommendation: "Please share these results with your healthcare provider for proper interpretation and next steps.",
		}
	}
}

func bloodGlucose(glucose float64) models.LabAnalysis {
	switch {
	case glucose < 70:
		return models.LabAnalysis{
			Summary:   "Your blood glucose level is below the normal range (70-100 mg/dL).",
			RiskLevel: models.RiskAttentionNeeded,
			Recommendation: "Consider consuming a quick source of carbohydrates. If you have symptoms like dizziness " +
				"or confusion, please consult a healthcare provider immediately.",
		}
	case glucose >= 70 && glucose <= 100:
		return models.LabAnalysis{
			Summary:        "Your blood glucose level is within the normal range.",
			RiskLevel:      models.RiskNormal,
			Recommendation: "Continue maintaining a healthy diet and regular exercise routine.",
		}
	case glucose > 100 && glucose <= 125:
		return models.LabAnalysis{
			Summary:   "Your blood glucose level indicates pre-diabetes (100-125 mg/dL).",
			RiskLevel: models.RiskAttentionNeeded,
			Recommendation: "Consider lifestyle modifications including diet changes and increased physical activity. " +
				"Consult with your healthcare provider for personalized advice.",
		}
	default:
		return models.LabAnalysis{
			Summary:   "Your blood glucose level is above the normal range, indicating diabetes (>125 mg/dL).",
			RiskLevel: models.RiskAttentionNeeded,
			Recommendation: "Please consult with a healthcare provider for proper diagnosis and management. " +
				"This result requires medical attention.",
		}
	}
}

func lipidPanel(total, ldl, hdl float64) models.LabAnalysis {
	switch {
	case total < 200 && ldl < 100 && hdl > 40:
		return models.LabAnalysis{
			Summary:        "Your lipid panel results are within desirable ranges.",
			RiskLevel:      models.RiskNormal,
			Recommendation: "Continue maintaining a heart-healthy lifestyle with balanced diet and regular exercise.",
		}
	case total >= 200 || ldl >= 100 || hdl < 40:
		return models.LabAnalysis{
			Summary:   "Your lipid panel shows some values outside the optimal range.",
			RiskLevel: models.RiskAttentionNeeded,
			Recommendation: "Consider dietary modifications and increased physical activity. " +
				"Schedule an appointment with your healthcare provider to discuss these results.",
		}
	default:
		return models.LabAnalysis{
			Summary:        "Further evaluation of your lipid panel is recommended.",
			RiskLevel:      models.RiskAttentionNeeded,
			Recommendation: "Please consult with your healthcare provider for a comprehensive review of your lipid panel results.",
		}
	}
}

func cbc(hemoglobin, wbc, platelets float64) models.LabAnalysis {
	if hemoglobin >= 12 && wbc >= 4 && wbc <= 11 && platelets >= 150 {
		return models.LabAnalysis{
			Summary:        "Your complete blood count (CBC) results appear normal.",
			RiskLevel:      models.RiskNormal,
			Recommendation: "Continue with regular health check-ups. No specific action required at this time.",
		}
	}
	return models.LabAnalysis{
		Summary:   "Some values in your CBC are outside the normal range.",
		RiskLevel: models.RiskAttentionNeeded,
		Recommendation: "Please consult with your healthcare provider to discuss these results. " +
			"Additional testing may be recommended.",
	}
}

func number(values map[string]any, key string) float64 {
	switch v := values[key].(type) {
	case float64:
		return v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		return leadingFloat(v)
	default:
		return math.NaN()
	}
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// leadingFloat читает число в начале строки и игнорирует хвост,
// так что "130 mg/dL" даёт 130. Без числа в начале возвращает NaN.
func leadingFloat(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
