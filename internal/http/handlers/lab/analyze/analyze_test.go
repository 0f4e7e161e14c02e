package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/felix-musau/myai/internal/lib/logger"
	"github.com/felix-musau/myai/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Analyze(ctx context.Context, req models.LabRequest) *models.LabReport {
	return m.Called(ctx, req).Get(0).(*models.LabReport)
}

func TestAnalyzeHandler(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Analyze", mock.Anything, mock.MatchedBy(func(req models.LabRequest) bool {
		n, ok := req.Values["glucose"].(json.Number)
		return req.TestType == models.LabBloodGlucose && ok && n.String() == "110" && req.FileName == "scan.pdf"
	})).Return(&models.LabReport{
		Success:   true,
		RequestID: "LAB-1",
		TestType:  models.LabBloodGlucose,
		Analysis:  models.LabAnalysis{RiskLevel: models.RiskAttentionNeeded},
	}).Once()

	rec := httptest.NewRecorder()
	New(logger.NewNoop(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze-lab",
		bytes.NewBufferString(`{"testType":"blood-glucose","values":{"glucose":110},"fileName":"scan.pdf"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"requestId":"LAB-1"`)
	assert.Contains(t, rec.Body.String(), `"riskLevel":"Attention Needed"`)
	svc.AssertExpectations(t)
}

func TestAnalyzeHandler_BadBody(t *testing.T) {
	svc := new(ServiceMock)

	rec := httptest.NewRecorder()
	New(logger.NewNoop(), svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analyze-lab",
		bytes.NewBufferString(`[1,2]`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}
