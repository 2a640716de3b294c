package enhancer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/opscart/vm-cost-optimizer/pkg/models"
)

const geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiEnhancer implements Enhancer against the Gemini generateContent API
type GeminiEnhancer struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGemini creates an enhancer for the given API key and model name
func NewGemini(apiKey, model string, timeout time.Duration) *GeminiEnhancer {
	return &GeminiEnhancer{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiAPIBase,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type geminiRequest struct {
	Contents          []geminiContent  `json:"contents"`
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt and returns the raw JSON text of the first
// candidate. Any transport failure or empty candidate list is an error.
func (g *GeminiEnhancer) generate(ctx context.Context, system, prompt string, temperature float64) ([]byte, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: system}},
		},
		GenerationConfig: generationConfig{
			Temperature:      temperature,
			ResponseMimeType: "application/json",
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API returned status %d", resp.StatusCode)
	}

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini response contained no candidates")
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	// Models occasionally fence the JSON despite the mime type hint
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	return []byte(strings.TrimSpace(text)), nil
}

// decodeStrict parses candidate JSON into the target schema. Unknown fields
// are tolerated (the model may add commentary fields) but malformed JSON or
// type mismatches are failures, never partially trusted.
func decodeStrict(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("response does not conform to schema: %w", err)
	}
	return nil
}

func (g *GeminiEnhancer) EnhanceRecommendations(ctx context.Context, classified []models.ClassifiedVM, snapshots []models.VMSnapshot) ([]models.ClassifiedVM, error) {
	metricsJSON, _ := json.MarshalIndent(snapshots, "", "  ")
	analysisJSON, _ := json.MarshalIndent(classified, "", "  ")

	prompt := fmt.Sprintf(`As a cloud infrastructure expert, analyze the following VM metrics and current recommendations.

VM Metrics:
%s

Current Analysis:
%s

Refine each "recommendation" field with more specific, actionable guidance.
Return a JSON array with exactly the same structure and the same vm_id entries
as the current analysis. Return only valid JSON.`, metricsJSON, analysisJSON)

	data, err := g.generate(ctx, "You are a cloud infrastructure expert providing VM optimization recommendations.", prompt, 0.1)
	if err != nil {
		return nil, err
	}

	var enhanced []models.ClassifiedVM
	if err := decodeStrict(data, &enhanced); err != nil {
		return nil, err
	}
	if len(enhanced) != len(classified) {
		return nil, fmt.Errorf("enhanced analysis has %d entries, want %d", len(enhanced), len(classified))
	}
	for _, vm := range enhanced {
		if vm.VMID == "" || vm.Recommendation == "" {
			return nil, fmt.Errorf("enhanced analysis entry missing vm_id or recommendation")
		}
	}
	return enhanced, nil
}

func (g *GeminiEnhancer) InfrastructureInsights(ctx context.Context, snapshots []models.VMSnapshot, provider models.Provider) (*models.InfrastructureInsights, error) {
	metricsJSON, _ := json.MarshalIndent(snapshots, "", "  ")

	prompt := fmt.Sprintf(`Analyze the following %s infrastructure metrics and provide strategic insights.

VM Metrics:
%s

Format as JSON with these keys:
- health_score: number (1-10)
- optimization_opportunities: array of strings
- cost_optimization_potential: string (percentage)
- security_recommendations: array of strings
- scalability_insights: string
- performance_tips: array of strings
- summary: string

Return only valid JSON.`, provider, metricsJSON)

	data, err := g.generate(ctx, "You are a cloud infrastructure strategist providing high-level insights.", prompt, 0.2)
	if err != nil {
		return nil, err
	}

	var insights models.InfrastructureInsights
	if err := decodeStrict(data, &insights); err != nil {
		return nil, err
	}
	if insights.HealthScore < 1 || insights.HealthScore > 10 {
		return nil, fmt.Errorf("health score %d out of range", insights.HealthScore)
	}
	if insights.Summary == "" {
		return nil, fmt.Errorf("insights missing summary")
	}
	return &insights, nil
}

func (g *GeminiEnhancer) FutureTrends(ctx context.Context, snapshots []models.VMSnapshot, provider models.Provider) (*models.FutureInsights, error) {
	metricsJSON, _ := json.MarshalIndent(snapshots, "", "  ")

	prompt := fmt.Sprintf(`Based on the current %s infrastructure metrics, predict usage and cost trends for the next 30 days.

Current VM Metrics:
%s

Format as JSON with these keys:
- usage_trend_prediction: object with cpu_trend, memory_trend, cost_trend
- next_month_cost_projection: number
- potential_bottlenecks: array of strings
- scaling_recommendations: array of objects with vm_id and recommendation
- risk_assessment: object with risk_level and issues
- confidence_score: number (0-100)

Return only valid JSON.`, provider, metricsJSON)

	data, err := g.generate(ctx, "You are a cloud infrastructure analyst predicting future trends.", prompt, 0.3)
	if err != nil {
		return nil, err
	}

	var trends models.FutureInsights
	if err := decodeStrict(data, &trends); err != nil {
		return nil, err
	}
	if trends.ConfidenceScore < 0 || trends.ConfidenceScore > 100 {
		return nil, fmt.Errorf("confidence score %d out of range", trends.ConfidenceScore)
	}
	if trends.UsageTrendPrediction.CPUTrend == "" {
		return nil, fmt.Errorf("trend prediction missing cpu_trend")
	}
	return &trends, nil
}

func (g *GeminiEnhancer) OptimizationPlan(ctx context.Context, snapshots []models.VMSnapshot, provider models.Provider) (*models.OptimizationPlan, error) {
	metricsJSON, _ := json.MarshalIndent(snapshots, "", "  ")

	prompt := fmt.Sprintf(`Create an optimization plan for this %s infrastructure.

VM Metrics:
%s

Format as JSON with these keys:
- immediate_actions: array of objects with action, impact
- short_term_plan: array of objects with action, timeline, expected_benefit
- long_term_strategy: array of objects with action, timeline
- overall_roi_estimate: string

Return only valid JSON.`, provider, metricsJSON)

	data, err := g.generate(ctx, "You are a cloud infrastructure consultant creating optimization plans.", prompt, 0.2)
	if err != nil {
		return nil, err
	}

	var plan models.OptimizationPlan
	if err := decodeStrict(data, &plan); err != nil {
		return nil, err
	}
	if len(plan.ImmediateActions) == 0 && len(plan.ShortTermPlan) == 0 {
		return nil, fmt.Errorf("optimization plan contains no actions")
	}
	return &plan, nil
}

func (g *GeminiEnhancer) CostReport(ctx context.Context, snapshots []models.VMSnapshot, provider models.Provider) (*models.CostReport, error) {
	metricsJSON, _ := json.MarshalIndent(snapshots, "", "  ")

	prompt := fmt.Sprintf(`Generate a cost analysis report for this %s infrastructure.

VM Data:
%s

Format as JSON with these keys:
- total_monthly_cost: number
- cost_breakdown: object mapping instance type to cost
- top_cost_drivers: array of objects with vm_id and cost
- optimization_savings: object with amount, percentage, vms_affected (or null)

Return only valid JSON.`, provider, metricsJSON)

	data, err := g.generate(ctx, "You are a cloud cost optimization specialist providing detailed cost analysis.", prompt, 0.1)
	if err != nil {
		return nil, err
	}

	var report models.CostReport
	if err := decodeStrict(data, &report); err != nil {
		return nil, err
	}
	if report.TotalMonthlyCost < 0 {
		return nil, fmt.Errorf("cost report has negative total")
	}
	return &report, nil
}
