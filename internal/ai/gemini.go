package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"clientportal/internal/config"
	"clientportal/pkg/metrics"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	generatePath   = "/v1beta/models/gemini-2.5-flash:generateContent"
)

// fallbackTasks is returned whenever the Gemini call fails, so task
// generation never hard-fails on the AI dependency.
var fallbackTasks = []string{
	"Define project requirements",
	"Set up development environment",
	"Design database schema",
}

type GeminiClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewGeminiClient(cfg config.GeminiConfig, logger *zap.Logger) *GeminiClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GeminiClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // LLM calls can be slow
		},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generateContent sends one prompt and extracts the first candidate's text.
// An empty string with nil error means the API answered with no candidates.
func (c *GeminiClient) generateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := c.baseURL + generatePath + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error: %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateTasks asks for a task list for the given project description.
// API failures degrade to a fixed fallback list; unparseable responses
// degrade to a single placeholder entry.
func (c *GeminiClient) GenerateTasks(ctx context.Context, projectDescription string) []string {
	prompt := `Generate a list of 5-10 specific, actionable technical tasks for a software project with the following description: "` +
		projectDescription + `". ` +
		`Return ONLY the tasks as a JSON array of strings (e.g., ["Task 1", "Task 2"]). Do not include any markdown formatting or explanation.`

	start := time.Now()
	text, err := c.generateContent(ctx, prompt)
	if err != nil {
		metrics.RecordAICallLatency("generate_tasks", "failed", time.Since(start))
		c.logger.Warn("Gemini task generation failed, using fallback", zap.Error(err))
		return append([]string(nil), fallbackTasks...)
	}
	metrics.RecordAICallLatency("generate_tasks", "ok", time.Since(start))

	if text == "" {
		return []string{}
	}
	return parseTasksFromText(text, c.logger)
}

// AnalyzeProject asks for a brief health report over the given summary.
func (c *GeminiClient) AnalyzeProject(ctx context.Context, projectDetails string) string {
	prompt := "Analyze the following project status and provide a brief health report (Status, Risks, Next Steps). " +
		"Keep it professional and concise. Project Details: " + projectDetails

	start := time.Now()
	text, err := c.generateContent(ctx, prompt)
	if err != nil {
		metrics.RecordAICallLatency("analyze_project", "failed", time.Since(start))
		c.logger.Warn("Gemini project analysis failed", zap.Error(err))
		return "Failed to analyze project: " + err.Error()
	}
	metrics.RecordAICallLatency("analyze_project", "ok", time.Since(start))

	if text == "" {
		return "No analysis generated."
	}
	return text
}

func parseTasksFromText(text string, logger *zap.Logger) []string {
	// the model sometimes wraps the array in markdown fences despite the prompt
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(text, "```json", ""), "```", ""))

	var tasks []string
	if err := json.Unmarshal([]byte(cleaned), &tasks); err != nil {
		logger.Warn("Failed to parse Gemini response as task list", zap.String("text", text))
		return []string{"Error parsing AI response."}
	}
	return tasks
}
