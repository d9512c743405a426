// Package gemini wraps the Google Generative Language REST API used
// for voice, receipt and food-photo extraction and recipe suggestions.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"expirygenie/internal/utils"
)

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type part map[string]interface{}

func (c *Client) generate(ctx context.Context, parts []part) (string, error) {
	apiKey := utils.GetConfig("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}
	model := utils.GetConfig("GEMINI_MODEL")
	if model == "" {
		return "", fmt.Errorf("GEMINI_MODEL not set")
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", model, apiKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
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
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateFromText sends a plain text prompt.
func (c *Client) GenerateFromText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, []part{{"text": prompt}})
}

// GenerateFromImage sends a prompt plus inline image data.
func (c *Client) GenerateFromImage(ctx context.Context, prompt, mimeType string, imageData []byte) (string, error) {
	return c.generate(ctx, []part{
		{"text": prompt},
		{"inline_data": map[string]interface{}{
			"mime_type": mimeType,
			"data":      base64.StdEncoding.EncodeToString(imageData),
		}},
	})
}

var jsonObject = regexp.MustCompile(`(?s)[\[{].*[\]}]`)

// CleanJSON strips markdown fences and surrounding prose from a model
// response, leaving the first JSON object or array.
func CleanJSON(responseText string) string {
	if match := jsonObject.FindString(responseText); match != "" {
		responseText = match
	}

	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
	}
	return strings.TrimSpace(responseText)
}
