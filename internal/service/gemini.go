package service

import (
	"context"
	"fmt"

	"interioai/internal/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const geminiDependency = "gemini"

// GeminiDetector detects furniture with Google's Gemini API
type GeminiDetector struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGeminiDetector creates a Gemini-backed detector
func NewGeminiDetector(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*GeminiDetector, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiDetector{client: client, model: cfg.Model, logger: logger}, nil
}

var _ Detector = (*GeminiDetector)(nil)

// Detect sends the photo inline and parses the returned item list
func (g *GeminiDetector) Detect(ctx context.Context, imagePath string) ([]string, error) {
	data, mimeType, err := readImage(imagePath)
	if err != nil {
		return nil, NewExternalDependencyError("storage", "read image", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(visionDetectPrompt),
		{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, NewExternalDependencyError(geminiDependency, "detect", err)
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, NewExternalDependencyError(geminiDependency, "detect", fmt.Errorf("no response from Gemini"))
	}

	text := result.Text()
	items, err := parseVisionItems(text)
	if err != nil {
		g.logger.Warn("failed to parse vision response", zap.String("content", text), zap.Error(err))
		return nil, NewExternalDependencyError(geminiDependency, "parse detection", err)
	}

	fields := []zap.Field{zap.String("model", g.model), zap.Int("count", len(items))}
	if result.UsageMetadata != nil {
		fields = append(fields, zap.Int32("total_tokens", result.UsageMetadata.TotalTokenCount))
	}
	g.logger.Info("objects detected", fields...)
	return items, nil
}
