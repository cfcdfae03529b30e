package infra

import (
	"context"
	"fmt"
	"strings"

	"github.com/atlashq/atlas-project-service/config"
)

type DetectedObject struct {
	Name          string `json:"name"`
	BoundingBoxes []int  `json:"bounding_boxes"`
}

type DetectedObjectList struct {
	Objects []DetectedObject `json:"objects"`
}

// VisionService detects objects in an image, optionally informed by extracted
// document text. Providers are selected by configuration, not swapped at
// runtime.
type VisionService interface {
	ExtractBoundingBoxes(ctx context.Context, imageURL string, documentContents map[string]string, systemPrompt, assistantPrompt string) (*DetectedObjectList, error)
}

func InitVisionService(cfg *config.EnvConfig) VisionService {
	switch cfg.AI.Provider {
	case "together":
		if cfg.AI.TogetherAPIKey == "" {
			panic("TOGETHER_API_KEY is not configured")
		}
		return &openAIVisionService{
			apiKey:  cfg.AI.TogetherAPIKey,
			baseURL: "https://api.together.xyz/v1",
			model:   "Qwen/Qwen2-VL-72B-Instruct",
		}
	case "hyperbolic":
		if cfg.AI.HyperbolicKey == "" {
			panic("HYPERBOLIC_API_KEY is not configured")
		}
		return &openAIVisionService{
			apiKey:  cfg.AI.HyperbolicKey,
			baseURL: "https://api.hyperbolic.xyz/v1",
			model:   "Qwen/Qwen2-VL-72B-Instruct",
		}
	case "gemini":
		if cfg.AI.GoogleAPIKey == "" {
			panic("GOOGLE_API_KEY is not configured")
		}
		return &geminiVisionService{
			apiKey: cfg.AI.GoogleAPIKey,
			model:  "gemini-1.5-pro-latest",
		}
	default:
		panic(fmt.Sprintf("Unknown AI provider: %s", cfg.AI.Provider))
	}
}

// detectionSystemPrompt frames every provider call: bounding boxes come back
// as [xmin, ymin, xmax, ymax] scaled to 1024x1024, wrapped in a JSON object
// with an "objects" key.
const detectionSystemPrompt = `You are a helpful assistant to detect objects in images. When asked to detect elements you return bounding boxes in the form of [xmin, ymin, xmax, ymax] with the values being scaled to match the 1024x1024 size. Always respond in JSON format with an object with a key 'objects' that contains a list of objects where each object has the following keys: 'bounding_boxes' and 'name'.`

func buildDetectionPrompt(assistantPrompt string, documentContents map[string]string) string {
	var sb strings.Builder
	sb.WriteString(assistantPrompt)
	for name, content := range documentContents {
		sb.WriteString("\n\n<document><name>")
		sb.WriteString(name)
		sb.WriteString("</name><content>")
		sb.WriteString(content)
		sb.WriteString("</content></document>")
	}
	return sb.String()
}

// stripMarkdownFences removes ```json code fences some models wrap around
// their JSON output.
func stripMarkdownFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
