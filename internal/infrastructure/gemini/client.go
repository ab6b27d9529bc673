package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdugdh24/expo-networking/internal/domain"
	"github.com/goccy/go-json"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-1.5-flash"

const maxIntroMessages = 3

// IntroClient drafts opening messages between two attendees with Gemini.
// When the API fails it falls back to template messages built from the
// match reasons, so callers always get something to show.
type IntroClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *zap.Logger
}

func NewIntroClient(ctx context.Context, apiKey, modelName string, logger *zap.Logger) (*IntroClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)

	return &IntroClient{
		client: client,
		model:  model,
		logger: logger.With(zap.String("component", "gemini"), zap.String("model", modelName)),
	}, nil
}

func (c *IntroClient) Close() error {
	return c.client.Close()
}

func (c *IntroClient) GenerateIntro(ctx context.Context, subject, candidate *domain.User, reasons []string) ([]string, error) {
	text, err := c.generateText(ctx, buildIntroPrompt(subject, candidate, reasons))
	if err != nil {
		c.logger.Warn("gemini unavailable, using fallback intro",
			zap.String("subject_id", subject.ID),
			zap.String("candidate_id", candidate.ID),
			zap.Error(err),
		)
		return fallbackIntro(candidate, reasons), nil
	}

	messages, err := parseIntroMessages(text)
	if err != nil {
		c.logger.Warn("unparseable gemini response, using fallback intro", zap.Error(err))
		return fallbackIntro(candidate, reasons), nil
	}
	return messages, nil
}

func (c *IntroClient) generateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func buildIntroPrompt(subject, candidate *domain.User, reasons []string) string {
	return fmt.Sprintf(`
		Two attendees of a professional trade show were matched for networking.
		Sender: %s (%s), company: %s
		Recipient: %s (%s), company: %s
		Why they match: %s

		Task: Write %d short, professional opening messages the sender could send to the recipient.
		Mention concrete common ground from the match reasons. Propose a meeting at the show.
		Language: French.
		Output: JSON array of strings. Example: ["Bonjour...", "Bonjour..."]
	`,
		displayName(subject), subject.Type, subject.Profile.Company,
		displayName(candidate), candidate.Type, candidate.Profile.Company,
		strings.Join(reasons, "; "),
		maxIntroMessages,
	)
}

// parseIntroMessages accepts a JSON array, optionally wrapped in a markdown
// code fence, or falls back to one message per non-empty line.
func parseIntroMessages(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var messages []string
	if err := json.Unmarshal([]byte(text), &messages); err != nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				messages = append(messages, line)
			}
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("failed to parse intro messages: %w", err)
		}
	}

	out := messages[:0]
	for _, m := range messages {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty intro messages")
	}
	if len(out) > maxIntroMessages {
		out = out[:maxIntroMessages]
	}
	return out, nil
}

func fallbackIntro(candidate *domain.User, reasons []string) []string {
	name := displayName(candidate)
	messages := []string{
		fmt.Sprintf("Bonjour %s, je serais ravi d'échanger avec vous pendant le salon. Seriez-vous disponible pour un rendez-vous ?", name),
	}
	if len(reasons) > 0 {
		messages = append(messages, fmt.Sprintf(
			"Bonjour %s, la plateforme nous a mis en relation (%s). Prenons quelques minutes pour en discuter ?",
			name, reasons[0],
		))
	}
	return messages
}

func displayName(user *domain.User) string {
	if user.DisplayName != "" {
		return user.DisplayName
	}
	if user.Profile.Company != "" {
		return user.Profile.Company
	}
	return "à vous"
}

// TemplateIntro writes intro messages from the match reasons without calling
// the API. It is used when no API key is configured.
type TemplateIntro struct{}

func (TemplateIntro) GenerateIntro(_ context.Context, _, candidate *domain.User, reasons []string) ([]string, error) {
	return fallbackIntro(candidate, reasons), nil
}
