package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	gemini "github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"
)

// Config selects the chat-model provider backing the service.
type Config struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
	Model    string `json:"model"`
}

// Service wraps a chat model behind a single prompt-in, text-out call.
type Service struct {
	config    Config
	chatModel model.BaseChatModel
}

func NewService(config Config) (*Service, error) {
	s := &Service{config: config}
	if err := s.initializeChatModel(); err != nil {
		return nil, fmt.Errorf("failed to initialize chat model: %w", err)
	}
	return s, nil
}

// NewServiceWithModel injects a pre-built chat model. Used by tests.
func NewServiceWithModel(config Config, chatModel model.BaseChatModel) *Service {
	return &Service{config: config, chatModel: chatModel}
}

func (s *Service) initializeChatModel() error {
	switch strings.ToLower(s.config.Provider) {
	case "gemini":
		return s.initializeGeminiModel()
	default:
		return fmt.Errorf("unsupported provider: %s. Supported: gemini", s.config.Provider)
	}
}

func (s *Service) initializeGeminiModel() error {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: s.config.APIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	geminiModel, err := gemini.NewChatModel(context.Background(), &gemini.Config{
		Client: client,
		Model:  s.config.Model,
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini chat model: %w", err)
	}

	s.chatModel = geminiModel
	return nil
}

// Generate runs one system+user exchange and returns the raw model text.
func (s *Service) Generate(ctx context.Context, system, user string) (string, error) {
	if s.chatModel == nil {
		return "", fmt.Errorf("chat model not initialized")
	}

	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	response, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}
	return response.Content, nil
}
