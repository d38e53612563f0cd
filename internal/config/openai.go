package config

import (
	"errors"

	"github.com/sashabaranov/go-openai"
)

func NewOpenAIClient(cfg *Config) (*openai.Client, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return openai.NewClientWithConfig(clientCfg), nil
}
