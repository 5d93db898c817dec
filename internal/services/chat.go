package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/medxscan/internal/api"
	"github.com/dmitrijs2005/medxscan/internal/models"
)

// ChatService answers user questions about an analysis. The transcript
// itself lives in the CLI session; this layer only produces exchanges.
type ChatService interface {
	Ask(ctx context.Context, question, chatContext string) (*models.ChatMessage, error)
}

// PlaceholderChat is the mock-mode assistant: a canned response echoing the
// question, matching the demo front-end.
type PlaceholderChat struct {
	now func() time.Time
}

func NewPlaceholderChat() *PlaceholderChat {
	return &PlaceholderChat{now: time.Now}
}

func (c *PlaceholderChat) Ask(ctx context.Context, question, chatContext string) (*models.ChatMessage, error) {
	answer := fmt.Sprintf("Thank you for your question about %q. This is a placeholder response. "+
		"In the full implementation, this would be powered by the inference backend to provide "+
		"detailed medical insights based on your X-ray analysis and report.", question)
	return &models.ChatMessage{
		Question:  question,
		Answer:    answer,
		Source:    "placeholder",
		Timestamp: c.now().UTC(),
	}, nil
}

// RemoteChat proxies questions to the chat endpoint.
type RemoteChat struct {
	api api.Service
	now func() time.Time
}

func NewRemoteChat(apiService api.Service) *RemoteChat {
	return &RemoteChat{api: apiService, now: time.Now}
}

func (c *RemoteChat) Ask(ctx context.Context, question, chatContext string) (*models.ChatMessage, error) {
	resp, err := c.api.Ask(ctx, question, chatContext)
	if err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("chat failed: %s", envelopeError(resp.Error))
	}

	ts, err := time.Parse(time.RFC3339, resp.Data.Timestamp)
	if err != nil {
		ts = c.now().UTC()
	}
	return &models.ChatMessage{
		Question:  resp.Data.Question,
		Answer:    resp.Data.Answer,
		Source:    resp.Data.Source,
		Timestamp: ts,
	}, nil
}
