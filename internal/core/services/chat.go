package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure ChatSession implements the interface.
var _ driving.ChatSession = (*ChatSession)(nil)

// Chat defaults.
const (
	// DefaultHistoryWindow is the number of prior turns sent with each
	// request. Older history is silently dropped.
	DefaultHistoryWindow = 10

	// DefaultChatTimeout bounds a chat request. Answer generation is
	// slow compared to the other gateway calls.
	DefaultChatTimeout = 120 * time.Second

	// FallbackReply is appended as the assistant turn when a chat
	// request fails, so the conversation is never left dangling.
	FallbackReply = "Sorry, something went wrong while processing your message."
)

// ChatConfig tunes the chat session.
type ChatConfig struct {
	// HistoryWindow is the number of prior turns included per request.
	HistoryWindow int

	// CallTimeout bounds each chat request.
	CallTimeout time.Duration
}

func (c *ChatConfig) applyDefaults() {
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = DefaultHistoryWindow
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = DefaultChatTimeout
	}
}

// ChatSession owns the ordered conversation. Sends are single-flight:
// at most one outstanding chat request at a time, so two sends can
// never interleave their turn appends.
type ChatSession struct {
	gateway driven.Gateway
	cfg     ChatConfig

	mu       sync.RWMutex
	turns    []domain.Turn
	inFlight bool
}

// NewChatSession creates a chat session using the given gateway.
func NewChatSession(gateway driven.Gateway, cfg ChatConfig) *ChatSession {
	cfg.applyDefaults()
	return &ChatSession{
		gateway: gateway,
		cfg:     cfg,
	}
}

// Send appends a user turn, issues the chat request and appends the
// assistant's reply. The request carries the raw text, the given
// document scoping (empty means unrestricted) and the last
// HistoryWindow turns from before this send, oldest first. On failure
// a fallback assistant turn is appended instead.
func (s *ChatSession) Send(ctx context.Context, text string, contextFileIDs []string) (domain.Turn, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Turn{}, domain.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return domain.Turn{}, domain.ErrChatBusy
	}
	s.inFlight = true

	history := s.historyLocked()
	s.appendLocked(domain.RoleUser, text, nil)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	req := domain.ChatRequest{
		Message:        text,
		ContextFileIDs: contextFileIDs,
		History:        history,
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	resp, err := s.gateway.Chat(callCtx, req)
	if err != nil {
		logger.Warn("Chat request failed: %v", err)
		s.mu.Lock()
		turn := s.appendLocked(domain.RoleAssistant, FallbackReply, nil)
		s.mu.Unlock()
		return turn, fmt.Errorf("%w: %v", domain.ErrChatRequestFailed, err)
	}

	s.mu.Lock()
	turn := s.appendLocked(domain.RoleAssistant, resp.Response, resp.Sources)
	s.mu.Unlock()

	logger.Debug("Chat reply: %d sources, context used: %t", len(resp.Sources), resp.ContextUsed)
	return turn, nil
}

// historyLocked returns the last HistoryWindow turns as {role, content}
// pairs, oldest first.
func (s *ChatSession) historyLocked() []domain.ChatMessage {
	start := 0
	if len(s.turns) > s.cfg.HistoryWindow {
		start = len(s.turns) - s.cfg.HistoryWindow
	}

	window := s.turns[start:]
	history := make([]domain.ChatMessage, len(window))
	for i, t := range window {
		history[i] = domain.ChatMessage{Role: t.Role.String(), Content: t.Content}
	}
	return history
}

// appendLocked creates and appends a turn, returning a copy.
func (s *ChatSession) appendLocked(role domain.Role, content string, sources []domain.SourceRef) domain.Turn {
	turn := domain.Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Sources:   sources,
	}
	s.turns = append(s.turns, turn)
	return turn
}

// Turns returns a snapshot copy of the conversation, oldest first.
func (s *ChatSession) Turns() []domain.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := make([]domain.Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}

// InFlight reports whether a send is currently outstanding.
func (s *ChatSession) InFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight
}
