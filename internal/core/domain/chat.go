package domain

import "time"

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// SourceRef cites a document chunk that contributed to an answer.
type SourceRef struct {
	// Filename is the document the chunk belongs to.
	Filename string

	// ChunkIndex is the chunk's position within the document.
	ChunkIndex int

	// Score is the retrieval relevance score.
	Score float64
}

// Turn is one message in the chat session. Turns are append-only and
// never mutated after creation.
type Turn struct {
	// ID is a locally generated identifier, unique within the session.
	ID string

	// Role is who authored the turn.
	Role Role

	// Content is the message text. Assistant content may embed markdown.
	Content string

	// Timestamp is when the turn was appended.
	Timestamp time.Time

	// Sources cites the chunks behind an assistant answer, in rank order.
	Sources []SourceRef
}

// ChatMessage is the {role, content} pair sent as conversation history.
type ChatMessage struct {
	Role    string
	Content string
}

// ChatRequest is the outgoing chat exchange. An empty ContextFileIDs
// means unrestricted retrieval across all documents.
type ChatRequest struct {
	// Message is the raw user text.
	Message string

	// ContextFileIDs scopes retrieval to the given documents.
	ContextFileIDs []string

	// History is the bounded window of prior turns, oldest first.
	History []ChatMessage
}

// ChatResponse is the gateway's answer to a chat request.
type ChatResponse struct {
	// Response is the assistant's answer text.
	Response string

	// Sources cites the retrieved chunks, in rank order.
	Sources []SourceRef

	// ContextUsed reports whether document scoping affected retrieval.
	ContextUsed bool
}
