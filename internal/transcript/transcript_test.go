package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestRender_UserContentEscaped(t *testing.T) {
	out, err := Render([]domain.Turn{
		{Role: domain.RoleUser, Content: "is 1 < 2?", Timestamp: time.Now()},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "is 1 &lt; 2?")
}

func TestRender_AssistantMarkdownRendered(t *testing.T) {
	out, err := Render([]domain.Turn{
		{Role: domain.RoleAssistant, Content: "The key points are:\n\n- **revenue** up\n- costs flat\n", Timestamp: time.Now()},
	})
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<strong>revenue</strong>")
	assert.Contains(t, html, "<li>")
}

func TestRender_SourcesListed(t *testing.T) {
	out, err := Render([]domain.Turn{
		{
			Role:      domain.RoleAssistant,
			Content:   "See the report.",
			Timestamp: time.Now(),
			Sources: []domain.SourceRef{
				{Filename: "report.pdf", ChunkIndex: 3, Score: 0.82},
				{Filename: "notes.md", ChunkIndex: 0, Score: 0.4},
			},
		},
	})
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "report.pdf (chunk 3, 0.82)")
	assert.Contains(t, html, "notes.md (chunk 0, 0.40)")
}

func TestRender_EmptyConversation(t *testing.T) {
	out, err := Render(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "<h1>Conversation transcript</h1>")
}
