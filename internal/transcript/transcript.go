// Package transcript renders a chat conversation as a standalone HTML
// document. Assistant turns may embed markdown; they are rendered with
// goldmark, while user turns are escaped verbatim.
package transcript

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/yuin/goldmark"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

const header = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>docchat transcript</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
.turn { margin: 1rem 0; padding: 0.75rem 1rem; border-radius: 0.5rem; }
.user { background: #e8eefc; }
.assistant { background: #f4f4f5; }
.meta { color: #666; font-size: 0.8rem; margin-bottom: 0.25rem; }
.sources { color: #666; font-size: 0.8rem; margin-top: 0.5rem; border-top: 1px solid #ddd; padding-top: 0.25rem; }
</style>
</head>
<body>
`

const footer = `</body>
</html>
`

// Render produces a self-contained HTML transcript of the turns, in
// conversation order.
func Render(turns []domain.Turn) ([]byte, error) {
	md := goldmark.New()

	var buf bytes.Buffer
	buf.WriteString(header)
	fmt.Fprintf(&buf, "<h1>Conversation transcript</h1>\n<p class=\"meta\">Exported %s</p>\n",
		time.Now().Format(time.RFC1123))

	for _, turn := range turns {
		fmt.Fprintf(&buf, "<div class=\"turn %s\">\n", html.EscapeString(turn.Role.String()))
		fmt.Fprintf(&buf, "<div class=\"meta\">%s · %s</div>\n",
			html.EscapeString(turn.Role.String()),
			turn.Timestamp.Format("15:04:05"))

		if turn.Role == domain.RoleAssistant {
			if err := md.Convert([]byte(turn.Content), &buf); err != nil {
				return nil, fmt.Errorf("render markdown: %w", err)
			}
		} else {
			fmt.Fprintf(&buf, "<p>%s</p>\n", html.EscapeString(turn.Content))
		}

		if len(turn.Sources) > 0 {
			buf.WriteString("<div class=\"sources\">Sources: ")
			for i, s := range turn.Sources {
				if i > 0 {
					buf.WriteString(", ")
				}
				fmt.Fprintf(&buf, "%s (chunk %d, %.2f)",
					html.EscapeString(s.Filename), s.ChunkIndex, s.Score)
			}
			buf.WriteString("</div>\n")
		}
		buf.WriteString("</div>\n")
	}

	buf.WriteString(footer)
	return buf.Bytes(), nil
}
