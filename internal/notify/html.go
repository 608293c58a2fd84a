package notify

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"portfolioAdvisor/internal/models"
)

// FormatBriefingHTML renders the briefing's markdown narrative into the
// email wrapper. The daily change is colored green or red when present.
func FormatBriefingHTML(b models.Briefing) (string, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(b.Content), &body); err != nil {
		return "", fmt.Errorf("render briefing markdown: %w", err)
	}

	changeStr := ""
	if b.DailyChangePct != nil {
		color := "#22c55e"
		if *b.DailyChangePct < 0 {
			color = "#ef4444"
		}
		changeStr = fmt.Sprintf(` <span style="color:%s">(%+.2f%%)</span>`, color, *b.DailyChangePct)
	}

	return fmt.Sprintf(`<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
             max-width: 680px; margin: 0 auto; padding: 20px; color: #1a1a1a;">
    <div style="border-bottom: 2px solid #2563eb; padding-bottom: 12px; margin-bottom: 20px;">
        <h1 style="margin: 0; color: #2563eb;">Portfolio Briefing%s</h1>
        <p style="margin: 4px 0 0; color: #666;">%s</p>
    </div>
    <div style="line-height: 1.6;">
%s    </div>
    <div style="border-top: 1px solid #e5e7eb; margin-top: 24px; padding-top: 12px;
                font-size: 0.85em; color: #999;">
        %d trade suggestion(s) generated &middot; AI Portfolio Advisor
    </div>
</body>
</html>`, changeStr, b.Date, body.String(), b.SuggestionCount), nil
}
