package service

import (
	"fmt"
	"strings"

	"github.com/spec-kit/review-router/internal/domain"
)

// RenderReport formats an analyzed ticket as markdown.
func RenderReport(req domain.TicketRequest, res domain.TicketResult, tier domain.Tier) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s Analysis Complete\n\n", tier.Indicator())
	fmt.Fprintf(&b, "**Sentiment:** %s (%d/10)\n", res.SentimentLabel, res.SentimentScore)
	fmt.Fprintf(&b, "**Source:** %s\n", req.SourcePlatform)
	fmt.Fprintf(&b, "**Attachment:** %s\n\n", attachmentLabel(req.HasAttachment))
	fmt.Fprintf(&b, "**Summary:** %s\n", res.Summary)
	return b.String()
}

func attachmentLabel(present bool) string {
	if present {
		return "✅ Yes"
	}
	return "❌ No"
}
