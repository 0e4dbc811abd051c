package enquiry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // bike, trade
	colorBlue   = 0x3498DB // financing
	colorYellow = 0xF1C40F // service
	colorGrey   = 0x95A5A6 // general, other
)

// Discord rejects embed field values longer than this.
const maxEmbedFieldLen = 1024

// DiscordSubmitter implements Submitter by posting each enquiry as an embed
// to a Discord channel webhook.
type DiscordSubmitter struct {
	webhookURL string
	listingURL string
	client     *http.Client
}

// DiscordOption configures a DiscordSubmitter.
type DiscordOption func(*DiscordSubmitter)

// WithDiscordHTTPClient sets a custom HTTP client.
func WithDiscordHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordSubmitter) {
		d.client = c
	}
}

// WithListingURL sets a printf pattern with one %s for the listing ID, used
// to link the embed title to the bike being asked about.
func WithListingURL(pattern string) DiscordOption {
	return func(d *DiscordSubmitter) {
		d.listingURL = pattern
	}
}

// NewDiscordSubmitter creates a new DiscordSubmitter.
func NewDiscordSubmitter(webhookURL string, opts ...DiscordOption) *DiscordSubmitter {
	d := &DiscordSubmitter{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// Submit implements Submitter.
func (d *DiscordSubmitter) Submit(ctx context.Context, e *domain.Enquiry) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{d.buildEmbed(e)},
	}
	return postJSON(ctx, d.client, d.webhookURL, "", "discord", payload)
}

func (d *DiscordSubmitter) buildEmbed(e *domain.Enquiry) discordEmbed {
	embed := discordEmbed{
		Title:       fmt.Sprintf("New %s enquiry from %s", e.Subject, e.Name),
		Color:       subjectColor(e.Subject),
		Description: clip(e.Message, 4096),
		Fields: []discordEmbedField{
			{Name: "Email", Value: clip(e.Email, maxEmbedFieldLen), Inline: true},
		},
		Footer: &discordFooter{Text: e.Reference},
	}

	if e.Phone != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: "Phone", Value: e.Phone, Inline: true})
	}
	if e.ListingID != "" {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: "Listing", Value: e.ListingID, Inline: true})
		if d.listingURL != "" {
			embed.URL = fmt.Sprintf(d.listingURL, e.ListingID)
		}
	}
	if !e.SubmittedAt.IsZero() {
		embed.Timestamp = e.SubmittedAt.UTC().Format(time.RFC3339)
	}

	return embed
}

func subjectColor(s domain.EnquirySubject) int {
	switch s {
	case domain.SubjectBike, domain.SubjectTrade:
		return colorGreen
	case domain.SubjectFinancing:
		return colorBlue
	case domain.SubjectService:
		return colorYellow
	default:
		return colorGrey
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
