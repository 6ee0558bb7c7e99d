package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/archfeed/archfeed/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts run summaries to a Slack channel via Incoming
// Webhooks.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts each run summary to Slack.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify sends the summary as a single Block Kit message.
func (s *SlackNotifier) Notify(sum model.RunSummary) error {
	body, err := json.Marshal(buildPayload(sum))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned %d", resp.StatusCode)
	}
	s.logger.Info("slack summary sent", "task", sum.Task)
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func buildPayload(s model.RunSummary) slackPayload {
	var fields []slackText
	switch s.Task {
	case "discover":
		fields = []slackText{
			{Type: "mrkdwn", Text: fmt.Sprintf("*Greenhouse:*\n%d matched", s.GreenhouseMatches)},
			{Type: "mrkdwn", Text: fmt.Sprintf("*Lever:*\n%d matched", s.LeverMatches)},
			{Type: "mrkdwn", Text: fmt.Sprintf("*Unverified:*\n%d assumed", s.Assumed)},
			{Type: "mrkdwn", Text: fmt.Sprintf("*Firms:*\n%d", s.Firms)},
		}
	default:
		fields = []slackText{
			{Type: "mrkdwn", Text: fmt.Sprintf("*Greenhouse:*\n%d jobs", s.GreenhouseJobs)},
			{Type: "mrkdwn", Text: fmt.Sprintf("*Lever:*\n%d jobs", s.LeverJobs)},
			{Type: "mrkdwn", Text: fmt.Sprintf("*Aggregator:*\n%d merged", s.AggregatorJobs)},
			{Type: "mrkdwn", Text: fmt.Sprintf("*Discoveries:*\n%d unmatched", s.Discoveries)},
		}
	}

	return slackPayload{Blocks: []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "archfeed " + s.Task + " run complete"},
		},
		{Type: "section", Fields: fields},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: fmt.Sprintf("Finished in %s", s.Duration.Round(1e6))},
		},
	}}
}
