// Package notify reports finished backup runs to Slack.
package notify

import (
	"fmt"
	"strconv"
	"time"

	"hanoibak/internal/domain/entity"
	"hanoibak/internal/logging"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

// slackAPI is the slice of the Slack client we call.
// This allows mocking in tests while keeping the real implementation simple.
type slackAPI interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

type SlackNotifier struct {
	client  slackAPI
	channel string
	logger  zerolog.Logger
}

func NewSlack(token, channel string) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(token),
		channel: channel,
		logger:  logging.GetLogger("notify"),
	}
}

func (n *SlackNotifier) RunFinished(run *entity.Run) error {
	attachment := slack.Attachment{
		Color: statusColor(run.Status),
		Title: fmt.Sprintf("Backup %s: slot %s", run.Status, run.Slot),
		Fields: []slack.AttachmentField{
			{Title: "Day of year", Value: strconv.Itoa(run.Day), Short: true},
			{Title: "Duration", Value: run.Duration().Round(time.Second).String(), Short: true},
			{Title: "Transferred", Value: formatSize(run.BytesSent), Short: true},
			{Title: "Verification", Value: verificationLabel(run.Checksum), Short: true},
		},
	}
	if run.Message != "" {
		attachment.Text = run.Message
	}

	n.logger.Debug().Str("channel", n.channel).Int64("run_id", run.ID).Msg("posting run notification")

	_, _, err := n.client.PostMessage(
		n.channel,
		slack.MsgOptionText(fmt.Sprintf("Backup run #%d finished", run.ID), false),
		slack.MsgOptionAttachments(attachment),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to slack: %w", err)
	}
	return nil
}

func statusColor(status entity.RunStatus) string {
	if status == entity.RunStatusSuccess {
		return "good"
	}
	return "danger"
}

func verificationLabel(checksum bool) string {
	if checksum {
		return "checksum"
	}
	return "quick"
}

func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
