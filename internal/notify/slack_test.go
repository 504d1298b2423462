package notify

import (
	"errors"
	"testing"
	"time"

	"hanoibak/internal/domain/entity"
	"hanoibak/internal/logging"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSlack struct {
	channel string
	options int
	err     error
}

func (f *fakeSlack) PostMessage(channelID string, options ...slack.MsgOption) (string, string, error) {
	f.channel = channelID
	f.options = len(options)
	return "", "", f.err
}

func testRun() *entity.Run {
	started := time.Date(2025, 3, 10, 1, 30, 0, 0, time.UTC)
	return &entity.Run{
		ID:         42,
		Day:        69,
		Slot:       "a",
		Status:     entity.RunStatusSuccess,
		BytesSent:  1536,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Minute),
	}
}

func TestSlackNotifierRunFinished(t *testing.T) {
	t.Run("should post to the configured channel", func(t *testing.T) {
		fake := &fakeSlack{}
		n := &SlackNotifier{client: fake, channel: "#backups", logger: logging.GetLogger("notify")}

		err := n.RunFinished(testRun())
		require.NoError(t, err)
		assert.Equal(t, "#backups", fake.channel)
		assert.Equal(t, 2, fake.options)
	})

	t.Run("should wrap post errors", func(t *testing.T) {
		fake := &fakeSlack{err: errors.New("channel_not_found")}
		n := &SlackNotifier{client: fake, channel: "#backups", logger: logging.GetLogger("notify")}

		err := n.RunFinished(testRun())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to post message to slack")
	})
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "good", statusColor(entity.RunStatusSuccess))
	assert.Equal(t, "danger", statusColor(entity.RunStatusFailed))
	assert.Equal(t, "danger", statusColor(entity.RunStatusRunning))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSize(tt.bytes))
	}
}

func TestNopNotifier(t *testing.T) {
	require.NoError(t, NewNop().RunFinished(testRun()))
}
