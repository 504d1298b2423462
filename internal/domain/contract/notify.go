package contract

import "hanoibak/internal/domain/entity"

// Notifier defines the interface for reporting finished backup runs to an
// external channel (Slack in the real implementation).
type Notifier interface {
	RunFinished(run *entity.Run) error
}
