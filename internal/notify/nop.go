package notify

import "hanoibak/internal/domain/entity"

// Nop discards notifications. Used when Slack is not configured.
type Nop struct{}

func NewNop() *Nop {
	return &Nop{}
}

func (Nop) RunFinished(*entity.Run) error {
	return nil
}
