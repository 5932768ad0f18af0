package ports

import "context"

// EventPublisher notifies other instances about ended sessions
type EventPublisher interface {
	PublishLogout(ctx context.Context, subject string, tokenID string) error
}
