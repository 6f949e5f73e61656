package console

import (
	"context"

	"go.uber.org/zap"
)

// Notification is a short message for the person operating the console, like "Marked as read!".
// It carries no machine readable payload besides the id of the affected submission.
type Notification struct {
	Message      string
	SubmissionId string
}

// Notifier delivers notifications to the operator.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to a zap logger.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that logs on the given logger.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notification")}
}

func (n *LogNotifier) Notify(_ context.Context, notification Notification) {
	fields := []zap.Field{zap.String("message", notification.Message)}
	if notification.SubmissionId != "" {
		fields = append(fields, zap.String("submission_id", notification.SubmissionId))
	}
	n.logger.Info("notification", fields...)
}
