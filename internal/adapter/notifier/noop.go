package notifier

import (
	"context"

	"github.com/api-sage/core-banking-service/internal/logger"
	"github.com/shopspring/decimal"
)

// NoopNotifier is used when no SMTP endpoint is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) Notify(_ context.Context, userRef string, kind Kind, amount decimal.Decimal) error {
	logger.Info("noop notifier skipping notification", logger.Fields{
		"userRef": userRef,
		"kind":    kind,
		"amount":  amount,
	})
	return nil
}
