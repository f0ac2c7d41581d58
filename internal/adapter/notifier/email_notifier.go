package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"time"

	"github.com/api-sage/core-banking-service/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

var subjects = map[Kind]string{
	KindDeposit:          "Deposit confirmation",
	KindWithdrawal:       "Withdrawal confirmation",
	KindLoanRequest:      "Loan request received",
	KindTransferSent:     "Transfer sent",
	KindTransferReceived: "Money received",
}

type sendFunc func(addr, from string, to []string, msg []byte) error

// EmailNotifier delivers operation notifications over SMTP. The mail server
// is not part of the money path, so calls run behind a circuit breaker and a
// tripped breaker fails fast instead of stalling request handling.
type EmailNotifier struct {
	addr    string
	from    string
	breaker *gobreaker.CircuitBreaker
	send    sendFunc
}

func NewEmailNotifier(addr, from string) *EmailNotifier {
	n := &EmailNotifier{
		addr: addr,
		from: from,
		send: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}

	n.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "notification-smtp",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return n
}

func (n *EmailNotifier) Notify(ctx context.Context, userRef string, kind Kind, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	messageID := uuid.NewString()
	subject, ok := subjects[kind]
	if !ok {
		subject = "Account activity"
	}

	body := fmt.Sprintf(
		"Message-ID: <%s>\r\nFrom: %s\r\nTo: %s\r\nSubject: %s\r\n\r\nAn amount of %s was processed on your account (%s).\r\n",
		messageID, n.from, userRef, subject, amount.StringFixed(2), kind,
	)

	_, err := n.breaker.Execute(func() (any, error) {
		return nil, n.send(n.addr, n.from, []string{userRef}, []byte(body))
	})
	if err != nil {
		logger.Error("email notifier send failed", err, logger.Fields{
			"messageId": messageID,
			"kind":      kind,
			"userRef":   userRef,
		})
		return fmt.Errorf("send notification email: %w", err)
	}

	logger.Info("email notifier send success", logger.Fields{
		"messageId": messageID,
		"kind":      kind,
		"userRef":   userRef,
	})
	return nil
}
