package task

import (
	"ModelFlow/internal/mq"
	"ModelFlow/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Email kinds carried on the notify queue.
const (
	EmailActivate        = "activate"
	EmailModelApproved   = "model_approved"
	EmailModelRejected   = "model_rejected"
	EmailPurchase        = "purchase"
	EmailDeletionWarning = "deletion_warning"
)

// EmailMessage is the payload sent to the notify worker.
type EmailMessage struct {
	Kind       string `json:"kind"`
	To         string `json:"to"`
	Link       string `json:"link,omitempty"`
	ModelName  string `json:"model_name,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Buyer      string `json:"buyer,omitempty"`
	DeleteDate string `json:"delete_date,omitempty"`
	Attempt    int    `json:"attempt"`
}

// EnqueueEmail publishes an email job. Failures are logged, not returned:
// a broken broker must not fail the request that triggered the mail.
func EnqueueEmail(ctx context.Context, msg EmailMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		log.Printf("email task: marshal failed: %v", err)
		return
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		log.Printf("email task: publisher unavailable: %v", err)
		return
	}
	if err := publisher.PublishNotify(ctx, body); err != nil {
		log.Printf("email task: publish failed: %v", err)
	}
}

// DeliverEmail sends the mail described by msg.
func DeliverEmail(msg EmailMessage) error {
	switch msg.Kind {
	case EmailActivate:
		return utils.SendActivateMail(msg.To, msg.Link)
	case EmailModelApproved:
		return utils.SendModelApprovedMail(msg.To, msg.ModelName)
	case EmailModelRejected:
		return utils.SendModelRejectedMail(msg.To, msg.ModelName, msg.Reason)
	case EmailPurchase:
		return utils.SendPurchaseMail(msg.To, msg.ModelName, msg.Buyer)
	case EmailDeletionWarning:
		return utils.SendDeletionWarningMail(msg.To, msg.ModelName, msg.DeleteDate)
	default:
		return fmt.Errorf("email task: unknown kind %q", msg.Kind)
	}
}
