package email

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EmailStatus string

const (
	EmailQueued EmailStatus = "queued"
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// Email is the delivery record kept for every outgoing message
type Email struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Org          string             `json:"org,omitempty" bson:"org,omitempty"`
	From         string             `json:"from" bson:"from"`
	To           []string           `json:"to" bson:"to"`
	ReplyTo      string             `json:"reply_to,omitempty" bson:"replyTo,omitempty"`
	Subject      string             `json:"subject" bson:"subject"`
	Body         string             `json:"body" bson:"body"`
	MessageType  string             `json:"message_type,omitempty" bson:"messageType,omitempty"`
	Status       EmailStatus        `json:"status" bson:"status"`
	ErrorMessage string             `json:"error_message,omitempty" bson:"errorMessage,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
	SentAt       *time.Time         `json:"sent_at,omitempty" bson:"sentAt,omitempty"`
}
