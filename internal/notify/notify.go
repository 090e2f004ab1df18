// Package notify delivers share links by email.
package notify

import "context"

// TemplateFields are the values substituted into the share email template.
type TemplateFields struct {
	ToEmail  string `json:"to_email"`
	FileLink string `json:"file_link"`
	FileName string `json:"file_name"`
	FromName string `json:"from_name"`
}

// Receipt is the delivery service's acknowledgement of one message.
type Receipt struct {
	Status int
	Text   string
}

// Sender delivers one templated message to one recipient.
type Sender interface {
	Send(ctx context.Context, to string, fields TemplateFields) (Receipt, error)
}
