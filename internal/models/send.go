package models

// SendRequest is the Graph API Send API request body.
type SendRequest struct {
	Recipient     Participant `json:"recipient"`
	Message       SendMessage `json:"message"`
	MessagingType string      `json:"messaging_type"` // always "RESPONSE"
}

// SendMessage carries the outbound text.
type SendMessage struct {
	Text string `json:"text"`
}

// SendResponse is the Graph API acknowledgment for a successful send.
type SendResponse struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}
