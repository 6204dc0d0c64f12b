package models

// WebhookPayload is the body of a Messenger webhook POST. Meta nests events as
// entry[].messaging[]; either level may be absent, which means "no events".
type WebhookPayload struct {
	Object string  `json:"object,omitempty"` // "page"
	Entry  []Entry `json:"entry"`
}

// Entry groups the messaging events delivered for one page.
type Entry struct {
	ID        string           `json:"id,omitempty"`
	Time      int64            `json:"time,omitempty"` // Unix ms
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is one record from entry[].messaging[]. Message is nil for
// non-message events (postbacks, delivery receipts, read receipts).
type MessagingEvent struct {
	Sender    Participant `json:"sender"`
	Recipient Participant `json:"recipient"`
	Timestamp int64       `json:"timestamp,omitempty"`
	Message   *Message    `json:"message,omitempty"`
}

// Participant identifies a conversation party by PSID.
type Participant struct {
	ID string `json:"id"`
}

// Message is the message portion of a messaging event. IsEcho marks the
// page's own outbound sends echoed back through the webhook.
type Message struct {
	MID    string `json:"mid,omitempty"`
	Text   string `json:"text"`
	IsEcho bool   `json:"is_echo,omitempty"`
}
