package domain

// Message is one stored SMS-style message as delivered by the webhook.
type Message struct {
	MessageID string
	From      string
	To        string
	// Timestamp is the UTC "Z" timestamp exactly as received.
	Timestamp string
	Text      *string
	CreatedAt string
}

// MessagePage is one filtered page of messages plus the unpaged match count.
type MessagePage struct {
	Items  []Message
	Total  int64
	Limit  int64
	Offset int64
}

// SenderCount is the number of stored messages sent from one MSISDN.
type SenderCount struct {
	Sender string
	Count  int64
}

// Stats is a consistent snapshot of aggregate figures over the store.
type Stats struct {
	TotalMessages     int64
	SendersCount      int64
	MessagesPerSender []SenderCount
	FirstMessageTS    *string
	LastMessageTS     *string
}
