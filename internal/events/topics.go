package events

// Topics emitted by the order flow.
const (
	// TopicSessionCreated fires when a kiosk session opens.
	TopicSessionCreated = "session.created"
	// TopicOrderCreated fires when a checkout snapshot is assembled.
	TopicOrderCreated = "order.created"
	// TopicPaymentSucceeded fires when the gateway approves a submission.
	TopicPaymentSucceeded = "payment.succeeded"
	// TopicPaymentFailed fires when the gateway declines a submission.
	TopicPaymentFailed = "payment.failed"
	// TopicOrderConfirmed fires when the flow reaches confirmation.
	TopicOrderConfirmed = "order.confirmed"
)
