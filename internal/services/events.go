package services

// EventPublisher emits account lifecycle events to the message broker.
// Publishing is best effort: a broker failure is logged by the caller and
// never fails the request that triggered it.
type EventPublisher interface {
	PublishUserRegistered(event map[string]interface{}) error
}
