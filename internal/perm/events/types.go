package events

// Event names published by the administration tooling when reference data
// changes. The engine only consumes these to keep its action cache honest.
const (
	ExchangeName = "permd.events"

	EventActionTypeCreated = "action_type.created"
	EventActionTypeUpdated = "action_type.updated"
	EventActionTypeRetired = "action_type.retired"
)

// ActionTypeEvent is the payload carried on action_type.* routing keys.
// An empty Code means the whole table should be reloaded.
type ActionTypeEvent struct {
	Code string `json:"code"`
}
