package ports

// Record is a host-owned entity the widget visualizes. The widget never
// mutates it and only learns about changes through DataService
// subscriptions. An empty ID means the record has no resolvable identity.
type Record interface {
	ID() string
}

// Handle identifies one live subscription. Handles are issued by the
// DataService and owned by whoever subscribed.
type Handle uint64

// Subscription asks to be notified when a record changes. With an empty
// Attribute the callback fires on any change to the record; otherwise only
// when that attribute changes.
type Subscription struct {
	RecordID  string
	Attribute string
	Callback  func()
}

// DataService gives read access to record attributes and change
// notifications. Attribute values are loosely typed (strings, numbers or
// nil) and callers must coerce them. Unsubscribe must tolerate handles that
// were already released. Implementations must be safe for concurrent use
// and must not hold internal locks while invoking callbacks, since a
// callback commonly reads attributes again.
type DataService interface {
	Attribute(record Record, name string) (any, bool)
	Subscribe(sub Subscription) Handle
	Unsubscribe(handle Handle)
}
