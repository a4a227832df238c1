package ports

import "context"

// WorkflowRequest carries the context of a server-side workflow call.
type WorkflowRequest struct {
	RecordID string
	OnError  func(error)
}

// PageRequest carries the context of a page navigation.
type PageRequest struct {
	RecordID string
	Location string
	OnError  func(error)
}

// ActionService runs click actions on behalf of the widget. Both calls are
// fire-and-forget: they return immediately, and the only feedback is the
// OnError callback, which may run on another goroutine after the caller
// has gone away. Success needs no callback because its effects arrive
// through the normal record subscriptions.
type ActionService interface {
	InvokeWorkflow(ctx context.Context, name string, req WorkflowRequest)
	NavigateToPage(ctx context.Context, name string, req PageRequest)
}
