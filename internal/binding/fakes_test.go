package binding

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/progressbar/internal/ports"
)

type fakeRecord string

func (r fakeRecord) ID() string { return string(r) }

// fakeData is a deterministic DataService that records every call.
type fakeData struct {
	mu           sync.Mutex
	values       map[string]map[string]any
	subs         map[ports.Handle]ports.Subscription
	next         ports.Handle
	unsubscribed map[ports.Handle]int
}

func newFakeData() *fakeData {
	return &fakeData{
		values:       make(map[string]map[string]any),
		subs:         make(map[ports.Handle]ports.Subscription),
		unsubscribed: make(map[ports.Handle]int),
	}
}

func (f *fakeData) Attribute(record ports.Record, name string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[record.ID()][name]
	return v, ok
}

func (f *fakeData) Subscribe(sub ports.Subscription) ports.Handle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	f.subs[f.next] = sub
	return f.next
}

func (f *fakeData) Unsubscribe(h ports.Handle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unsubscribed[h]++
	delete(f.subs, h)
}

func (f *fakeData) set(id, attr string, v any) {
	f.mu.Lock()
	if f.values[id] == nil {
		f.values[id] = make(map[string]any)
	}
	f.values[id][attr] = v
	var cbs []func()
	for _, sub := range f.subs {
		if sub.RecordID == id && (sub.Attribute == "" || sub.Attribute == attr) {
			cbs = append(cbs, sub.Callback)
		}
	}
	f.mu.Unlock()

	for _, cb := range cbs {
		cb()
	}
}

func (f *fakeData) live() []ports.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ports.Subscription, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out
}

func (f *fakeData) maxReleases() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	highest := 0
	for _, n := range f.unsubscribed {
		if n > highest {
			highest = n
		}
	}
	return highest
}

type actionCall struct {
	kind     string
	name     string
	recordID string
	location string
	onError  func(error)
}

// fakeActions captures dispatched actions so tests can fail them later.
type fakeActions struct {
	mu    sync.Mutex
	calls []actionCall
}

func (f *fakeActions) InvokeWorkflow(_ context.Context, name string, req ports.WorkflowRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, actionCall{kind: "workflow", name: name, recordID: req.RecordID, onError: req.OnError})
}

func (f *fakeActions) NavigateToPage(_ context.Context, name string, req ports.PageRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, actionCall{kind: "page", name: name, recordID: req.RecordID, location: req.Location, onError: req.OnError})
}

func (f *fakeActions) all() []actionCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]actionCall(nil), f.calls...)
}
