package catalog

// Event identifies an observable state change in the service. Subscribers
// (typically a view layer) refresh on these instead of polling.
type Event string

const (
	// EventCatalogChanged fires after every reload, add, update and delete.
	EventCatalogChanged Event = "catalog_changed"
	// EventSortStatusChanged fires after every sort and after any mutation
	// that invalidates the sortedness flags.
	EventSortStatusChanged Event = "sort_status_changed"
)

// Subscriber receives state-change events. Subscribers are invoked
// synchronously, in registration order, after the change has been applied.
type Subscriber func(Event)

// Subscribe registers fn for all future events.
func (s *Service) Subscribe(fn Subscriber) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Service) notify(event Event) {
	for _, fn := range s.subscribers {
		fn(event)
	}
}
