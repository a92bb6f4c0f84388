package logbook

// CategoryRouter binds a category name to an ordered destination list and
// fans a single log call out to every destination. Destinations are
// invoked in list order; each call is panic-isolated so one failing or
// misbehaving sink cannot prevent delivery to the rest.
type CategoryRouter struct {
	category     string
	destinations []Destination
}

// NewCategoryRouter builds a router for the given category. The
// destination list is copied; order is preserved.
func NewCategoryRouter(category string, destinations ...Destination) *CategoryRouter {
	dests := make([]Destination, len(destinations))
	copy(dests, destinations)
	return &CategoryRouter{category: category, destinations: dests}
}

// Category returns the router's category name.
func (r *CategoryRouter) Category() string {
	if r == nil {
		return emptyString
	}
	return r.category
}

// Destinations returns a copy of the configured destination list.
func (r *CategoryRouter) Destinations() []Destination {
	if r == nil {
		return nil
	}
	out := make([]Destination, len(r.destinations))
	copy(out, r.destinations)
	return out
}

// Log delivers one record to every destination in list order. Each
// destination applies its own level gate.
func (r *CategoryRouter) Log(subsystem string, level Level, message string, meta Metadata) {
	if r == nil {
		return
	}
	for _, d := range r.destinations {
		dispatch(d, subsystem, r.category, level, message, meta)
	}
}

// dispatch shields the fan-out loop from a panicking destination. A log
// call must never destabilize the host application.
func dispatch(d Destination, subsystem, category string, level Level, message string, meta Metadata) {
	defer func() {
		_ = recover()
	}()
	d.Log(subsystem, category, level, message, meta)
}
