package trace

// EventOption customizes a recording call.
type EventOption func(*eventOptions)

type eventOptions struct {
	category  string
	matchName string
	hasMatch  bool
}

// WithCategory attaches a category to the emitted record.
func WithCategory(cat string) EventOption {
	return func(o *eventOptions) { o.category = cat }
}

// MatchName asserts, on an end call, that the span being closed carries the
// given name. The pairing itself stays positional; the assertion only guards
// against mismatched begin/end call sites. Ignored by other operations.
func MatchName(name string) EventOption {
	return func(o *eventOptions) {
		o.matchName = name
		o.hasMatch = true
	}
}

func applyEventOptions(opts []EventOption) eventOptions {
	var o eventOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TrackOption customizes track registration.
type TrackOption func(*trackOptions)

type trackOptions struct {
	module    Module
	hasModule bool
	parent    Track
	hasParent bool
}

// InModule registers the track under a previously registered module instead
// of the default one.
func InModule(m Module) TrackOption {
	return func(o *trackOptions) {
		o.module = m
		o.hasModule = true
	}
}

// Under registers the track as a sub-track of parent. The new track lives in
// the parent's module and its name is prefixed with the parent's name.
func Under(parent Track) TrackOption {
	return func(o *trackOptions) {
		o.parent = parent
		o.hasParent = true
	}
}

func applyTrackOptions(opts []TrackOption) trackOptions {
	var o trackOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
