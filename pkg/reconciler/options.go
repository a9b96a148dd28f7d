package reconciler

// options configures a Matcher.
type options struct {
	collections bool
}

func defaultOptions() *options {
	return &options{
		collections: true,
	}
}

// Option is a function that configures a Matcher.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns matcher options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithCollections controls whether a matched author's collection labels are
// copied onto the comparison row.
func WithCollections(enabled bool) Option {
	return func(o *options) error {
		o.collections = enabled
		return nil
	}
}
