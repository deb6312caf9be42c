package dblspace

// Options configures the allocating helpers Decompress and
// DecompressFromReader. DecompressInto uses the caller's buffer instead.
type Options struct {
	// OutputCapacity is the size of the output buffer to allocate.
	// Zero means DefaultOutputCapacity.
	OutputCapacity int
	// MaxInputSize limits how much DecompressFromReader reads.
	// Zero or negative means DefaultMaxInputSize.
	MaxInputSize int64
}

// DefaultOptions returns options for one DoubleSpace cluster: 8 KiB output, 64 KiB input limit.
func DefaultOptions() *Options {
	return &Options{
		OutputCapacity: DefaultOutputCapacity,
		MaxInputSize:   DefaultMaxInputSize,
	}
}

// normalize returns a copy of o with defaults filled in.
func (o *Options) normalize() (*Options, error) {
	if o == nil {
		return DefaultOptions(), nil
	}
	if o.OutputCapacity < 0 {
		return nil, ErrNegativeCapacity
	}

	n := *o
	if n.OutputCapacity == 0 {
		n.OutputCapacity = DefaultOutputCapacity
	}
	if n.MaxInputSize <= 0 {
		n.MaxInputSize = DefaultMaxInputSize
	}

	return &n, nil
}
