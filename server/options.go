package server

// DefaultReadBufferSize bounds the single read a connection performs.
const DefaultReadBufferSize = 1024

type Options struct {
	// ReadBufferSize is the size of the per-connection read buffer.
	// Zero means [DefaultReadBufferSize]. A request is whatever fits
	// into one read of this buffer; there is no accumulation loop.
	ReadBufferSize uint
}

func (o Options) readBufferSize() int {
	if o.ReadBufferSize == 0 {
		return DefaultReadBufferSize
	}
	return int(o.ReadBufferSize)
}
