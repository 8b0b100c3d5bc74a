package engine

// Sink receives the user-facing log, one line per call.
type Sink interface {
	AppendLine(line string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(line string)

// AppendLine implements Sink.
func (f SinkFunc) AppendLine(line string) { f(line) }

type discardSink struct{}

func (discardSink) AppendLine(string) {}

func sinkOrDiscard(s Sink) Sink {
	if s == nil {
		return discardSink{}
	}
	return s
}
