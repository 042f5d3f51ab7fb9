package log

// MultiLogger forwards each event to every logger it holds, in order.
type MultiLogger []Logger

// NewMultiLogger combines loggers, dropping nil entries.
func NewMultiLogger(loggers ...Logger) MultiLogger {
	m := make(MultiLogger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			m = append(m, l)
		}
	}
	return m
}

// Log implements Logger.
func (m MultiLogger) Log(event Event) {
	for _, l := range m {
		l.Log(event)
	}
}

var _ Logger = MultiLogger(nil)
