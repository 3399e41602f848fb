package json

// RawValue is an undecoded JSON value. Value codecs copy it verbatim in both
// directions.
type RawValue []byte

// Sink is the append-only output of one serialize operation.
type Sink struct {
	buf []byte
}

func NewSink(capacity int) *Sink {
	return &Sink{buf: make([]byte, 0, capacity)}
}

func (s *Sink) WriteByte(c byte) error {
	s.buf = append(s.buf, c)
	return nil
}

func (s *Sink) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *Sink) WriteString(str string) (int, error) {
	s.buf = append(s.buf, str...)
	return len(str), nil
}

// AppendString writes str as an escaped, quoted JSON string.
func (s *Sink) AppendString(str string) {
	s.buf = AppendString(s.buf, str)
}

func (s *Sink) Len() int {
	return len(s.buf)
}

// Bytes returns the written output. It aliases the sink until the next
// write or Reset.
func (s *Sink) Bytes() []byte {
	return s.buf
}

func (s *Sink) Reset() {
	s.buf = s.buf[:0]
}
