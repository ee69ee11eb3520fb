package wld

// Sign is a placed sign or tombstone's text and position.
type Sign struct {
	X, Y int32
	Text string
}

// readSigns decodes the signs section: an i16 total followed by that
// many (text, x, y) records.
func readSigns(s *ByteStream) ([]Sign, error) {
	total, err := s.ReadI16()
	if err != nil {
		return nil, err
	}
	signs := make([]Sign, 0, total)
	for i := int16(0); i < total; i++ {
		text, err := s.ReadString()
		if err != nil {
			return nil, err
		}
		x, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		y, err := s.ReadI32()
		if err != nil {
			return nil, err
		}
		signs = append(signs, Sign{X: x, Y: y, Text: text})
	}
	return signs, nil
}
