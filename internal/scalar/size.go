package scalar

var sizeUnits = map[byte]float64{
	'b': 512, // blocks
	'k': 1 << 10,
	'm': 1 << 20,
	'g': 1 << 30,
}

// parseSize converts "1234", "10k" or "10.5K" into bytes.
func (s *Session) parseSize(text string) (int64, error) {
	if n, ok := s.sizes[text]; ok {
		return n, nil
	}
	num, mult := text, 1.0
	if text != "" {
		if u, ok := sizeUnits[lower(text[len(text)-1])]; ok {
			num, mult = text[:len(text)-1], u
		}
	}
	f, err := parseNumber(num)
	if err != nil {
		return 0, &ParseError{Input: text, Kind: KindSize}
	}
	n, ok := toInt64(f * mult)
	if !ok {
		return 0, &ParseError{Input: text, Kind: KindSize}
	}
	s.sizes[text] = n
	return n, nil
}
