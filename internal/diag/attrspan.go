package diag

// AttributeValueSpans scans the raw text of a start tag token — as
// captured by a scanner's token span, "<div lang=\"ts\" id='x'>" — and
// reports, for each name in attrs (in document order) that the tag
// actually carries, the byte span of its value relative to baseOffset.
// Boolean attributes (no '=') are skipped: they have no value span to
// report. It has no awareness of the HTML content model; it only walks
// the bytes between angle brackets, which is all a diagnostic tool needs
// to turn a matched attribute name into a clickable source location.
func AttributeValueSpans(raw []byte, baseOffset int, attrs []string) map[string]Span {
	result := make(map[string]Span, len(attrs))

	pos := 0
	if pos < len(raw) && raw[pos] == '<' {
		pos++
	}
	for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
		pos++
	}

	want := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		want[a] = true
	}

	for pos < len(raw) {
		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) || raw[pos] == '>' || raw[pos] == '/' {
			break
		}

		nameStart := pos
		for pos < len(raw) && raw[pos] != '=' && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
			pos++
		}
		name := string(raw[nameStart:pos])

		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}

		if pos >= len(raw) || raw[pos] != '=' {
			continue // boolean attribute, no value span
		}
		pos++
		for pos < len(raw) && isAttrSpace(raw[pos]) {
			pos++
		}
		if pos >= len(raw) {
			break
		}

		var valueStart, valueEnd int
		if raw[pos] == '"' || raw[pos] == '\'' {
			quote := raw[pos]
			pos++
			valueStart = pos
			for pos < len(raw) && raw[pos] != quote {
				if raw[pos] == '\\' && pos+1 < len(raw) {
					pos += 2
				} else {
					pos++
				}
			}
			valueEnd = pos
			if pos < len(raw) {
				pos++
			}
		} else {
			valueStart = pos
			for pos < len(raw) && !isAttrSpace(raw[pos]) && raw[pos] != '>' && raw[pos] != '/' {
				pos++
			}
			valueEnd = pos
		}

		if want[name] {
			result[name] = Span{Offset: baseOffset + valueStart, Length: valueEnd - valueStart}
		}
	}

	return result
}

func isAttrSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
