package tripcode

// escapeHTML returns p with the HTML special characters replaced by entity
// references, as a board does before computing a tripcode. If amp is false,
// "&" is left as it is. If p needs no escaping it is returned unmodified.
func escapeHTML(p []byte, amp bool) []byte {
	var n int
	for _, c := range p {
		switch c {
		case '"':
			n += len("&quot;") - 1
		case '<', '>':
			n += len("&lt;") - 1
		case '&':
			if amp {
				n += len("&amp;") - 1
			}
		}
	}
	if n == 0 {
		return p
	}

	out := make([]byte, 0, len(p)+n)
	for _, c := range p {
		switch {
		case c == '"':
			out = append(out, "&quot;"...)
		case c == '<':
			out = append(out, "&lt;"...)
		case c == '>':
			out = append(out, "&gt;"...)
		case c == '&' && amp:
			out = append(out, "&amp;"...)
		default:
			out = append(out, c)
		}
	}
	return out
}
