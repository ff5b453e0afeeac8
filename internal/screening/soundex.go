package screening

// soundexDigit maps an upper-case ASCII letter to its Soundex digit class.
// Vowels, H, W, and Y map to 0, which both drops them from the code and
// breaks a run of repeated digits.
func soundexDigit(r byte) byte {
	switch r {
	case 'B', 'F', 'P', 'V':
		return '1'
	case 'C', 'G', 'J', 'K', 'Q', 'S', 'X', 'Z':
		return '2'
	case 'D', 'T':
		return '3'
	case 'L':
		return '4'
	case 'M', 'N':
		return '5'
	case 'R':
		return '6'
	}
	return '0'
}

// Soundex produces the classic 4-character phonetic code (letter + 3 digits)
// for s. Non-letter characters are skipped and, like zero-class letters,
// reset the repeated-digit suppression, so multi-word names still encode
// deterministically. Returns "" when s contains no ASCII letter.
func Soundex(s string) string {
	code := make([]byte, 0, 4)
	var prev byte

	for i := 0; i < len(s) && len(code) < 4; i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			prev = 0
			continue
		}

		if len(code) == 0 {
			code = append(code, c)
			prev = soundexDigit(c)
			continue
		}

		d := soundexDigit(c)
		if d == '0' {
			prev = 0
			continue
		}
		if d == prev {
			continue
		}
		code = append(code, d)
		prev = d
	}

	if len(code) == 0 {
		return ""
	}
	for len(code) < 4 {
		code = append(code, '0')
	}
	return string(code)
}
