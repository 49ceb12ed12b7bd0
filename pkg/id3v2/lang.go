package id3v2

// Language is a 3-letter ISO-639-2 code as carried by comment, lyrics and
// terms-of-use frames. Codes are stored lowercase; anything that is not
// three ASCII letters becomes the conventional "xxx" stand-in for unknown.
type Language [3]byte

// DefaultLanguage is the stand-in code for an unknown language.
var DefaultLanguage = Language{'x', 'x', 'x'}

// NewLanguage builds a Language from s, falling back to DefaultLanguage when
// s is not a valid code.
func NewLanguage(s string) Language {
	if len(s) != 3 {
		return DefaultLanguage
	}
	var l Language
	for i := 0; i < 3; i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			l[i] = c
		case c >= 'A' && c <= 'Z':
			l[i] = c + ('a' - 'A')
		default:
			return DefaultLanguage
		}
	}
	return l
}

func parseLanguage(s *stream) (Language, error) {
	b, err := s.read(3)
	if err != nil {
		return DefaultLanguage, err
	}
	return NewLanguage(string(b)), nil
}

func (l Language) String() string {
	return string(l[:])
}
