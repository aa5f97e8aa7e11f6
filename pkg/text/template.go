package text

import (
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// character escapes understood inside a replacement template
var templateEscapes = map[byte]byte{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'\\': '\\',
}

// groupResolver is the part of *regexp.Regexp needed to validate references
type groupResolver interface {
	NumSubexp() int
	SubexpIndex(name string) int
}

// translateTemplate rewrites a backslash style template (\1, \g<name>, \n)
// into the ${n} form understood by regexp.Expand. Literal '$' is escaped.
func translateTemplate(re groupResolver, repl string) (string, error) {
	var out strings.Builder
	out.Grow(len(repl) + 8)

	for i := 0; i < len(repl); i++ {
		c := repl[i]

		if c == '$' {
			out.WriteString("$$")
			continue
		}

		if c != '\\' {
			out.WriteByte(c)
			continue
		}

		if i+1 >= len(repl) {
			return "", errors.New("bad escape (end of template)")
		}

		i++
		c = repl[i]

		switch {
		case c == 'g':
			name, width, err := readGroupName(repl[i+1:])
			if err != nil {
				return "", err
			}
			ref, err := resolveGroup(re, name)
			if err != nil {
				return "", err
			}
			out.WriteString(ref)
			i += width

		case c == '0':
			// \0 and up to two more octal digits
			j := i + 1
			for j < len(repl) && j < i+3 && isOctal(repl[j]) {
				j++
			}
			v, _ := strconv.ParseUint(repl[i:j], 8, 16)
			writeRune(&out, rune(v))
			i = j - 1

		case isDigit(c):
			// three octal digits form a character, otherwise one or two digits
			// are a group number
			if i+2 < len(repl) && isOctal(c) && isOctal(repl[i+1]) && isOctal(repl[i+2]) {
				v, err := strconv.ParseUint(repl[i:i+3], 8, 16)
				if err != nil || v > 0o377 {
					return "", errors.Errorf("octal escape value \\%s outside of range 0-0o377", repl[i:i+3])
				}
				writeRune(&out, rune(v))
				i += 2
				continue
			}

			j := i + 1
			if j < len(repl) && isDigit(repl[j]) {
				j++
			}
			ref, err := resolveGroup(re, repl[i:j])
			if err != nil {
				return "", err
			}
			out.WriteString(ref)
			i = j - 1

		default:
			if esc, ok := templateEscapes[c]; ok {
				writeLiteral(&out, esc)
				continue
			}
			if isASCIILetter(c) {
				return "", errors.Errorf("bad escape \\%c", c)
			}
			out.WriteByte('\\')
			writeLiteral(&out, c)
		}
	}

	return out.String(), nil
}

// readGroupName reads "<name>" and returns the name and consumed width
func readGroupName(s string) (string, int, error) {
	if !strings.HasPrefix(s, "<") {
		return "", 0, errors.New("missing < after \\g")
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return "", 0, errors.New("missing >, unterminated name")
	}
	name := s[1:end]
	if name == "" {
		return "", 0, errors.New("missing group name")
	}
	return name, end + 1, nil
}

func resolveGroup(re groupResolver, name string) (string, error) {
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > re.NumSubexp() {
			return "", errors.Errorf("invalid group reference %d", n)
		}
		return "${" + strconv.Itoa(n) + "}", nil
	}

	if !isIdentifier(name) {
		return "", errors.Errorf("bad character in group name '%s'", name)
	}
	if re.SubexpIndex(name) < 0 {
		return "", errors.Errorf("unknown group name '%s'", name)
	}
	return "${" + name + "}", nil
}

func writeLiteral(out *strings.Builder, b byte) {
	if b == '$' {
		out.WriteString("$$")
		return
	}
	out.WriteByte(b)
}

func writeRune(out *strings.Builder, r rune) {
	if r == '$' {
		out.WriteString("$$")
		return
	}
	out.WriteRune(r)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isOctal(c byte) bool { return c >= '0' && c <= '7' }

func isASCIILetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || isASCIILetter(c) || (i > 0 && isDigit(c)) {
			continue
		}
		return false
	}
	return s != ""
}
