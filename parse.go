package stride

import "regexp"

// DefaultUntil is the delimiter assumed for parameters that supply neither a
// regex delimiter nor an explicit one, and are not followed by a literal.
const DefaultUntil byte = '/'

// ParseRoute parses a single pattern into a Route.
//
// Grammar:
//
//	pattern := step+
//	step    := exact | param
//	exact   := <any byte except '{'>+
//	param   := '{' name [':' regex] [':' delim] '}'
//	         | '{' name '::' delim '}'
//	name    := [A-Za-z_][A-Za-z0-9_]*
//	delim   := a single byte, or `\n` for the end-of-input sentinel
//
// A parameter with no explicit delimiter borrows the first byte of the
// literal that follows it, so that "/files/{name}.{ext}" splits on '.'.
// A trailing implicit parameter falls back to defaultUntil.
func ParseRoute(pattern string, defaultUntil byte) (*Route, error) {
	if pattern == "" {
		return nil, parseErr(ErrEmptyPattern, pattern, 0, "")
	}

	var (
		steps    []Step
		implicit []bool // per step: delimiter still unresolved
		pnames   []string
		seen     = map[string]bool{}
		lit      []byte
	)

	flushLit := func() {
		if len(lit) > 0 {
			steps = append(steps, Step{kind: stepExact, literal: lit})
			implicit = append(implicit, false)
			lit = nil
		}
	}

	i := 0
	for i < len(pattern) {
		if pattern[i] != '{' {
			lit = append(lit, pattern[i])
			i++
			continue
		}
		flushLit()
		i++ // past '{'

		nameStart := i
		for i < len(pattern) && isNameByte(pattern[i], i == nameStart) {
			i++
		}
		name := pattern[nameStart:i]
		if i == len(pattern) {
			return nil, parseErr(ErrUnexpectedEndOfInput, pattern, i, "parameter not closed")
		}
		if name == "" {
			return nil, parseErr(ErrEmptyParameterName, pattern, nameStart, "")
		}
		if seen[name] {
			return nil, parseErr(ErrDuplicateParameterName, pattern, nameStart, name)
		}
		seen[name] = true

		step := Step{name: name}
		unresolved := false

		switch pattern[i] {
		case '}':
			step.kind = stepUntil
			unresolved = true
			i++
		case ':':
			i++
			src, srcStart, rest, err := scanRegex(pattern, i)
			if err != nil {
				return nil, err
			}
			i = rest
			var delim byte
			hasDelim := false
			if i < len(pattern) && pattern[i] == ':' {
				i++
				delim, i, err = scanDelim(pattern, i)
				if err != nil {
					return nil, err
				}
				hasDelim = true
			}
			if i == len(pattern) || pattern[i] != '}' {
				return nil, parseErr(ErrUnbalancedBrace, pattern, i, "parameter not closed")
			}
			i++ // past '}'

			if src == "" {
				if !hasDelim {
					return nil, parseErr(ErrInvalidRegex, pattern, srcStart, "empty regex")
				}
				step.kind = stepUntil
				step.until = delim
			} else {
				re, rerr := regexp.Compile("^(?:" + src + ")$")
				if rerr != nil {
					return nil, parseErr(ErrInvalidRegex, pattern, srcStart, rerr.Error())
				}
				step.kind = stepRegex
				step.pattern = re
				step.source = src
				if hasDelim {
					step.until = delim
				} else {
					unresolved = true
				}
			}
		default:
			return nil, parseErr(ErrUnbalancedBrace, pattern, i, "expected ':' or '}' after parameter name")
		}

		steps = append(steps, step)
		implicit = append(implicit, unresolved)
		pnames = append(pnames, name)
	}
	flushLit()

	for k := range steps {
		s := &steps[k]
		if s.kind == stepExact {
			continue
		}
		if implicit[k] {
			if k+1 < len(steps) && steps[k+1].kind == stepExact {
				s.until = steps[k+1].literal[0]
			} else {
				s.until = defaultUntil
			}
		}
		if s.until == UntilEnd && k != len(steps)-1 {
			return nil, parseErr(ErrTrailingAfterRestParameter, pattern, len(pattern), s.name)
		}
	}

	return &Route{Pattern: pattern, steps: steps, pnames: pnames}, nil
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

// scanRegex consumes regex text starting at pos, stopping at a ':' or '}'
// that sits outside every bracket pair. Backslash escapes and character
// classes are honored so that "[0-9:]{2,3}" scans as one unit.
func scanRegex(pattern string, pos int) (src string, srcStart, rest int, err error) {
	depth := 0
	inClass := false
	i := pos
	for i < len(pattern) {
		c := pattern[i]
		switch {
		case c == '\\':
			if i+1 == len(pattern) {
				return "", pos, i, parseErr(ErrUnexpectedEndOfInput, pattern, i, "dangling escape")
			}
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(' || c == '{':
			depth++
		case c == ')':
			depth--
			if depth < 0 {
				return "", pos, i, parseErr(ErrUnbalancedBrace, pattern, i, "unmatched ')'")
			}
		case c == '}':
			if depth == 0 {
				return pattern[pos:i], pos, i, nil
			}
			depth--
		case c == ':':
			if depth == 0 {
				return pattern[pos:i], pos, i, nil
			}
		}
		i++
	}
	return "", pos, i, parseErr(ErrUnexpectedEndOfInput, pattern, i, "parameter not closed")
}

// scanDelim reads a delimiter token: one byte, or the escape `\n` denoting
// the end-of-input sentinel.
func scanDelim(pattern string, pos int) (byte, int, error) {
	if pos == len(pattern) {
		return 0, pos, parseErr(ErrUnexpectedEndOfInput, pattern, pos, "missing delimiter")
	}
	if pattern[pos] == '\\' {
		if pos+1 == len(pattern) {
			return 0, pos, parseErr(ErrUnexpectedEndOfInput, pattern, pos, "dangling escape")
		}
		if pattern[pos+1] == 'n' {
			return UntilEnd, pos + 2, nil
		}
		return pattern[pos+1], pos + 2, nil
	}
	return pattern[pos], pos + 1, nil
}
