package runner

import "errors"

var (
	errEmptyCommand  = errors.New("empty command")
	errUnclosedQuote = errors.New("unclosed quote in command")
)

// SplitCommand splits a command line into argv, honoring single and
// double quotes and backslash escapes.  It is deliberately simpler
// than a shell: no globbing, variable expansion, or redirection.
func SplitCommand(cmd string) ([]string, error) {
	var argv []string
	var current []rune
	var inSingle, inDouble, pending bool
	runes := []rune(cmd)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
			pending = true
		case c == '"' && !inSingle:
			inDouble = !inDouble
			pending = true
		case (c == ' ' || c == '\t') && !inSingle && !inDouble:
			if pending || len(current) > 0 {
				argv = append(argv, string(current))
				current = current[:0]
				pending = false
			}
		case c == '\\' && !inSingle:
			if i+1 < len(runes) {
				i++
				current = append(current, runes[i])
			}
		default:
			current = append(current, c)
		}
	}
	if inSingle || inDouble {
		return nil, errUnclosedQuote
	}
	if pending || len(current) > 0 {
		argv = append(argv, string(current))
	}
	if len(argv) == 0 {
		return nil, errEmptyCommand
	}
	return argv, nil
}
