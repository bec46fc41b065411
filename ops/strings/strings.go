// Package strings is the chain's operation table for string values.
//
// Positions and lengths count runes, not bytes.
package strings

import (
	"reflect"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/on-the-ground/extras_go/ops"

	"github.com/samber/lo"
)

var Table = ops.NewTable("strings", map[string]ops.Op{
	"substr":      withString(substr),
	"charAt":      withString(charAt),
	"charCodeAt":  withString(charCodeAt),
	"toUpper":     withString(toUpper),
	"toLower":     withString(toLower),
	"trim":        withString(trim),
	"padStart":    withString(padStart),
	"padEnd":      withString(padEnd),
	"repeat":      withString(repeat),
	"replace":     withString(replace),
	"remove":      withString(remove),
	"match":       withString(match),
	"split":       withString(split),
	"concat":      withString(concat),
	"indexOf":     withString(indexOf),
	"lastIndexOf": withString(lastIndexOf),
	"includes":    withString(includes),
	"startsWith":  withString(startsWith),
	"endsWith":    withString(endsWith),
	"length":      withString(length),
	"reverse":     withString(reverse),
	"camelCase":   withString(camelCase),
	"kebabCase":   withString(kebabCase),
	"snakeCase":   withString(snakeCase),
	"capitalize":  withString(capitalize),
	"words":       withString(words),
})

func withString(op func(s string, args []any) (any, error)) ops.Op {
	return func(value any, args ...any) (any, error) {
		if value == nil || reflect.TypeOf(value).Kind() != reflect.String {
			return nil, ops.Invalid("%T is not a string", value)
		}
		return op(reflect.ValueOf(value).String(), args)
	}
}

// substr returns length runes starting at start. A negative start counts
// from the end; a negative length leaves that many runes off the end.
// Without a length the rest of the string is returned.
func substr(s string, args []any) (any, error) {
	start, err := ops.Int(args, 0)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	size := len(rs)
	if start < 0 {
		start = max(size+start, 0)
	}
	start = min(start, size)
	n, err := ops.OptInt(args, 1, size)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = max(size-start+n, 0)
	}
	n = min(n, size-start)
	return string(rs[start : start+n]), nil
}

func charAt(s string, args []any) (any, error) {
	i, err := ops.Int(args, 0)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	if i < 0 || i >= len(rs) {
		return "", nil
	}
	return string(rs[i]), nil
}

// charCodeAt returns the code point at i, or -1 when i is out of range.
func charCodeAt(s string, args []any) (any, error) {
	i, err := ops.Int(args, 0)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	if i < 0 || i >= len(rs) {
		return -1, nil
	}
	return int(rs[i]), nil
}

func toUpper(s string, _ []any) (any, error) {
	return strings.ToUpper(s), nil
}

func toLower(s string, _ []any) (any, error) {
	return strings.ToLower(s), nil
}

// trim strips white space, or every rune of the optional cutset.
func trim(s string, args []any) (any, error) {
	if len(args) == 0 {
		return strings.TrimSpace(s), nil
	}
	cutset, err := ops.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	return strings.Trim(s, cutset), nil
}

func padStart(s string, args []any) (any, error) {
	fill, err := padding(s, args)
	if err != nil {
		return nil, err
	}
	return fill + s, nil
}

func padEnd(s string, args []any) (any, error) {
	fill, err := padding(s, args)
	if err != nil {
		return nil, err
	}
	return s + fill, nil
}

// padding builds the filler that brings s up to the target width, repeating
// the pad string (default " ") and cutting its last repetition short.
func padding(s string, args []any) (string, error) {
	width, err := ops.Int(args, 0)
	if err != nil {
		return "", err
	}
	pad, err := ops.OptArg(args, 1, " ")
	if err != nil {
		return "", err
	}
	missing := width - utf8.RuneCountInString(s)
	if missing <= 0 || pad == "" {
		return "", nil
	}
	reps := missing/utf8.RuneCountInString(pad) + 1
	return string([]rune(strings.Repeat(pad, reps))[:missing]), nil
}

func repeat(s string, args []any) (any, error) {
	n, err := ops.Int(args, 0)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ops.Invalid("negative repeat count %d", n)
	}
	return strings.Repeat(s, n), nil
}

func compile(args []any) (*regexp.Regexp, error) {
	pattern, err := ops.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, ops.Invalid("pattern %q: %v", pattern, err)
	}
	return re, nil
}

// replace substitutes every match of a regular expression. The replacement
// may refer to groups as in regexp.Regexp.Expand.
func replace(s string, args []any) (any, error) {
	re, err := compile(args)
	if err != nil {
		return nil, err
	}
	repl, err := ops.Arg[string](args, 1)
	if err != nil {
		return nil, err
	}
	return re.ReplaceAllString(s, repl), nil
}

func remove(s string, args []any) (any, error) {
	sub, err := ops.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	return strings.ReplaceAll(s, sub, ""), nil
}

// match returns every match of a regular expression, or nil when nothing
// matches.
func match(s string, args []any) (any, error) {
	re, err := compile(args)
	if err != nil {
		return nil, err
	}
	found := re.FindAllString(s, -1)
	if found == nil {
		return nil, nil
	}
	return lo.ToAnySlice(found), nil
}

func split(s string, args []any) (any, error) {
	sep, err := ops.OptArg(args, 0, "")
	if err != nil {
		return nil, err
	}
	return lo.ToAnySlice(strings.Split(s, sep)), nil
}

func concat(s string, args []any) (any, error) {
	var b strings.Builder
	b.WriteString(s)
	for i := range args {
		part, err := ops.Arg[string](args, i)
		if err != nil {
			return nil, err
		}
		b.WriteString(part)
	}
	return b.String(), nil
}

// indexOf returns the rune position of the first occurrence of sub at or
// after the optional start position, or -1.
func indexOf(s string, args []any) (any, error) {
	sub, err := ops.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	from, err := ops.OptInt(args, 1, 0)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	from = lo.Clamp(from, 0, len(rs))
	idx := strings.Index(string(rs[from:]), sub)
	if idx < 0 {
		return -1, nil
	}
	return from + utf8.RuneCountInString(string(rs[from:])[:idx]), nil
}

// lastIndexOf returns the rune position of the last occurrence of sub that
// starts at or before the optional position, or -1.
func lastIndexOf(s string, args []any) (any, error) {
	sub, err := ops.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	from, err := ops.OptInt(args, 1, len(rs))
	if err != nil {
		return nil, err
	}
	if from < 0 {
		return -1, nil
	}
	end := min(from+utf8.RuneCountInString(sub), len(rs))
	head := string(rs[:end])
	idx := strings.LastIndex(head, sub)
	if idx < 0 {
		return -1, nil
	}
	return utf8.RuneCountInString(head[:idx]), nil
}

func includes(s string, args []any) (any, error) {
	sub, err := ops.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	return strings.Contains(s, sub), nil
}

func startsWith(s string, args []any) (any, error) {
	prefix, err := ops.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	return strings.HasPrefix(s, prefix), nil
}

func endsWith(s string, args []any) (any, error) {
	suffix, err := ops.Arg[string](args, 0)
	if err != nil {
		return nil, err
	}
	return strings.HasSuffix(s, suffix), nil
}

func length(s string, _ []any) (any, error) {
	return lo.RuneLength(s), nil
}

func reverse(s string, _ []any) (any, error) {
	rs := []rune(s)
	slices.Reverse(rs)
	return string(rs), nil
}

func camelCase(s string, _ []any) (any, error) {
	return lo.CamelCase(s), nil
}

func kebabCase(s string, _ []any) (any, error) {
	return lo.KebabCase(s), nil
}

func snakeCase(s string, _ []any) (any, error) {
	return lo.SnakeCase(s), nil
}

func capitalize(s string, _ []any) (any, error) {
	return lo.Capitalize(s), nil
}

func words(s string, _ []any) (any, error) {
	return lo.ToAnySlice(lo.Words(s)), nil
}
