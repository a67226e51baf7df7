package npy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ParseHeader decodes the dict literal of a .npy header.
func ParseHeader(text string) (Header, error) {
	p := &literalParser{src: text}
	v, err := p.value()
	if err != nil {
		return Header{}, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return Header{}, fmt.Errorf("%w: trailing data in header at offset %d", ErrFormat, p.pos)
	}
	dict, ok := v.(map[string]any)
	if !ok {
		return Header{}, fmt.Errorf("%w: header is not a dict: %q", ErrFormat, text)
	}
	for _, key := range []string{"descr", "fortran_order", "shape"} {
		if _, ok := dict[key]; !ok {
			return Header{}, fmt.Errorf("%w: header is missing key %q", ErrFormat, key)
		}
	}

	var h Header
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &h,
		ErrorUnused: true,
	})
	if err != nil {
		return Header{}, err
	}
	if err := dec.Decode(dict); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	for i, dim := range h.Shape {
		if dim < 0 {
			return Header{}, fmt.Errorf("%w: shape %v has negative dimension %d", ErrFormat, h.Shape, i)
		}
	}
	if h.Shape == nil {
		h.Shape = []int{}
	}
	return h, nil
}

// String formats h as the dict literal NumPy writes.
func (h Header) String() string {
	dims := make([]string, len(h.Shape))
	for i, d := range h.Shape {
		dims[i] = strconv.Itoa(d)
	}
	shape := strings.Join(dims, ", ")
	if len(dims) == 1 {
		shape += ","
	}
	order := "False"
	if h.FortranOrder {
		order = "True"
	}
	return fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': (%s), }", h.Descr, order, shape)
}

// literalParser reads the subset of Python literals found in headers:
// dicts, tuples, lists, strings, integers, True, False and None.
type literalParser struct {
	src string
	pos int
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: header offset %d: %s", ErrFormat, p.pos, fmt.Sprintf(format, args...))
}

func (p *literalParser) value() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of header")
	}
	switch c := p.src[p.pos]; {
	case c == '{':
		return p.dict()
	case c == '(':
		return p.sequence(')')
	case c == '[':
		return p.sequence(']')
	case c == '\'' || c == '"':
		return p.str()
	case c == '-' || c == '+' || (c >= '0' && c <= '9'):
		return p.integer()
	default:
		return p.name()
	}
}

func (p *literalParser) dict() (map[string]any, error) {
	p.pos++ // {
	out := map[string]any{}
	for {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '}' {
			p.pos++
			return out, nil
		}
		key, err := p.value()
		if err != nil {
			return nil, err
		}
		k, ok := key.(string)
		if !ok {
			return nil, p.errorf("dict key %v is not a string", key)
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return nil, p.errorf("expected ':' after key %q", k)
		}
		p.pos++
		if out[k], err = p.value(); err != nil {
			return nil, err
		}
		if err := p.separator('}'); err != nil {
			return nil, err
		}
	}
}

func (p *literalParser) sequence(end byte) ([]any, error) {
	p.pos++ // ( or [
	out := []any{}
	for {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == end {
			p.pos++
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if err := p.separator(end); err != nil {
			return nil, err
		}
	}
}

// separator consumes a comma, or leaves a closing bracket for the caller.
func (p *literalParser) separator(end byte) error {
	p.skipSpace()
	switch {
	case p.pos >= len(p.src):
		return p.errorf("unexpected end of header, expected %q", end)
	case p.src[p.pos] == ',':
		p.pos++
		return nil
	case p.src[p.pos] == end:
		return nil
	default:
		return p.errorf("expected ',' or %q, found %q", end, p.src[p.pos])
	}
}

func (p *literalParser) str() (string, error) {
	quote := p.src[p.pos]
	end := strings.IndexByte(p.src[p.pos+1:], quote)
	if end < 0 {
		return "", p.errorf("unterminated string")
	}
	s := p.src[p.pos+1 : p.pos+1+end]
	p.pos += end + 2
	return s, nil
}

func (p *literalParser) integer() (int, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	// Python 2 headers may carry long suffixes such as 3L.
	text := p.src[start:p.pos]
	if p.pos < len(p.src) && p.src[p.pos] == 'L' {
		p.pos++
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, p.errorf("invalid integer %q", text)
	}
	return n, nil
}

func (p *literalParser) name() (any, error) {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			break
		}
		p.pos++
	}
	switch word := p.src[start:p.pos]; word {
	case "True":
		return true, nil
	case "False":
		return false, nil
	case "None":
		return nil, nil
	default:
		p.pos = start
		return nil, p.errorf("unexpected token %q", word)
	}
}
