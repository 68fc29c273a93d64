package params

import (
	"fmt"
	"strconv"
	"strings"
)

// coerce converts one raw text value according to p and checks its
// constraints. Failures are appended to is with the given location.
func (p Param) coerce(raw string, loc []any, is *issues) (any, bool) {
	switch p.Type {
	case TypeString:
		return raw, p.checkText(raw, loc, is)
	case TypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 0)
		if err != nil {
			is.add(loc, "int_parsing", "Input should be a valid integer, unable to parse string as an integer", raw)
			return nil, false
		}
		return int(n), p.checkBounds(float64(n), raw, loc, is)
	case TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			is.add(loc, "float_parsing", "Input should be a valid number, unable to parse string as a number", raw)
			return nil, false
		}
		return f, p.checkBounds(f, raw, loc, is)
	case TypeBool:
		b, ok := parseBool(raw)
		if !ok {
			is.add(loc, "bool_parsing", "Input should be a valid boolean, unable to interpret input", raw)
			return nil, false
		}
		return b, true
	case TypeEnum:
		for _, m := range p.Members {
			if m != raw {
				continue
			}
			if p.Parse == nil {
				return raw, true
			}
			v, err := p.Parse(raw)
			if err != nil {
				break
			}
			return v, true
		}
		is.add(loc, "enum", "Input should be "+quoteMembers(p.Members), raw)
		return nil, false
	default:
		is.add(loc, "type_unknown", fmt.Sprintf("unsupported parameter type %s", p.Type), raw)
		return nil, false
	}
}

func (p Param) checkText(s string, loc []any, is *issues) bool {
	ok := true
	if p.MinLength > 0 {
		if fe, failed := checkVar(s, "min="+strconv.Itoa(p.MinLength)); failed {
			typ, msg := describe(fe)
			is.add(loc, typ, msg, s)
			ok = false
		}
	}
	if p.MaxLength > 0 {
		if fe, failed := checkVar(s, "max="+strconv.Itoa(p.MaxLength)); failed {
			typ, msg := describe(fe)
			is.add(loc, typ, msg, s)
			ok = false
		}
	}
	if p.re != nil && !p.re.MatchString(s) {
		is.add(loc, "string_pattern_mismatch", fmt.Sprintf("String should match pattern '%s'", p.Pattern), s)
		ok = false
	}
	return ok
}

func (p Param) checkBounds(n float64, raw string, loc []any, is *issues) bool {
	ok := true
	if p.Ge != nil {
		if fe, failed := checkVar(n, "gte="+formatFloat(*p.Ge)); failed {
			typ, msg := describe(fe)
			is.add(loc, typ, msg, raw)
			ok = false
		}
	}
	if p.Le != nil {
		if fe, failed := checkVar(n, "lte="+formatFloat(*p.Le)); failed {
			typ, msg := describe(fe)
			is.add(loc, typ, msg, raw)
			ok = false
		}
	}
	return ok
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, true
	case "0", "false", "f", "no", "n", "off":
		return false, true
	}
	return false, false
}

// quoteMembers renders 'a', 'b' or 'c'.
func quoteMembers(ms []string) string {
	q := make([]string, len(ms))
	for i, m := range ms {
		q[i] = "'" + m + "'"
	}
	if len(q) <= 1 {
		return strings.Join(q, "")
	}
	return strings.Join(q[:len(q)-1], ", ") + " or " + q[len(q)-1]
}
