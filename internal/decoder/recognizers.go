package decoder

import (
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jsonease/jsonease/internal/models"
)

// Regex patterns for extended string values. A probe claims a string
// only on a full match; anything else stays a plain string.
var (
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

	datePattern = `(?P<year>[12]\d{3})-(?P<month>0[1-9]|1[0-2])-(?P<day>0[1-9]|[12]\d|3[01])`
	timePattern = `(?P<hour>2[0-3]|[01][0-9]):(?P<minute>[0-5][0-9])` +
		`(?::(?P<second>[0-5][0-9])(?:\.(?P<microsecond>[0-9]{1,6})[0-9]*)?)?`

	dateRegex     = regexp.MustCompile(`^` + datePattern + `$`)
	timeRegex     = regexp.MustCompile(`^` + timePattern + `$`)
	datetimeRegex = regexp.MustCompile(`^` + datePattern + `[T ]` + timePattern +
		`(?P<offset>Z|z|[+-][0-9]{2}(?::?[0-9]{2})?)?$`)
)

func uuidProbe(s string) (models.Value, bool) {
	if !uuidRegex.MatchString(s) {
		return nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, false
	}
	return id, true
}

func datetimeProbe(s string) (models.Value, bool) {
	m := datetimeRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	g := groups(datetimeRegex, m)
	loc := time.UTC
	if off := g["offset"]; off != "" && off != "Z" && off != "z" {
		hours := atoi(off[1:3])
		mins := 0
		if len(off) > 3 {
			mins = atoi(off[len(off)-2:])
		}
		secs := hours*3600 + mins*60
		if off[0] == '-' {
			secs = -secs
		}
		loc = time.FixedZone("", secs)
	}
	return time.Date(
		atoi(g["year"]), time.Month(atoi(g["month"])), atoi(g["day"]),
		atoi(g["hour"]), atoi(g["minute"]), atoi(g["second"]),
		micro(g["microsecond"])*1000, loc,
	), true
}

func dateProbe(s string) (models.Value, bool) {
	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	g := groups(dateRegex, m)
	return models.Date{
		Year:  atoi(g["year"]),
		Month: time.Month(atoi(g["month"])),
		Day:   atoi(g["day"]),
	}, true
}

func timeProbe(s string) (models.Value, bool) {
	m := timeRegex.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	g := groups(timeRegex, m)
	return models.TimeOfDay{
		Hour:        atoi(g["hour"]),
		Minute:      atoi(g["minute"]),
		Second:      atoi(g["second"]),
		Microsecond: micro(g["microsecond"]),
	}, true
}

// complexProbe claims any object whose keys are exactly {real, imag}
// with numeric or null components. This is deliberately ambiguous
// with genuine domain objects using those key names; the behavior is
// kept for compatibility.
func complexProbe(o *models.Object) (models.Value, bool) {
	if !o.HasExactly("real", "imag") {
		return nil, false
	}
	re, ok := toFloat(get(o, "real"))
	if !ok {
		return nil, false
	}
	im, ok := toFloat(get(o, "imag"))
	if !ok {
		return nil, false
	}
	return complex(re, im), true
}

// rangeProbe claims any object whose keys are exactly {start, stop,
// step}. Null components become open bounds.
func rangeProbe(o *models.Object) (models.Value, bool) {
	if !o.HasExactly("start", "stop", "step") {
		return nil, false
	}
	return &models.Range{
		Start: get(o, "start"),
		Stop:  get(o, "stop"),
		Step:  get(o, "step"),
	}, true
}

func get(o *models.Object, key string) models.Value {
	v, _ := o.Get(key)
	return v
}

func toFloat(v models.Value) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func groups(re *regexp.Regexp, match []string) map[string]string {
	g := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if name != "" && i < len(match) {
			g[name] = match[i]
		}
	}
	return g
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// micro right-pads a fractional-second capture to microseconds.
func micro(s string) int {
	if s == "" {
		return 0
	}
	for len(s) < 6 {
		s += "0"
	}
	return atoi(s)
}
