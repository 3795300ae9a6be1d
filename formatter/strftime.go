package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timeSeg is one compiled piece of a strftime-style date format.
type timeSeg struct {
	lit    string // literal text when layout and spec are unset
	layout string // Go reference layout fragment
	spec   byte   // directives with no layout equivalent: 'j', 'f'
}

// strftimeLayouts maps the supported strftime directives onto Go
// reference layout fragments. Directives that Go's layout cannot
// express (%j day of year, %f microseconds) are computed at render
// time instead.
var strftimeLayouts = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'z': "-0700",
	'Z': "MST",
}

// compileDateFormat parses a strftime-style date format into segments.
func compileDateFormat(datefmt string) ([]timeSeg, error) {
	var (
		segs []timeSeg
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, timeSeg{lit: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(datefmt); i++ {
		c := datefmt[i]
		if c != '%' {
			lit.WriteByte(c)
			continue
		}
		i++
		if i >= len(datefmt) {
			return nil, errors.New("trailing % at end of date format")
		}
		d := datefmt[i]
		if d == '%' {
			lit.WriteByte('%')
			continue
		}
		if layout, ok := strftimeLayouts[d]; ok {
			flush()
			segs = append(segs, timeSeg{layout: layout})
			continue
		}
		if d == 'j' || d == 'f' {
			flush()
			segs = append(segs, timeSeg{spec: d})
			continue
		}
		return nil, fmt.Errorf("unsupported date directive %%%c", d)
	}
	flush()
	return segs, nil
}

// appendStrftime renders a compiled date format for t into buf.
func appendStrftime(buf *bytes.Buffer, t time.Time, segs []timeSeg) {
	for i := range segs {
		s := &segs[i]
		switch {
		case s.lit != "":
			buf.WriteString(s.lit)
		case s.spec == 'j':
			appendZeroPadded(buf, t.YearDay(), 3)
		case s.spec == 'f':
			appendZeroPadded(buf, t.Nanosecond()/1e3, 6)
		default:
			buf.Write(t.AppendFormat(buf.AvailableBuffer(), s.layout))
		}
	}
}

func appendZeroPadded(buf *bytes.Buffer, v, width int) {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		buf.WriteByte('0')
	}
	buf.WriteString(s)
}
