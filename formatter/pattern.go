package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elisa-suite/logrouter/core"
)

// patternField identifies which record attribute a directive renders.
type patternField uint8

const (
	fieldLiteral patternField = iota
	fieldAsctime
	fieldCreated
	fieldMsecs
	fieldLevelName
	fieldLevelNo
	fieldName
	fieldMessage
	fieldProcess
	fieldFilename
	fieldLineno
	fieldFuncName
)

// patternFields maps directive names to their field and the conversion
// verbs each supports.
var patternFields = map[string]struct {
	field patternField
	verbs string
}{
	"asctime":   {fieldAsctime, "s"},
	"created":   {fieldCreated, "fd"},
	"msecs":     {fieldMsecs, "df"},
	"levelname": {fieldLevelName, "s"},
	"levelno":   {fieldLevelNo, "ds"},
	"name":      {fieldName, "s"},
	"message":   {fieldMessage, "s"},
	"process":   {fieldProcess, "ds"},
	"filename":  {fieldFilename, "s"},
	"lineno":    {fieldLineno, "ds"},
	"funcName":  {fieldFuncName, "s"},
}

type verbFlags struct {
	verb      byte
	width     int
	precision int // -1 when absent
	leftAlign bool
	zeroPad   bool
}

type segment struct {
	lit   string // literal text when field == fieldLiteral
	field patternField
	flags verbFlags
}

// Pattern renders records through a compiled "%(name)s"-style template.
// Compilation happens once; rendering walks the segment list. Structured
// fields append to the rendered line as key=value pairs.
type Pattern struct {
	format      string
	datefmt     string
	segs        []segment
	timeSegs    []timeSeg // nil selects the default asctime rendering
	needsCaller bool
}

// NewPattern compiles a template and an optional strftime-style date
// format. An empty template renders the bare message. Unknown
// directives, bad conversions, and unsupported date directives are
// compile errors.
func NewPattern(format, datefmt string) (*Pattern, error) {
	if format == "" {
		format = "%(message)s"
	}
	segs, needsCaller, err := parsePattern(format)
	if err != nil {
		return nil, fmt.Errorf("format %q: %w", format, err)
	}
	p := &Pattern{
		format:      format,
		datefmt:     datefmt,
		segs:        segs,
		needsCaller: needsCaller,
	}
	if datefmt != "" {
		ts, err := compileDateFormat(datefmt)
		if err != nil {
			return nil, fmt.Errorf("datefmt %q: %w", datefmt, err)
		}
		p.timeSegs = ts
	}
	return p, nil
}

var defaultPattern = func() *Pattern {
	p, err := NewPattern("%(message)s", "")
	if err != nil {
		panic(err)
	}
	return p
}()

// DefaultPattern returns the message-only pattern used when no
// formatter is configured for a sink.
func DefaultPattern() *Pattern { return defaultPattern }

// String returns the template the pattern was compiled from.
func (p *Pattern) String() string { return p.format }

// DateFormat returns the configured date format, empty for the default.
func (p *Pattern) DateFormat() string { return p.datefmt }

// NeedsCaller reports whether the template renders call site
// information (filename, lineno, or funcName).
func (p *Pattern) NeedsCaller() bool { return p.needsCaller }

// Format formats a record as a single line (implements Formatter).
func (p *Pattern) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	p.FormatRecord(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatRecord formats a record into the given buffer (implements
// BufferFormatter).
func (p *Pattern) FormatRecord(rec *core.Record, buf *bytes.Buffer) {
	for i := range p.segs {
		seg := &p.segs[i]
		if seg.field == fieldLiteral {
			buf.WriteString(seg.lit)
			continue
		}
		p.appendDirective(buf, rec, seg)
	}

	for _, field := range rec.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	buf.WriteByte('\n')
}

func (p *Pattern) appendDirective(buf *bytes.Buffer, rec *core.Record, seg *segment) {
	fl := seg.flags
	switch seg.field {
	case fieldAsctime:
		if fl.width == 0 {
			p.appendTime(buf, rec.Time)
			return
		}
		tmp := getBuffer()
		p.appendTime(tmp, rec.Time)
		appendPadded(buf, tmp.String(), fl)
		putBuffer(tmp)
	case fieldCreated:
		appendFloat(buf, float64(rec.Time.UnixNano())/1e9, fl)
	case fieldMsecs:
		appendFloat(buf, float64(rec.Time.Nanosecond())/1e6, fl)
	case fieldLevelName:
		appendString(buf, rec.Level.String(), fl)
	case fieldLevelNo:
		appendInt(buf, int64(rec.Level), fl)
	case fieldName:
		appendString(buf, rec.Channel, fl)
	case fieldMessage:
		appendString(buf, rec.Message, fl)
	case fieldProcess:
		appendInt(buf, int64(rec.Process), fl)
	case fieldFilename:
		appendString(buf, rec.Caller.ShortFile, fl)
	case fieldLineno:
		appendInt(buf, int64(rec.Caller.Line), fl)
	case fieldFuncName:
		appendString(buf, shortFuncName(rec.Caller.Function), fl)
	}
}

// appendTime renders the record timestamp: either the compiled datefmt
// or the default "2006-01-02 15:04:05,mmm" form with milliseconds.
func (p *Pattern) appendTime(buf *bytes.Buffer, t time.Time) {
	if p.timeSegs != nil {
		appendStrftime(buf, t, p.timeSegs)
		return
	}
	buf.Write(t.AppendFormat(buf.AvailableBuffer(), "2006-01-02 15:04:05"))
	ms := t.Nanosecond() / 1e6
	buf.WriteByte(',')
	buf.WriteByte('0' + byte(ms/100))
	buf.WriteByte('0' + byte((ms/10)%10))
	buf.WriteByte('0' + byte(ms%10))
}

func appendString(buf *bytes.Buffer, s string, fl verbFlags) {
	if fl.precision >= 0 && fl.precision < len(s) {
		s = s[:fl.precision]
	}
	appendPadded(buf, s, fl)
}

func appendInt(buf *bytes.Buffer, v int64, fl verbFlags) {
	if fl.width == 0 {
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), v, 10))
		return
	}
	appendPadded(buf, strconv.FormatInt(v, 10), fl)
}

func appendFloat(buf *bytes.Buffer, v float64, fl verbFlags) {
	if fl.verb == 'd' {
		appendInt(buf, int64(v), fl)
		return
	}
	prec := fl.precision
	if prec < 0 {
		prec = 6
	}
	if fl.width == 0 {
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), v, 'f', prec, 64))
		return
	}
	appendPadded(buf, strconv.FormatFloat(v, 'f', prec, 64), fl)
}

func appendPadded(buf *bytes.Buffer, s string, fl verbFlags) {
	if fl.width <= len(s) {
		buf.WriteString(s)
		return
	}
	pad := fl.width - len(s)
	if fl.leftAlign {
		buf.WriteString(s)
		writeRepeat(buf, ' ', pad)
		return
	}
	fill := byte(' ')
	if fl.zeroPad {
		fill = '0'
	}
	writeRepeat(buf, fill, pad)
	buf.WriteString(s)
}

func writeRepeat(buf *bytes.Buffer, c byte, n int) {
	for i := 0; i < n; i++ {
		buf.WriteByte(c)
	}
}

func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// parsePattern splits a template into literal and directive segments.
func parsePattern(format string) ([]segment, bool, error) {
	var (
		segs        []segment
		lit         strings.Builder
		needsCaller bool
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{lit: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			lit.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(format) {
			return nil, false, errors.New("trailing % at end of format")
		}
		if format[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}
		if format[i+1] != '(' {
			return nil, false, fmt.Errorf("expected %%( at offset %d", i)
		}
		end := strings.IndexByte(format[i+2:], ')')
		if end < 0 {
			return nil, false, fmt.Errorf("unterminated %%( at offset %d", i)
		}
		key := format[i+2 : i+2+end]
		j := i + 2 + end + 1

		fl := verbFlags{precision: -1}
		for j < len(format) && (format[j] == '-' || format[j] == '0') {
			if format[j] == '-' {
				fl.leftAlign = true
			} else {
				fl.zeroPad = true
			}
			j++
		}
		widthStart := j
		for j < len(format) && format[j] >= '0' && format[j] <= '9' {
			j++
		}
		if j > widthStart {
			fl.width, _ = strconv.Atoi(format[widthStart:j])
		}
		if j < len(format) && format[j] == '.' {
			j++
			precStart := j
			for j < len(format) && format[j] >= '0' && format[j] <= '9' {
				j++
			}
			fl.precision, _ = strconv.Atoi(format[precStart:j])
		}
		if j >= len(format) {
			return nil, false, fmt.Errorf("directive %%(%s) missing conversion", key)
		}
		fl.verb = format[j]
		j++

		spec, ok := patternFields[key]
		if !ok {
			return nil, false, fmt.Errorf("unknown directive %%(%s)%c", key, fl.verb)
		}
		if !strings.ContainsRune(spec.verbs, rune(fl.verb)) {
			return nil, false, fmt.Errorf("conversion %%%c not valid for %%(%s)", fl.verb, key)
		}
		if spec.field == fieldFilename || spec.field == fieldLineno || spec.field == fieldFuncName {
			needsCaller = true
		}

		flush()
		segs = append(segs, segment{field: spec.field, flags: fl})
		i = j
	}
	flush()
	return segs, needsCaller, nil
}
