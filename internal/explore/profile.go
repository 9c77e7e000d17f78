package explore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Dtype is the inferred type of a column.
type Dtype string

// Column types, named after their pandas counterparts.
const (
	DtypeInt    Dtype = "int64"
	DtypeFloat  Dtype = "float64"
	DtypeObject Dtype = "object"
)

// missingValues are read as NaN, as pandas does by default.
var missingValues = map[string]bool{
	"": true, "NA": true, "N/A": true, "n/a": true, "NaN": true, "nan": true,
	"-NaN": true, "-nan": true, "NULL": true, "null": true, "None": true,
	"#N/A": true, "#NA": true, "<NA>": true, "1.#IND": true, "1.#QNAN": true,
}

// Options controls profiling.
type Options struct {
	// Sep is the field separator. Zero means comma.
	Sep rune
	// HeadRows is the number of rows kept for the head section.
	HeadRows int
}

// ColumnProfile accumulates statistics for one column.
type ColumnProfile struct {
	Name    string
	NonNull int64
	Missing int64
	Dtype   Dtype

	numbers []float64
	unique  map[string]struct{}
}

// MissingRate returns the share of missing values.
func (c *ColumnProfile) MissingRate() float64 {
	total := c.NonNull + c.Missing
	if total == 0 {
		return 0
	}
	return float64(c.Missing) / float64(total)
}

// Unique returns the number of distinct values, counting NaN once when
// present as pandas.unique does.
func (c *ColumnProfile) Unique() int {
	n := len(c.unique)
	if c.Missing > 0 {
		n++
	}
	return n
}

// Numeric reports whether the column is int64 or float64.
func (c *ColumnProfile) Numeric() bool {
	return c.Dtype == DtypeInt || c.Dtype == DtypeFloat
}

// Describe returns count, mean, std, min, 25%, 50%, 75% and max of a
// numeric column. Std uses Bessel's correction and is NaN for one value.
func (c *ColumnProfile) Describe() Description {
	values := slices.Clone(c.numbers)
	slices.Sort(values)
	d := Description{Count: int64(len(values))}
	if len(values) == 0 {
		nan := math.NaN()
		d.Mean, d.Std, d.Min, d.Q25, d.Median, d.Q75, d.Max = nan, nan, nan, nan, nan, nan, nan
		return d
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	d.Mean = sum / float64(len(values))
	if len(values) > 1 {
		sq := 0.0
		for _, v := range values {
			sq += (v - d.Mean) * (v - d.Mean)
		}
		d.Std = math.Sqrt(sq / float64(len(values)-1))
	} else {
		d.Std = math.NaN()
	}
	d.Min = values[0]
	d.Max = values[len(values)-1]
	d.Q25 = quantile(values, 0.25)
	d.Median = quantile(values, 0.5)
	d.Q75 = quantile(values, 0.75)
	return d
}

// quantile interpolates linearly between closest ranks of sorted values.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Description is the describe() output of one column.
type Description struct {
	Count                                 int64
	Mean, Std, Min, Q25, Median, Q75, Max float64
}

// Profile is the result of reading one file.
type Profile struct {
	Name    string
	Rows    int64
	Header  []string
	Head    [][]string
	Columns []*ColumnProfile
}

// ObjectColumns returns the non-numeric columns.
func (p *Profile) ObjectColumns() []*ColumnProfile {
	var out []*ColumnProfile
	for _, c := range p.Columns {
		if !c.Numeric() {
			out = append(out, c)
		}
	}
	return out
}

// NumericColumns returns the int64 and float64 columns.
func (p *Profile) NumericColumns() []*ColumnProfile {
	var out []*ColumnProfile
	for _, c := range p.Columns {
		if c.Numeric() {
			out = append(out, c)
		}
	}
	return out
}

// Read profiles delimited text from r. The first record is the header.
func Read(r io.Reader, name string, opts Options) (*Profile, error) {
	reader := csv.NewReader(r)
	if opts.Sep != 0 {
		reader.Comma = opts.Sep
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("explore: %s is empty (no header row)", name)
	}
	if err != nil {
		return nil, fmt.Errorf("explore: parse %s: %w", name, err)
	}

	p := &Profile{Name: name, Header: slices.Clone(header)}
	for _, h := range p.Header {
		p.Columns = append(p.Columns, &ColumnProfile{
			Name:   h,
			Dtype:  DtypeInt,
			unique: make(map[string]struct{}),
		})
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("explore: parse %s: %w", name, err)
		}
		if len(record) != len(p.Columns) {
			return nil, fmt.Errorf("explore: row %d has %d columns, expected %d", p.Rows+2, len(record), len(p.Columns))
		}

		p.Rows++
		if len(p.Head) < opts.HeadRows {
			p.Head = append(p.Head, slices.Clone(record))
		}
		for i, field := range record {
			p.Columns[i].add(field)
		}
	}

	for _, c := range p.Columns {
		// NaN forces a float column.
		if c.NonNull == 0 || (c.Dtype == DtypeInt && c.Missing > 0) {
			c.Dtype = DtypeFloat
		}
	}
	return p, nil
}

func (c *ColumnProfile) add(field string) {
	if missingValues[field] {
		c.Missing++
		return
	}
	c.NonNull++
	c.unique[field] = struct{}{}

	switch c.Dtype {
	case DtypeInt:
		if v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64); err == nil {
			c.numbers = append(c.numbers, float64(v))
			return
		}
		c.Dtype = DtypeFloat
		fallthrough
	case DtypeFloat:
		if v, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
			c.numbers = append(c.numbers, v)
			return
		}
		c.Dtype = DtypeObject
		c.numbers = nil
	}
}

// File opens and profiles path. A zero Sep is derived from the file name.
func File(path string, opts Options) (*Profile, error) {
	if opts.Sep == 0 {
		opts.Sep = SeparatorFor(path)
	}
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return Read(rc, displayName(path), opts)
}
