package explore

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const akasTSV = "titleId\tordering\ttitle\tregion\tisOriginalTitle\n" +
	"tt0000001\t1\tCarmencita\tUS\t0\n" +
	"tt0000001\t2\tКарменсіта\tUA\t0\n" +
	"tt0000002\t1\tLe clown et ses chiens\tNA\t1\n" +
	"tt0000002\t2\tThe Clown and His Dogs\tUS\t\n"

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSeparatorFor(t *testing.T) {
	tests := []struct {
		path string
		want rune
	}{
		{"title.akas.tsv.gz", '\t'},
		{"ratings.TSV", '\t'},
		{"movies.csv", ','},
		{"movies.csv.gz", ','},
		{"notes.txt", ','},
	}
	for _, tt := range tests {
		if got := SeparatorFor(tt.path); got != tt.want {
			t.Errorf("SeparatorFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRead(t *testing.T) {
	p, err := Read(strings.NewReader(akasTSV), "akas", Options{Sep: '\t', HeadRows: 2})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if p.Rows != 4 {
		t.Errorf("Rows = %d, want 4", p.Rows)
	}
	if len(p.Head) != 2 || p.Head[1][2] != "Карменсіта" {
		t.Errorf("Head = %v", p.Head)
	}

	want := map[string]Dtype{
		"titleId":         DtypeObject,
		"ordering":        DtypeInt,
		"title":           DtypeObject,
		"region":          DtypeObject,
		"isOriginalTitle": DtypeFloat,
	}
	for _, c := range p.Columns {
		if c.Dtype != want[c.Name] {
			t.Errorf("%s dtype = %s, want %s", c.Name, c.Dtype, want[c.Name])
		}
	}

	region := p.Columns[3]
	if region.Missing != 1 || !approx(region.MissingRate(), 0.25) {
		t.Errorf("region missing = %d (%v)", region.Missing, region.MissingRate())
	}
	if region.Unique() != 3 {
		t.Errorf("region unique = %d, want 3 (US, UA, NaN)", region.Unique())
	}
	if got := p.Columns[0].Unique(); got != 2 {
		t.Errorf("titleId unique = %d, want 2", got)
	}

	if len(p.NumericColumns()) != 2 || len(p.ObjectColumns()) != 3 {
		t.Errorf("numeric/object split = %d/%d", len(p.NumericColumns()), len(p.ObjectColumns()))
	}
}

func TestDescribe(t *testing.T) {
	c := &ColumnProfile{Dtype: DtypeFloat, numbers: []float64{4, 1, 3, 2, 5}}
	d := c.Describe()

	if d.Count != 5 || !approx(d.Mean, 3) || !approx(d.Std, math.Sqrt(2.5)) {
		t.Errorf("count/mean/std = %d/%v/%v", d.Count, d.Mean, d.Std)
	}
	if !approx(d.Min, 1) || !approx(d.Q25, 2) || !approx(d.Median, 3) || !approx(d.Q75, 4) || !approx(d.Max, 5) {
		t.Errorf("Describe() = %+v", d)
	}

	two := (&ColumnProfile{numbers: []float64{0, 10}}).Describe()
	if !approx(two.Q25, 2.5) || !approx(two.Median, 5) {
		t.Errorf("interpolated quartiles = %v/%v", two.Q25, two.Median)
	}

	one := (&ColumnProfile{numbers: []float64{7}}).Describe()
	if !math.IsNaN(one.Std) {
		t.Errorf("single value std = %v, want NaN", one.Std)
	}
}

func TestRead_Errors(t *testing.T) {
	if _, err := Read(strings.NewReader(""), "empty", Options{}); err == nil {
		t.Error("Read() should fail without a header")
	}
	if _, err := Read(strings.NewReader("a,b\n1,2,3\n"), "ragged", Options{}); err == nil {
		t.Error("Read() should fail on ragged rows")
	}
}

func TestFile_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "title.akas.tsv.gz")
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(akasTSV)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := File(path, Options{HeadRows: 5})
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if p.Name != "title.akas.tsv.gz" || p.Rows != 4 || len(p.Columns) != 5 {
		t.Errorf("profile = %s rows=%d cols=%d", p.Name, p.Rows, len(p.Columns))
	}
}

func TestFile_Missing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "nope.csv"), Options{}); err == nil {
		t.Error("File() should fail for a missing file")
	}
}

func TestWrite(t *testing.T) {
	p, err := Read(strings.NewReader(akasTSV), "title.akas.tsv.gz", Options{Sep: '\t', HeadRows: 5})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	Write(&out, p, 80)
	text := out.String()

	for _, want := range []string{
		"overview of data in title.akas.tsv.gz",
		".head()",
		".info()",
		"RangeIndex: 4 entries, 0 to 3",
		"percentage NaNs",
		"number of unique values for object variables",
		"titleId: 2",
		"basic statistics for ordering",
		"dtypes: float64(1), int64(1), object(3)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}
