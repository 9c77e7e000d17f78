package evaluation

import (
	"errors"
	"slices"
	"testing"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label   string
		kind    Kind
		id      string
		wantErr bool
	}{
		{"precisions_SVD_dict", KindPrecision, "SVD", false},
		{"recalls_KNNBasic_dict", KindRecall, "KNNBasic", false},
		{"precisions_rand_dict", KindPrecision, "rand", false},
		{"precision_NMF", KindPrecision, "NMF", false},
		{"recall_CC_dict", KindRecall, "CC", false},
		{"precisions__dict", "", "", true},
		{"f1_SVD_dict", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			kind, id, err := ParseLabel(tt.label)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedInput) {
					t.Errorf("ParseLabel() error = %v, want ErrMalformedInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLabel() error = %v", err)
			}
			if kind != tt.kind || id != tt.id {
				t.Errorf("ParseLabel() = (%q, %q), want (%q, %q)", kind, id, tt.kind, tt.id)
			}
		})
	}
}

func TestParseCutoff(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{" 20 ", 20, false},
		{"7", 7, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"3.5", 0, true},
		{"k", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCutoff(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCutoff(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCutoff(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func cutoffFixture() CutoffResults {
	return CutoffResults{
		"precisions_SVD_dict": {
			"3":  {0.8, 0.9},
			"5":  {0.7, 0.8},
			"20": {0.6, 0.6},
		},
		"precisions_rand_dict": {
			"3": {0.5, 0.7},
			"5": {0.4, 0.6},
		},
		"recalls_SVD_dict": {
			"3": {0.2, 0.4},
		},
	}
}

func TestReshapeCutoffs(t *testing.T) {
	got, err := ReshapeCutoffs(cutoffFixture())
	if err != nil {
		t.Fatalf("ReshapeCutoffs() error = %v", err)
	}

	if ks := got.Cutoffs(KindPrecision); !slices.Equal(ks, []int{3, 5, 20}) {
		t.Errorf("precision cutoffs = %v", ks)
	}
	if ks := got.Cutoffs(KindRecall); !slices.Equal(ks, []int{3}) {
		t.Errorf("recall cutoffs = %v", ks)
	}

	at3, ok := got.At(KindPrecision, 3)
	if !ok {
		t.Fatal("missing precision@3")
	}
	if models := at3.Models(); !slices.Equal(models, []string{"NormalPredictor", "SVD"}) {
		t.Errorf("precision@3 models = %v", models)
	}
	svd, err := at3.Get("SVD", CutoffMetric(KindPrecision, 3))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !approxEqual(svd.Mean, 0.85) || svd.Samples != 2 {
		t.Errorf("SVD precision@3 = %+v", svd)
	}

	at20, _ := got.At(KindPrecision, 20)
	if models := at20.Models(); !slices.Equal(models, []string{"SVD"}) {
		t.Errorf("precision@20 models = %v", models)
	}

	order, err := Rank(at3, CutoffMetric(KindPrecision, 3), true)
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if !slices.Equal(order, []string{"SVD", "NormalPredictor"}) {
		t.Errorf("order = %v", order)
	}
}

func TestReshapeCutoffs_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   CutoffResults
		want error
	}{
		{"empty", CutoffResults{}, ErrEmptyInput},
		{"bad label", CutoffResults{"mrr_SVD": {"3": {1}}}, ErrMalformedInput},
		{"bad cutoff", CutoffResults{"precisions_SVD_dict": {"three": {1}}}, ErrMalformedInput},
		{
			"duplicate model",
			CutoffResults{
				"precisions_SVD_dict": {"3": {1}},
				"precision_SVD":       {"3": {1}},
			},
			ErrMalformedInput,
		},
		{
			"models renamed onto each other",
			CutoffResults{
				"precisions_rand_dict":            {"3": {0.1, 0.2}},
				"precisions_NormalPredictor_dict": {"3": {0.5, 0.6, 0.7}},
			},
			ErrMalformedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReshapeCutoffs(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("ReshapeCutoffs() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCutoffMetric(t *testing.T) {
	if got := CutoffMetric(KindRecall, 10); got != "recall@10" {
		t.Errorf("CutoffMetric() = %q", got)
	}
}
