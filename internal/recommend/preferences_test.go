package recommend

import "testing"

func TestNormalizePreferences_Nil(t *testing.T) {
	n := NormalizePreferences(nil)

	if !n.PlayTime.Unset() {
		t.Error("expected play time to be unset")
	}
	if !n.Complexity.Unset() {
		t.Error("expected complexity to be unset")
	}
	if n.PreferredPlayerCount != nil {
		t.Error("expected preferred player count to be unset")
	}
	if len(n.Categories) != 0 {
		t.Errorf("expected no categories, got %v", n.CategoryList())
	}
}

func TestNormalizePreferences(t *testing.T) {
	tests := []struct {
		name           string
		prefs          PlayerPreferences
		wantTimeFull   bool
		wantTimeUnset  bool
		wantComplexity bool
		wantCount      bool
	}{
		{
			name: "fully specified",
			prefs: PlayerPreferences{
				MinPlayTime: intPtr(30), MaxPlayTime: intPtr(90),
				ComplexityMin: floatPtr(1.5), ComplexityMax: floatPtr(3.0),
				PreferredPlayerCount: intPtr(4),
			},
			wantTimeFull:   true,
			wantComplexity: true,
			wantCount:      true,
		},
		{
			name:          "inverted time range is dropped",
			prefs:         PlayerPreferences{MinPlayTime: intPtr(120), MaxPlayTime: intPtr(30)},
			wantTimeUnset: true,
		},
		{
			name:  "half-open time range is kept",
			prefs: PlayerPreferences{MaxPlayTime: intPtr(60)},
		},
		{
			name:          "non-positive play time is unset",
			prefs:         PlayerPreferences{MinPlayTime: intPtr(0), MaxPlayTime: intPtr(-5)},
			wantTimeUnset: true,
		},
		{
			name:          "inverted complexity range is dropped",
			prefs:         PlayerPreferences{ComplexityMin: floatPtr(4.0), ComplexityMax: floatPtr(2.0)},
			wantTimeUnset: true,
		},
		{
			name:          "out of scale complexity is unset",
			prefs:         PlayerPreferences{ComplexityMin: floatPtr(0.2), ComplexityMax: floatPtr(7)},
			wantTimeUnset: true,
		},
		{
			name:          "zero player count is unset",
			prefs:         PlayerPreferences{PreferredPlayerCount: intPtr(0)},
			wantTimeUnset: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NormalizePreferences(&tt.prefs)

			if got := n.PlayTime.FullySpecified(); got != tt.wantTimeFull {
				t.Errorf("PlayTime.FullySpecified() = %v, want %v", got, tt.wantTimeFull)
			}
			if tt.wantTimeUnset && !n.PlayTime.Unset() {
				t.Errorf("PlayTime = %+v, want unset", n.PlayTime)
			}
			if got := n.Complexity.FullySpecified(); got != tt.wantComplexity {
				t.Errorf("Complexity.FullySpecified() = %v, want %v", got, tt.wantComplexity)
			}
			if got := n.PreferredPlayerCount != nil; got != tt.wantCount {
				t.Errorf("PreferredPlayerCount set = %v, want %v", got, tt.wantCount)
			}
		})
	}
}

func TestNormalizePreferences_DoesNotMutateInput(t *testing.T) {
	minTime, maxTime := 120, 30
	prefs := &PlayerPreferences{
		MinPlayTime:         &minTime,
		MaxPlayTime:         &maxTime,
		PreferredCategories: []string{"Strategy", "", "Strategy", "Family"},
	}

	n := NormalizePreferences(prefs)

	if *prefs.MinPlayTime != 120 || *prefs.MaxPlayTime != 30 {
		t.Error("input play time was modified")
	}
	if len(prefs.PreferredCategories) != 4 {
		t.Error("input categories were modified")
	}

	want := []string{"Family", "Strategy"}
	got := n.CategoryList()
	if len(got) != len(want) {
		t.Fatalf("CategoryList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CategoryList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBoundsContains(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		value  float64
		want   bool
	}{
		{"inside", Bounds{Min: floatPtr(1), Max: floatPtr(3)}, 2, true},
		{"on lower edge", Bounds{Min: floatPtr(1), Max: floatPtr(3)}, 1, true},
		{"on upper edge", Bounds{Min: floatPtr(1), Max: floatPtr(3)}, 3, true},
		{"below", Bounds{Min: floatPtr(1), Max: floatPtr(3)}, 0.5, false},
		{"above", Bounds{Min: floatPtr(1), Max: floatPtr(3)}, 3.5, false},
		{"no upper bound", Bounds{Min: floatPtr(1)}, 100, true},
		{"no lower bound", Bounds{Max: floatPtr(3)}, -100, true},
		{"unbounded", Bounds{}, 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bounds.Contains(tt.value); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
