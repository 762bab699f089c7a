package model

import "testing"

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Fatalf("ParseCategory(%q) = %q, %v", c, got, err)
		}
	}
	if got, err := ParseCategory(" work "); err != nil || got != CategoryWork {
		t.Fatalf("expected WORK, got %q, %v", got, err)
	}
	if _, err := ParseCategory("HOBBY"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestParseCategoryFilter(t *testing.T) {
	cases := []struct {
		in      string
		want    CategoryFilter
		wantErr bool
	}{
		{in: "", want: CategoryAll},
		{in: "all", want: CategoryAll},
		{in: "shopping", want: CategoryFilter(CategoryShopping)},
		{in: "nope", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseCategoryFilter(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseCategoryFilter(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseCategoryFilter(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestCategoryFilterMatches(t *testing.T) {
	if !CategoryAll.Matches(CategoryWork) {
		t.Fatal("expected ALL to match every category")
	}
	work := CategoryFilter(CategoryWork)
	if !work.Matches(CategoryWork) || work.Matches(CategoryStudy) {
		t.Fatal("expected WORK filter to match only WORK")
	}
}

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"":          FilterAll,
		"all":       FilterAll,
		"Today":     FilterToday,
		"important": FilterImportant,
		"completed": FilterCompleted,
	}
	for in, want := range cases {
		got, err := ParseFilter(in)
		if err != nil || got != want {
			t.Errorf("ParseFilter(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFilter("yesterday"); err == nil {
		t.Fatal("expected error for unknown filter")
	}
}
