package store

import "testing"

func mustFilter(t *testing.T, spec map[string]any) Filter {
	t.Helper()
	f, err := NewFilter(spec)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}
	return f
}

func TestFilterExactMatch(t *testing.T) {
	f := mustFilter(t, map[string]any{"category": "animals"})

	if !f.Matches(map[string]any{"category": "animals", "sentiment": "positive"}) {
		t.Error("expected exact match to pass")
	}
	if f.Matches(map[string]any{"category": "food"}) {
		t.Error("expected mismatched value to fail")
	}
	if f.Matches(map[string]any{"sentiment": "positive"}) {
		t.Error("expected missing key to fail")
	}
	if f.Matches(nil) {
		t.Error("expected empty metadata to fail")
	}
}

func TestFilterNumericEquality(t *testing.T) {
	// JSON decoding turns numbers into float64; stored metadata may hold int.
	f := mustFilter(t, map[string]any{"length": float64(30)})

	if !f.Matches(map[string]any{"length": 30}) {
		t.Error("expected int 30 to equal float64 30")
	}
	if f.Matches(map[string]any{"length": 31}) {
		t.Error("expected 31 to fail equality with 30")
	}
}

func TestFilterListMembership(t *testing.T) {
	f := mustFilter(t, map[string]any{"category": []any{"animals", "food"}})

	if !f.Matches(map[string]any{"category": "food"}) {
		t.Error("expected listed value to pass")
	}
	if f.Matches(map[string]any{"category": "sports"}) {
		t.Error("expected unlisted value to fail")
	}
}

func TestFilterRangeOperators(t *testing.T) {
	tests := []struct {
		name  string
		spec  map[string]any
		value any
		want  bool
	}{
		{"gte pass", map[string]any{"length": map[string]any{"$gte": 30}}, 30, true},
		{"gte fail", map[string]any{"length": map[string]any{"$gte": 30}}, 29, false},
		{"lte pass", map[string]any{"length": map[string]any{"$lte": 30}}, 30, true},
		{"lte fail", map[string]any{"length": map[string]any{"$lte": 30}}, 31, false},
		{"gt pass", map[string]any{"length": map[string]any{"$gt": 30}}, 31, true},
		{"gt fail on equal", map[string]any{"length": map[string]any{"$gt": 30}}, 30, false},
		{"lt pass", map[string]any{"length": map[string]any{"$lt": 30}}, 29, true},
		{"lt fail on equal", map[string]any{"length": map[string]any{"$lt": 30}}, 30, false},
		{"combined pass", map[string]any{"length": map[string]any{"$gte": 10, "$lte": 50}}, 30, true},
		{"combined fail", map[string]any{"length": map[string]any{"$gte": 10, "$lte": 50}}, 51, false},
		{"in pass", map[string]any{"length": map[string]any{"$in": []any{10, 20, 30}}}, 30, true},
		{"nin fail", map[string]any{"length": map[string]any{"$nin": []any{10, 20, 30}}}, 30, false},
		{"string gte", map[string]any{"author": map[string]any{"$gte": "m"}}, "paul", true},
		{"number vs string incomparable", map[string]any{"length": map[string]any{"$gte": 30}}, "thirty", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustFilter(t, tt.spec)
			got := f.Matches(map[string]any{"length": tt.value, "author": tt.value})
			if got != tt.want {
				t.Errorf("expected match=%v for value %v", tt.want, tt.value)
			}
		})
	}
}

func TestFilterUnknownOperator(t *testing.T) {
	_, err := NewFilter(map[string]any{"length": map[string]any{"$between": []any{1, 2}}})
	if err == nil {
		t.Fatal("expected error for unknown operator")
	}
}

func TestFilterInRequiresList(t *testing.T) {
	_, err := NewFilter(map[string]any{"category": map[string]any{"$in": "animals"}})
	if err == nil {
		t.Fatal("expected error for scalar $in operand")
	}
}

func TestFilterTypedSlices(t *testing.T) {
	f := mustFilter(t, map[string]any{"category": []string{"animals", "food"}})
	if !f.Matches(map[string]any{"category": "animals"}) {
		t.Error("expected []string filter list to work")
	}
}
