package season

import "testing"

func TestParsePointsRule(t *testing.T) {
	t.Parallel()

	if r, ok := ParsePointsRule("2-1-0"); !ok || r != (PointsRule{Win: 2, Draw: 1, Loss: 0}) {
		t.Fatalf("unexpected rule %+v ok=%v", r, ok)
	}
	if r, ok := ParsePointsRule(" 3 / 1 / 0 "); !ok || !r.IsDefault() {
		t.Fatalf("expected default rule, got %+v ok=%v", r, ok)
	}
	for _, raw := range []string{"", "3-1", "a-b-c", "3-1-0-0"} {
		if _, ok := ParsePointsRule(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
	if DefaultPointsRule.String() != "3-1-0" {
		t.Fatalf("unexpected default string %s", DefaultPointsRule.String())
	}
}
