package selector

import "testing"

func TestExpressionString(t *testing.T) {
	cases := []struct {
		expr Expression
		want string
	}{
		{Eq("a", "b"), "a=b"},
		{Neq("a", "b"), "a!=b"},
		{In("a", "b", "c"), "a in (b,c)"},
		{NotIn("a", "b", "c"), "a notin (b,c)"},
		{Exists("a"), "a"},
		{NotExists("a"), "!a"},
	}
	for _, c := range cases {
		if got := c.expr.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestSelectorString(t *testing.T) {
	s := New(Eq("key", "val"), In("key2", "a", "b"), NotExists("key3"))
	want := "key=val,key2 in (a,b),!key3"
	if got := s.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInDedup(t *testing.T) {
	got := In("k", "a", "a", "b").String()
	want := "k in (a,b)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
