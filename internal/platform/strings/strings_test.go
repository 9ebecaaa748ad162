package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	// non-empty slice should be returned as-is
	in := []string{"Inception", "Heat"}
	def := []string{"Arrival"}
	got := IfEmpty(in, def)
	if len(got) != 2 || got[0] != "Inception" {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}

	// empty slice should fall back to default
	var empty []string
	got2 := IfEmpty(empty, def)
	if len(got2) != 1 || got2[0] != "Arrival" {
		t.Fatalf("IfEmpty did not return default: %#v", got2)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("chat", "module name"); got != "chat" {
		t.Fatalf("want chat got %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("want panic for blank module name")
		}
	}()
	_ = MustString("   ", "module name")
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/movies/":   "/movies",
		" chat  ":    "/chat",
		"//people//": "/people",
		"/":          "", // should panic
		"":           "", // should panic
	}
	for in, want := range cases {
		if want == "" {
			func() {
				defer func() {
					if recover() == nil {
						t.Fatalf("want panic for %q", in)
					}
				}()
				_ = MustPrefix(in)
			}()
			continue
		}
		if got := MustPrefix(in); got != want {
			t.Fatalf("in %q want %q got %q", in, want, got)
		}
	}
}
