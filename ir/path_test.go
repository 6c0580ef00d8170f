package ir

import "testing"

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", Path{}, "$"},
		{"key", Path{}.Key("a"), "$.a"},
		{"index", Path{}.Index(3), "$[3]"},
		{"mixed", Path{}.Key("spec").Key("containers").Index(0).Key("name"), "$.spec.containers[0].name"},
		{"quoted key", Path{}.Key("a b"), `$["a b"]`},
		{"empty key", Path{}.Key(""), `$[""]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathExtensionDoesNotAlias(t *testing.T) {
	base := Path{}.Key("a")
	p1 := base.Key("b")
	p2 := base.Key("c")
	if p1.String() != "$.a.b" || p2.String() != "$.a.c" {
		t.Errorf("extending a path must not share backing storage: %s / %s", p1, p2)
	}
}
