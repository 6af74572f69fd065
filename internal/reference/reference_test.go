package reference

import (
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
}

func TestGenerateIsDeterministicForSameInputs(t *testing.T) {
	g, err := NewGenerator("test-salt", "SQ", fixedNow)
	if err != nil {
		t.Fatal(err)
	}

	first, err := g.Generate(42)
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.Generate(42)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("same user and instant must yield the same code: %s vs %s", first, second)
	}
}

func TestGenerateFormat(t *testing.T) {
	g, err := NewGenerator("test-salt", "SQ", fixedNow)
	if err != nil {
		t.Fatal(err)
	}

	code, err := g.Generate(7)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(code, "SQ-") {
		t.Errorf("code %q missing prefix", code)
	}
	body := strings.TrimPrefix(code, "SQ-")
	if len(body) < 8 {
		t.Errorf("code body %q shorter than minimum length", body)
	}
	for _, r := range body {
		if !strings.ContainsRune(alphabet, r) {
			t.Errorf("code %q contains character %q outside the alphabet", code, r)
		}
	}
}

func TestDifferentSaltsDiverge(t *testing.T) {
	g1, err := NewGenerator("salt-one", "SQ", fixedNow)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := NewGenerator("salt-two", "SQ", fixedNow)
	if err != nil {
		t.Fatal(err)
	}

	c1, err := g1.Generate(42)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := g2.Generate(42)
	if err != nil {
		t.Fatal(err)
	}
	if c1 == c2 {
		t.Error("different salts produced identical codes")
	}
}
