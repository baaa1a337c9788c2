package wasm

import (
	"bytes"
	"testing"
)

// testModule returns the serialized bytes of a minimal valid module: one
// function returning the answer, plus a "name" custom section.
func testModule(t *testing.T) []byte {
	t.Helper()
	m := &Module{Sections: []Section{
		{ID: SectionType, Contents: []byte{0x01, 0x60, 0x00, 0x01, 0x7F}},
		{ID: SectionFunction, Contents: []byte{0x01, 0x00}},
		{ID: SectionCode, Contents: []byte{0x01, 0x04, 0x00, 0x41, 0x2A, 0x0B}},
		{ID: SectionCustom, Name: "name", Contents: []byte{0x00, 0x01, 0x00}},
	}}
	b, err := m.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	return b
}

func TestParseSerializeFixedPoint(t *testing.T) {
	raw := testModule(t)

	m, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(m.Sections))
	}

	first, err := m.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	m2, err := Parse(first)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	second, err := m2.Serialize()
	if err != nil {
		t.Fatalf("re-Serialize: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("serialization is not a fixed point")
	}
}

func TestParseNormalizesNonMinimalSizes(t *testing.T) {
	raw := testModule(t)

	// Re-encode the type section's size (the byte after its ID at offset 8)
	// as a two-byte LEB128.
	if raw[9] != 0x05 {
		t.Fatalf("fixture layout changed: size byte = %#x", raw[9])
	}
	var padded []byte
	padded = append(padded, raw[:9]...)
	padded = append(padded, 0x85, 0x00)
	padded = append(padded, raw[10:]...)

	m, err := Parse(padded)
	if err != nil {
		t.Fatalf("Parse non-minimal: %v", err)
	}
	out, err := m.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Fatalf("expected re-serialization to normalize LEB128 sizes")
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	valid := testModule(t)

	cases := map[string][]byte{
		"empty":          {},
		"short header":   {0x00, 0x61, 0x73},
		"bad magic":      append([]byte{0x01, 0x61, 0x73, 0x6D}, valid[4:]...),
		"bad version":    append([]byte{0x00, 0x61, 0x73, 0x6D, 0x02, 0x00, 0x00, 0x00}, valid[8:]...),
		"unknown id":     append(append([]byte{}, valid...), 0x7F, 0x00),
		"truncated size": append(append([]byte{}, valid...), 0x01),
		"payload overrun": append(append([]byte{}, valid...), 0x00, 0x10, 0x01),
	}
	for name, data := range cases {
		if _, err := Parse(data); err == nil {
			t.Fatalf("%s: expected parse error", name)
		} else if !IsKind(err, KindParse) {
			t.Fatalf("%s: expected KindParse, got %v", name, err)
		}
	}
}

func TestParseRejectsBadCustomName(t *testing.T) {
	// Custom section whose declared name length exceeds the payload.
	data := append([]byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}, 0x00, 0x02, 0x10, 0x61)
	if _, err := Parse(data); err == nil {
		t.Fatalf("expected parse error for truncated name")
	}

	// Custom section whose name is not valid UTF-8.
	data = append([]byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}, 0x00, 0x02, 0x01, 0xFF)
	if _, err := Parse(data); err == nil {
		t.Fatalf("expected parse error for non-UTF-8 name")
	}
}

func TestCustomSectionOperations(t *testing.T) {
	m, err := Parse(testModule(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if _, ok := m.CustomSection("jwt"); ok {
		t.Fatalf("unexpected jwt section in fixture")
	}

	m.SetCustomSection("jwt", []byte("alpha"))
	got, ok := m.CustomSection("jwt")
	if !ok || string(got) != "alpha" {
		t.Fatalf("CustomSection after set: %q ok=%v", got, ok)
	}
	if last := m.Sections[len(m.Sections)-1]; last.Name != "jwt" {
		t.Fatalf("set section should append at the end, last=%q", last.Name)
	}

	// Set replaces rather than accumulating.
	m.SetCustomSection("jwt", []byte("beta"))
	count := 0
	for _, s := range m.Sections {
		if s.ID == SectionCustom && s.Name == "jwt" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one jwt section, got %d", count)
	}
	got, _ = m.CustomSection("jwt")
	if string(got) != "beta" {
		t.Fatalf("expected replaced payload, got %q", got)
	}

	m.ClearCustomSection("jwt")
	if _, ok := m.CustomSection("jwt"); ok {
		t.Fatalf("jwt section survived clear")
	}
	// Clearing an absent section is a no-op.
	m.ClearCustomSection("jwt")

	if _, ok := m.CustomSection("name"); !ok {
		t.Fatalf("unrelated custom section was disturbed")
	}
}

func TestCloneIsDeep(t *testing.T) {
	m, err := Parse(testModule(t))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := m.Clone()
	c.SetCustomSection("jwt", []byte("x"))
	c.Sections[0].Contents[0] = 0xEE

	if _, ok := m.CustomSection("jwt"); ok {
		t.Fatalf("clone mutation leaked into original")
	}
	if m.Sections[0].Contents[0] == 0xEE {
		t.Fatalf("clone shares payload storage with original")
	}
}
