// Package wasm implements section-level parsing, canonicalization, and signed
// capability-claims embedding for WebAssembly binary modules.
//
// A module may carry a custom section named "jwt" whose payload is the UTF-8
// bytes of a compact signed claims token. Custom sections are transparent to
// execution semantics, so consumers that do not understand this convention can
// still run the module. The canonical hash of a module is computed over its
// serialized bytes with the claims section removed; that hash is what the
// embedded token attests to.
package wasm

// ClaimsSectionName is the name of the custom section that carries the
// signed claims token.
const ClaimsSectionName = "jwt"

// SectionID identifies a section kind in the WebAssembly binary format.
type SectionID byte

const (
	SectionCustom    SectionID = 0
	SectionType      SectionID = 1
	SectionImport    SectionID = 2
	SectionFunction  SectionID = 3
	SectionTable     SectionID = 4
	SectionMemory    SectionID = 5
	SectionGlobal    SectionID = 6
	SectionExport    SectionID = 7
	SectionStart     SectionID = 8
	SectionElement   SectionID = 9
	SectionCode      SectionID = 10
	SectionData      SectionID = 11
	SectionDataCount SectionID = 12

	maxSectionID = SectionDataCount
)

// Section is one section of a module, kept opaque at the byte level.
//
// For custom sections (ID 0), Name holds the section name and Contents holds
// the payload bytes that follow the name. For all other kinds Name is empty
// and Contents is the entire section payload.
type Section struct {
	ID       SectionID
	Name     string
	Contents []byte
}

// Module is a parsed WebAssembly module: an ordered sequence of sections.
//
// A Module is constructed by Parse, mutated in memory by the custom-section
// operations, and turned back into bytes by Serialize. It has no identity
// beyond a single parse/serialize cycle.
type Module struct {
	Sections []Section
}

// Clone returns a deep copy of the module. Destructive transforms (such as
// clearing a section before hashing) always operate on a clone so the
// caller's view is never aliased.
func (m *Module) Clone() *Module {
	out := &Module{Sections: make([]Section, len(m.Sections))}
	for i, s := range m.Sections {
		cp := s
		cp.Contents = append([]byte(nil), s.Contents...)
		out.Sections[i] = cp
	}
	return out
}

// CustomSection returns the payload of the first custom section with the
// given name. The second result reports whether such a section exists.
func (m *Module) CustomSection(name string) ([]byte, bool) {
	for _, s := range m.Sections {
		if s.ID == SectionCustom && s.Name == name {
			return s.Contents, true
		}
	}
	return nil, false
}

// SetCustomSection removes any existing custom sections with the given name
// and appends one new custom section with the given payload at the end of the
// section sequence. Clearing first keeps names unique by construction; the
// underlying format permits duplicates, which would make lookup ambiguous.
func (m *Module) SetCustomSection(name string, contents []byte) {
	m.ClearCustomSection(name)
	m.Sections = append(m.Sections, Section{
		ID:       SectionCustom,
		Name:     name,
		Contents: append([]byte(nil), contents...),
	})
}

// ClearCustomSection removes all custom sections with the given name.
// It is a no-op if none exist.
func (m *Module) ClearCustomSection(name string) {
	kept := m.Sections[:0]
	for _, s := range m.Sections {
		if s.ID == SectionCustom && s.Name == name {
			continue
		}
		kept = append(kept, s)
	}
	m.Sections = kept
}
