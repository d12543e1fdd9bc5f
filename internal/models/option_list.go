package models

// OptionList is the ordered set of candidates for a mode.
// Order decides sector order on the wheel and duplicates are allowed.
type OptionList []string

// Clone returns a copy that shares no backing array with l
func (l OptionList) Clone() OptionList {
	if l == nil {
		return OptionList{}
	}
	out := make(OptionList, len(l))
	copy(out, l)
	return out
}

// Equal reports whether both lists hold the same entries in the same order
func (l OptionList) Equal(other OptionList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// SharedDocument maps every mode to its option list. Exactly one exists per deployment.
type SharedDocument map[Mode]OptionList

// Clone deep-copies the document
func (d SharedDocument) Clone() SharedDocument {
	out := make(SharedDocument, len(d))
	for mode, list := range d {
		out[mode] = list.Clone()
	}
	return out
}

// Options returns the list for a mode, never nil
func (d SharedDocument) Options(mode Mode) OptionList {
	if list, ok := d[mode]; ok && list != nil {
		return list
	}
	return OptionList{}
}

// DefaultDocument returns the seed written when the remote document does not exist yet
func DefaultDocument() SharedDocument {
	return SharedDocument{
		ModeLunch: {"McDonald's", "KFC", "Convenience Store", "Salad Bowl", "Beef Noodles", "Dumplings", "Bento"},
		ModeDrink: {"50 Lan", "Kebuke", "Starbucks", "Louisa", "Milksha", "Water"},
	}
}
