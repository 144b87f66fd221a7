package rewrite

// Kind says how an identifier occurrence was classified.
type Kind uint8

const (
	KindClass Kind = 1 << iota
	KindID
	KindVariable
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindID:
		return "id"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// KindSet is the set of kinds one target name was observed under. An
// identifier used both as ".foo" and "#foo" is legal and tracked, the
// downstream consumer decides whether to reject it.
type KindSet uint8

func (s KindSet) Has(k Kind) bool {
	return s&KindSet(k) != 0
}

func (s KindSet) With(k Kind) KindSet {
	return s | KindSet(k)
}

func (s KindSet) String() string {
	out := ""
	for _, k := range []Kind{KindClass, KindID, KindVariable} {
		if s.Has(k) {
			if out != "" {
				out += "+"
			}
			out += k.String()
		}
	}
	if out == "" {
		return "none"
	}
	return out
}

// Usage is the discovery-mode summary for a class/id identifier.
type Usage int

const (
	UsageClassOnly Usage = iota
	UsageIDOnly
	UsageBoth
)

func (u Usage) String() string {
	switch u {
	case UsageClassOnly:
		return "only_class"
	case UsageIDOnly:
		return "only_id"
	case UsageBoth:
		return "both"
	default:
		return "unknown"
	}
}
