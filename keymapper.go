package envguard

// KeyMapper allows customizing how declared field names are mapped to raw
// configuration keys.
type KeyMapper interface {
	Field(string) string
}

type identityMapper struct{}

func (identityMapper) Field(name string) string { return name }

type prefixMapper struct {
	prefix string
}

func (m prefixMapper) Field(name string) string {
	if m.prefix == "" {
		return name
	}
	return m.prefix + "_" + name
}

var defaultMapper identityMapper
