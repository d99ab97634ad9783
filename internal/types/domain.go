package types

// Domain is the value type of one column.
type Domain string

const (
	DomainUnset   Domain = ""
	DomainInteger Domain = "Integer"
	DomainReal    Domain = "Real"
	DomainText    Domain = "Text"
	DomainBool    Domain = "Bool"
)

// domain tokens accepted in table definitions.
// Both the short field type names and the long class names resolve.
var domainTokens = map[string]Domain{
	"Integer":   DomainInteger,
	"Int":       DomainInteger,
	"Long":      DomainInteger,
	"Short":     DomainInteger,
	"Byte":      DomainInteger,
	"Real":      DomainReal,
	"Float":     DomainReal,
	"Double":    DomainReal,
	"Text":      DomainText,
	"String":    DomainText,
	"Character": DomainText,
	"Bool":      DomainBool,
	"Boolean":   DomainBool,
}

// ResolveDomain maps a domain token to its Domain.
// ok is false when the token is unknown, in which case DomainUnset is returned.
func ResolveDomain(token string) (Domain, bool) {
	d, ok := domainTokens[token]
	return d, ok
}

func (d Domain) IsSet() bool { return d != DomainUnset }

func (d Domain) String() string {
	if d == DomainUnset {
		return "Unset"
	}
	return string(d)
}
