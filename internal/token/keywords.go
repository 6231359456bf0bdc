package token

var keywords = map[string]Kind{
	"namespace": KwNamespace,
	"struct":    KwStruct,
	"class":     KwClass,
	"enum":      KwEnum,
	"typedef":   KwTypedef,
	"const":     KwConst,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Only the declaration introducers are keywords; type names (int, float,
// size_t, ...) and every other word stay Ident.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
