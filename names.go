package currency

var names = map[string]string{
	"PHP": "Philippine Peso",
	"USD": "US Dollar",
	"HKD": "Hong Kong Dollar",
}

// Name returns the display name of code, or code itself when unknown.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}

	return code
}
