package constant

// LanguageNames maps the request value the client sends to the language name
// substituted into the completion system prompt. Requests outside this map
// are rejected before any provider call.
var LanguageNames = map[string]string{
	"french":  "French",
	"italian": "Italian",
}
