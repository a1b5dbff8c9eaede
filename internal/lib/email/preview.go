package email

// PreviewData contains sample template data for local preview and testing,
// keyed by template name.
var PreviewData = map[string]map[string]string{
	"generation_ready": {
		"DeckName":  "Biology 101",
		"CardCount": "12",
	},
}
