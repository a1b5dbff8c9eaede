package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateGenerationReady corresponds to
	// templates/emails/generation_ready.html
	TemplateGenerationReady Template = "generation_ready"
)
