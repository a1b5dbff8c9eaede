package legal

var documents = map[string]*Document{
	"terms": {
		Slug:      "terms",
		Title:     "Terms of Service",
		Version:   "1.1",
		UpdatedAt: "2026-07-01",
		Sections: []Section{
			{
				Heading: "Acceptance of Terms",
				Body: "By creating an account or using Deckwise you agree to these " +
					"terms. If you do not agree, do not use the service.",
			},
			{
				Heading: "The Service",
				Body: "Deckwise generates flashcard proposals from text you provide. " +
					"Generated content is produced by an automated model and may be " +
					"inaccurate; you are responsible for reviewing proposals before " +
					"accepting them into your decks.",
			},
			{
				Heading: "Your Content",
				Body: "You retain ownership of text you submit and cards you create. " +
					"You grant us the limited rights needed to operate the service, " +
					"including sending submitted text to our model provider for " +
					"processing.",
			},
			{
				Heading: "Acceptable Use",
				Body: "You may not submit content you lack the rights to use, attempt " +
					"to disrupt the service, or use it to generate unlawful material.",
			},
			{
				Heading: "Termination",
				Body: "We may suspend or terminate accounts that violate these terms. " +
					"You may delete your account at any time.",
			},
		},
	},
	"privacy": {
		Slug:      "privacy",
		Title:     "Privacy Policy",
		Version:   "1.1",
		UpdatedAt: "2026-07-01",
		Sections: []Section{
			{
				Heading: "Data We Collect",
				Body: "We store your account identifier, the decks and cards you " +
					"create, and the source text you submit for generation. " +
					"Authentication is handled by our identity provider; we do not " +
					"store passwords.",
			},
			{
				Heading: "How We Use Data",
				Body: "Submitted text is sent to our model provider solely to produce " +
					"your flashcard proposals. We use transactional email to notify " +
					"you when generations complete.",
			},
			{
				Heading: "Retention",
				Body: "Generations and their proposals are retained until you delete " +
					"them or your account. Operational logs are retained for a " +
					"limited period for debugging and abuse prevention.",
			},
			{
				Heading: "Your Rights",
				Body: "You can export or delete your data at any time from account " +
					"settings, or by contacting support.",
			},
		},
	},
}
