package email

import "fmt"

// SendGenerationReadyEmail notifies a user that their flashcard proposals
// are ready for review.
func (c *Client) SendGenerationReadyEmail(to, deckName string, cardCount int) error {
	data := map[string]string{
		"DeckName":  deckName,
		"CardCount": fmt.Sprintf("%d", cardCount),
	}

	return c.SendEmail(
		to,
		"Your flashcards are ready",
		TemplateGenerationReady,
		data,
	)
}
