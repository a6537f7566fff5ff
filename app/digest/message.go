package digest

import "fmt"

type Message struct {
	Body          string
	Subject       string
	ContentType   string
	Recipient     string
	RecipientName string
}

func subject(name, date string) string {
	return fmt.Sprintf("%s, your RSS digest for %s", name, date)
}
