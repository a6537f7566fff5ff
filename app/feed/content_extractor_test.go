package feed

import (
	"strings"
	"testing"
)

func TestContentExtractor_Text_Document(t *testing.T) {
	extractor := NewContentExtractor()

	htmlContent := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Test Article</title>
	</head>
	<body>
		<main>
			<article>
				<h1>Main Article Title</h1>
				<p>This is the main content of the article. It contains several paragraphs of meaningful text that should be extracted by the readability algorithm.</p>
				<p>This is another paragraph with more content. The readability algorithm should identify this as the main content area and extract it properly.</p>
				<p>Here is some more substantial content to ensure we meet the character threshold. This paragraph adds more context and information that would be valuable to readers.</p>
			</article>
		</main>
	</body>
	</html>
	`

	result := extractor.Text(htmlContent)

	if !strings.Contains(result, "main content of the article") {
		t.Errorf("Expected extracted text to contain main article text, got: %s", result)
	}
	if strings.Contains(result, "<p>") {
		t.Errorf("Expected no markup in extracted text, got: %s", result)
	}
}

func TestContentExtractor_Text_Fragment(t *testing.T) {
	extractor := NewContentExtractor()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "Just text", "Just text"},
		{"inline markup", "<p>Hello <b>world</b> &amp; friends</p>", "Hello world & friends"},
		{"paragraphs", "<p>One</p><p>Two</p>", "One Two"},
		{"scripts dropped", "<p>Keep</p><script>alert('x')</script><style>p{}</style>", "Keep"},
		{"line breaks", "a<br/>b", "a b"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractor.Text(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
