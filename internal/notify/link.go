package notify

import "fmt"

// LinkFormat is the clipboard/link presentation preference from settings.
type LinkFormat string

const (
	LinkURL      LinkFormat = "url"
	LinkHTML     LinkFormat = "html"
	LinkMarkdown LinkFormat = "markdown"
)

// ParseLinkFormat maps a settings string to a LinkFormat, defaulting to the
// raw URL for anything unrecognized.
func ParseLinkFormat(s string) LinkFormat {
	switch LinkFormat(s) {
	case LinkHTML, LinkMarkdown:
		return LinkFormat(s)
	default:
		return LinkURL
	}
}

// FormatLink renders one uploaded file's link in the requested format.
func FormatLink(f LinkFormat, name, url string) string {
	switch f {
	case LinkHTML:
		return fmt.Sprintf(`<img src="%s" alt="%s">`, url, name)
	case LinkMarkdown:
		return fmt.Sprintf("![%s](%s)", name, url)
	default:
		return url
	}
}
