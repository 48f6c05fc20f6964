package rendering

import "strings"

// EscapeLaTeX escapes special LaTeX characters in text.
// Special characters: \ { } $ & % # ^ _ ~ and line breaks. Surrounding
// whitespace is dropped, and a run of line breaks becomes one \\ written only
// after visible text, since a \\ with no line before it stops pdflatex.
func EscapeLaTeX(text string) string {
	return escapeLaTeX(text, `\\ `)
}

// EscapeLaTeXInline is EscapeLaTeX for arguments such as section titles,
// where a line break is written as a space.
func EscapeLaTeXInline(text string) string {
	return escapeLaTeX(text, " ")
}

func escapeLaTeX(text, lineBreak string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	pendingBreak, visible := false, false
	for _, r := range text {
		if r == '\r' || r == '\n' {
			pendingBreak = visible
			continue
		}
		if pendingBreak {
			result.WriteString(lineBreak)
			pendingBreak = false
		}
		if r != ' ' && r != '\t' {
			visible = true
		}

		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// EscapeURL prepares a URL for \href. Only characters that break the
// argument are escaped; the link target itself is not otherwise altered.
func EscapeURL(url string) string {
	replacer := strings.NewReplacer(`%`, `\%`, `#`, `\#`, `{`, `\%7B`, `}`, `\%7D`)
	return replacer.Replace(strings.TrimSpace(url))
}

// ensureScheme adds https:// to bare host links such as "github.com/ada"
func ensureScheme(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || strings.Contains(url, "://") || strings.HasPrefix(url, "mailto:") {
		return url
	}
	return "https://" + url
}
