package builder

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Markup helpers for the authored variant templates. The templates are
// part of this module, so element lookup is plain string surgery on known
// ids rather than a full HTML parse; every helper reports whether the
// target was found so callers can treat a missing element as a no-op.

// findTagWithID locates the opening tag carrying id="<id>" and returns the
// tag name plus the [tagStart, tagEnd) indices covering "<tag ...>".
func findTagWithID(markup, id string) (tag string, tagStart, tagEnd int, ok bool) {
	needle := `id="` + id + `"`
	idx := strings.Index(markup, needle)
	if idx < 0 {
		return "", 0, 0, false
	}

	tagStart = strings.LastIndexByte(markup[:idx], '<')
	if tagStart < 0 {
		return "", 0, 0, false
	}

	gt := strings.IndexByte(markup[tagStart:], '>')
	if gt < 0 {
		return "", 0, 0, false
	}
	tagEnd = tagStart + gt + 1

	name := markup[tagStart+1 : tagEnd-1]
	if cut := strings.IndexAny(name, " \t\n/"); cut >= 0 {
		name = name[:cut]
	}
	return strings.ToLower(name), tagStart, tagEnd, true
}

// indexTokenFrom finds the next occurrence of an opening tag token
// ("<div", "<span", ...) at or after pos, requiring a delimiter so "<div"
// does not match "<divider".
func indexTokenFrom(markup, token string, pos int) int {
	for {
		i := strings.Index(markup[pos:], token)
		if i < 0 {
			return -1
		}
		i += pos
		next := i + len(token)
		if next >= len(markup) {
			return -1
		}
		switch markup[next] {
		case ' ', '\t', '\n', '>', '/':
			return i
		}
		pos = next
	}
}

// elementContent returns the [start, end) indices of the inner content of
// the element with the given id, accounting for nested same-name tags.
func elementContent(markup, id string) (start, end int, ok bool) {
	tag, _, tagEnd, found := findTagWithID(markup, id)
	if !found || tag == "img" || tag == "br" {
		return 0, 0, false
	}

	openTok := "<" + tag
	closeTok := "</" + tag + ">"

	depth := 1
	pos := tagEnd
	for {
		nextOpen := indexTokenFrom(markup, openTok, pos)
		nextClose := strings.Index(markup[pos:], closeTok)
		if nextClose < 0 {
			return 0, 0, false
		}
		nextClose += pos

		if nextOpen >= 0 && nextOpen < nextClose {
			depth++
			pos = nextOpen + len(openTok)
			continue
		}

		depth--
		if depth == 0 {
			return tagEnd, nextClose, true
		}
		pos = nextClose + len(closeTok)
	}
}

// setElementHTML replaces the inner content of the element with the given
// id. Reports whether the element was found.
func setElementHTML(markup, id, inner string) (string, bool) {
	start, end, ok := elementContent(markup, id)
	if !ok {
		return markup, false
	}
	return markup[:start] + inner + markup[end:], true
}

var tagStripper = regexp.MustCompile(`<[^>]*>`)

// elementInnerText extracts the visible text of the element with the given
// id: tags are dropped, entities decoded, whitespace collapsed.
func elementInnerText(markup, id string) (string, bool) {
	start, end, ok := elementContent(markup, id)
	if !ok {
		return "", false
	}
	text := tagStripper.ReplaceAllString(markup[start:end], " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " "), true
}

// setImgSrc sets the src attribute of the <img> element with the given id,
// replacing any existing value. Reports whether the element was found.
func setImgSrc(markup, id, src string) (string, bool) {
	tag, tagStart, tagEnd, ok := findTagWithID(markup, id)
	if !ok || tag != "img" {
		return markup, false
	}

	openTag := markup[tagStart:tagEnd]

	if i := strings.Index(openTag, `src="`); i >= 0 {
		valStart := i + len(`src="`)
		valEnd := strings.IndexByte(openTag[valStart:], '"')
		if valEnd < 0 {
			return markup, false
		}
		openTag = openTag[:valStart] + src + openTag[valStart+valEnd:]
		return markup[:tagStart] + openTag + markup[tagEnd:], true
	}

	// No src attribute yet: insert one before the closing bracket.
	insert := len(openTag) - 1
	if strings.HasSuffix(openTag, "/>") {
		insert--
	}
	openTag = openTag[:insert] + ` src="` + src + `"` + openTag[insert:]
	return markup[:tagStart] + openTag + markup[tagEnd:], true
}

// setFitFontSize applies the fitted font size to the inner text carrier
// (the first <span>) of the box with the given id.
func setFitFontSize(markup, id string, px int) (string, bool) {
	start, end, ok := elementContent(markup, id)
	if !ok {
		return markup, false
	}

	inner := markup[start:end]
	spanIdx := indexTokenFrom(inner, "<span", 0)
	if spanIdx < 0 {
		return markup, false
	}

	// The first attribute wins in HTML, so inserting style right after the
	// tag name overrides anything the template author set.
	style := ` style="font-size: ` + strconv.Itoa(px) + `px"`
	inner = inner[:spanIdx+len("<span")] + style + inner[spanIdx+len("<span"):]
	return markup[:start] + inner + markup[end:], true
}
