package publication

import (
	"html"
	"strings"

	"github.com/labsite/labsite/helpers"
)

// TitleLinkClass is the CSS class of hyperlinked citation titles.
const TitleLinkClass = "pub-title-link"

// Authors returns the IEEE author list of the entry.
func (e *Entry) Authors() string {
	return helpers.FormatAuthorField(e.RawAuthors)
}

// FormatCitation renders the entry as an IEEE reference HTML fragment, without
// the leading [n] number:
//
//	F. Song and Y. Zhang, "A Study", <em>J. Test</em>, vol. 5, pp. 10–20, 2020.
//
// Field values are HTML-escaped.
func FormatCitation(e *Entry) string {
	var sb strings.Builder

	if authors := e.Authors(); authors != "" {
		sb.WriteString(html.EscapeString(authors))
		sb.WriteString(", ")
	}
	sb.WriteString(titleHTML(e))
	sb.WriteString(", ")

	year := e.YearString()
	pages := strings.ReplaceAll(e.Field("pages"), "--", "–")

	switch {
	case e.IsJournal():
		var parts []string
		if journal := e.Field("journal"); journal != "" {
			parts = append(parts, helpers.Emphasize(journal))
		}
		if vol := volumeNumber(e.Field("volume"), e.Field("number")); vol != "" {
			parts = append(parts, html.EscapeString(vol))
		}
		if pages != "" {
			parts = append(parts, "pp. "+html.EscapeString(pages))
		}
		parts = append(parts, html.EscapeString(year))
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(".")

	case e.IsConference():
		var parts []string
		if booktitle := e.Field("booktitle"); booktitle != "" {
			parts = append(parts, "in "+helpers.Emphasize(booktitle))
		}
		if pages != "" {
			parts = append(parts, "pp. "+html.EscapeString(pages))
		}
		if org := firstNonEmpty(e.Field("organization"), e.Field("publisher")); org != "" {
			parts = append(parts, html.EscapeString(org))
		}
		parts = append(parts, html.EscapeString(year))
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString(".")

	default:
		where := firstNonEmpty(e.Field("booktitle"), e.Field("journal"), e.Field("publisher"), e.Field("organization"))
		if where != "" {
			sb.WriteString(helpers.Emphasize(where))
			sb.WriteString(", ")
		}
		sb.WriteString(html.EscapeString(year))
		sb.WriteString(".")
	}

	return sb.String()
}

// FormatCitationText renders the citation without markup.
func FormatCitationText(e *Entry) string {
	return helpers.StripHTML(FormatCitation(e))
}

func titleHTML(e *Entry) string {
	quoted := `"` + html.EscapeString(e.Title()) + `"`
	if url := e.Field("url"); url != "" {
		return helpers.ExternalLink(url, TitleLinkClass, quoted)
	}
	return quoted
}

// volumeNumber formats "vol. 5, no. 2", either half optional.
func volumeNumber(volume, number string) string {
	var parts []string
	if volume != "" {
		parts = append(parts, "vol. "+volume)
	}
	if number != "" {
		parts = append(parts, "no. "+number)
	}
	return strings.Join(parts, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
