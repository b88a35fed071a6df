package renderers

import (
	"fmt"
	"html"
	"strings"
)

// Document wraps a rendered body in a complete HTML page suitable for iframe
// embedding. When width and height are positive the body is pinned to that
// size with overflow hidden, matching how ad slots crop their creatives;
// otherwise the page is left responsive.
func Document(title, variantName, body string, width, height int) string {
	bodyStyle := "margin:0;font-family:Arial,sans-serif;"
	if width > 0 && height > 0 {
		bodyStyle = fmt.Sprintf("margin:0;width:%dpx;height:%dpx;overflow:hidden;font-family:Arial,sans-serif;", width, height)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString(`<html lang="en">` + "\n<head>\n")
	b.WriteString(`    <meta charset="UTF-8">` + "\n")
	b.WriteString(`    <meta name="viewport" content="width=device-width, initial-scale=1.0">` + "\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", html.EscapeString(pageTitle(title, variantName)))
	b.WriteString("</head>\n")
	fmt.Fprintf(&b, `<body style="%s">`+"\n", bodyStyle)
	b.WriteString(body)
	b.WriteString("\n")
	if variantName != "" {
		fmt.Fprintf(&b, `<div style="position:absolute;top:5px;left:5px;background:rgba(0,0,0,0.7);color:#fff;padding:2px 6px;font-size:10px;border-radius:3px;">%s</div>`+"\n",
			html.EscapeString(variantName))
	}
	b.WriteString("</body>\n</html>")
	return b.String()
}

func pageTitle(title, variantName string) string {
	if variantName == "" {
		return title
	}
	return title + " - " + variantName
}
