/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package doctext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/humaidq/medimind/labs"
)

// Elements whose boundaries must separate text, so adjacent table cells
// such as "12" and "13" never merge into one number.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true,
	"tr": true, "ul": true,
}

func extractHTML(data []byte, contentType string) (string, error) {
	utf8Data, err := decodeText(data, contentType)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(utf8Data))
	if err != nil {
		return "", &labs.DecodeError{Source: "html", Offset: -1, Err: fmt.Errorf("failed to parse HTML: %w", err)}
	}

	doc.Find("script, style, noscript, template").Remove()

	var buf bytes.Buffer
	doc.Find("body").Each(func(_ int, s *goquery.Selection) {
		writeText(&buf, s)
	})

	if strings.TrimSpace(buf.String()) == "" {
		return "", &labs.DecodeError{Source: "html", Offset: -1, Err: errNoText}
	}

	return buf.String(), nil
}

func writeText(buf *bytes.Buffer, s *goquery.Selection) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		name := goquery.NodeName(c)
		if name == "#text" {
			buf.WriteString(c.Text())
			return
		}

		writeText(buf, c)

		if blockElements[name] {
			buf.WriteByte('\n')
		}
	})
}
