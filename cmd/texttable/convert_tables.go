package main

import (
	"bytes"
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/chrisfenner/texttable/pkg/texttable"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

// convertTables replaces every HTML <table> block in the document with a
// rendered text table.
func convertTables(contents []byte) ([]byte, error) {
	tableRe := regexp.MustCompile("<table.*>\n(<.*\n)*</table>")
	return tableRe.ReplaceAllFunc(contents, rewriteHTMLTableAsText), nil
}

func rewriteHTMLTableAsText(contents []byte) []byte {
	out, err := htmlTableToText(contents)
	if err != nil {
		if *ignoreErrors {
			log.Debugf("leaving table as-is: %v", err)
			return contents
		}
		return []byte(fmt.Sprintf("Could not convert table: %v", err))
	}
	return out
}

func htmlTableToText(contents []byte) ([]byte, error) {
	table, err := getTableNode(contents)
	if err != nil {
		return nil, err
	}

	var headRow []*html.Node
	var bodyRows []*html.Node
	for child := range children(table) {
		if child.Type != html.ElementNode {
			continue
		}
		switch child.Data {
		case "thead":
			for tr := range children(child) {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					if headRow != nil {
						return nil, fmt.Errorf("multi-row headers are not supported")
					}
					headRow = rowCells(tr)
				}
			}
		case "tbody":
			for tr := range children(child) {
				if tr.Type == html.ElementNode && tr.Data == "tr" {
					bodyRows = append(bodyRows, tr)
				}
			}
		}
	}
	if headRow == nil {
		return nil, fmt.Errorf("no <thead> row was found")
	}

	cols := make([]texttable.Descriptor, 0, len(headRow))
	for _, td := range headRow {
		if err := checkNoSpans(td); err != nil {
			return nil, err
		}
		title := strings.TrimSpace(flatten(td))
		cols = append(cols, texttable.Col(title, title))
	}
	t, err := texttable.New(*sep, cols...)
	if err != nil {
		return nil, err
	}
	for _, tr := range bodyRows {
		cells := rowCells(tr)
		values := make([]any, 0, len(cells))
		for _, td := range cells {
			if err := checkNoSpans(td); err != nil {
				return nil, err
			}
			values = append(values, strings.TrimSpace(flatten(td)))
		}
		t.AddRow(values...)
	}
	log.Debugf("converted a %d-column table with %d rows", t.NumCols(), t.NumRows())

	style := texttable.DefaultStyle()
	style.RowDividerInterval = *dividerInterval
	style.ShowPartial = *partial
	style.LeftShift = *leftShift
	lines, err := t.Render(texttable.Selection{}, style)
	if err != nil {
		return nil, err
	}
	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

// rowCells collects the <td>/<th> children of a <tr>.
func rowCells(tr *html.Node) []*html.Node {
	var cells []*html.Node
	for td := range children(tr) {
		if td.Type == html.ElementNode && (td.Data == "td" || td.Data == "th") {
			cells = append(cells, td)
		}
	}
	return cells
}

// checkNoSpans rejects cells that span rows or columns: a text table cell
// occupies exactly one grid position.
func checkNoSpans(td *html.Node) error {
	for _, attr := range td.Attr {
		if attr.Key == "colspan" || attr.Key == "rowspan" {
			if attr.Val != "" && attr.Val != "1" {
				return fmt.Errorf("%s=%q is not supported", attr.Key, attr.Val)
			}
		}
	}
	return nil
}

func getTableNode(contents []byte) (*html.Node, error) {
	parent, err := html.Parse(bytes.NewReader(contents))
	if err != nil {
		return nil, err
	}
	// first child should be an html element
	doc := parent.FirstChild
	if doc == nil {
		return nil, fmt.Errorf("html.Parse didn't return an <html> element")
	}
	// html should have a body
	var body *html.Node
	for child := range children(doc) {
		if child.Type == html.ElementNode && child.Data == "body" {
			body = child
		}
	}
	if body == nil {
		return nil, fmt.Errorf("html.Parse didn't return a <body> element")
	}
	// body should have a table
	for child := range children(body) {
		if child.Type == html.ElementNode && child.Data == "table" {
			return child, nil
		}
	}
	return nil, fmt.Errorf("html.Parse didn't return a <table> element")
}

// flatten renders the text content of a node, keeping light emphasis
// markers and paragraph breaks.
func flatten(node *html.Node) string {
	if node == nil {
		return ""
	}
	var sb strings.Builder
	if node.Type == html.ElementNode {
		// Special cases (open)
		if node.Data == "em" {
			sb.WriteString("*")
		} else if node.Data == "strong" {
			sb.WriteString("**")
		}
		for child := range children(node) {
			sb.WriteString(flatten(child))
		}
		// Special cases (close)
		if node.Data == "em" {
			sb.WriteString("*")
		} else if node.Data == "strong" {
			sb.WriteString("**")
		}

		// add an empty line between paragraphs.
		if node.Data == "p" && node.NextSibling != nil {
			sb.WriteString("\n")
		}
	} else if node.Type == html.TextNode {
		sb.WriteString(node.Data)
	}
	return sb.String()
}

// children is an iterator that iterates the children of the given Node.
func children(node *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		if node == nil {
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if !yield(child) {
				return
			}
		}
	}
}
