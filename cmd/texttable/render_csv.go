package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"flag"

	"github.com/chrisfenner/texttable/pkg/texttable"
	log "github.com/sirupsen/logrus"
)

var (
	sep             = flag.String("sep", ".", "separator used to split titles and values into stacked lines")
	dividerInterval = flag.Int("divider_interval", 0, "data rows between interior dividers (0 = none)")
	partial         = flag.Bool("partial", false, "truncate overflowing values with a > marker instead of wrapping")
	leftShift       = flag.Int("left_shift", 0, "leading spaces before every output line")
	splitHeaders    = flag.Bool("split_headers", false, "split header titles on the separator into stacked lines")
)

// renderCSV renders a CSV file as a bordered text table. The first record
// provides the column titles (and keys); every following record is one row.
func renderCSV(contents []byte) ([]string, error) {
	records, err := csv.NewReader(bytes.NewReader(contents)).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("csv file has no records")
	}

	cols := make([]texttable.Descriptor, 0, len(records[0]))
	for _, title := range records[0] {
		d := texttable.Col(title, title)
		d.Attr.Split = *splitHeaders
		cols = append(cols, d)
	}
	t, err := texttable.New(*sep, cols...)
	if err != nil {
		return nil, err
	}
	for _, record := range records[1:] {
		values := make([]any, len(record))
		for i, v := range record {
			values[i] = v
		}
		t.AddRow(values...)
	}
	log.Debugf("parsed %d data rows across %d columns", t.NumRows(), t.NumCols())

	style := texttable.DefaultStyle()
	style.RowDividerInterval = *dividerInterval
	style.ShowPartial = *partial
	style.LeftShift = *leftShift
	return t.Render(texttable.Selection{}, style)
}
