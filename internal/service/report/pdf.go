package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// writePDF renders the table as a per-record card document: each record is a
// block of label/value pairs, two per line. The title header is re-rendered
// on every page and the footer carries a running page counter; maroto breaks
// pages automatically when a block no longer fits.
func writePDF(tbl *table) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Halaman {current} dari {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterHeader(
		row.New(12).Add(
			text.NewCol(8, tbl.title, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.NewCol(4, time.Now().UTC().Format(dateLayout), props.Text{
				Size:  9,
				Align: align.Right,
				Top:   3,
			}),
		),
	); err != nil {
		return nil, err
	}

	for _, record := range tbl.rows {
		rows := make([]core.Row, 0, len(record)/2+1)

		// Pair up label/value cells, two pairs per printed line.
		for i := 0; i < len(record); i += 2 {
			cols := []core.Col{
				col.New(6).Add(text.New(fmt.Sprintf("%s: %s", tbl.headers[i], record[i]), props.Text{Size: 8})),
			}
			if i+1 < len(record) {
				cols = append(cols, col.New(6).Add(text.New(fmt.Sprintf("%s: %s", tbl.headers[i+1], record[i+1]), props.Text{Size: 8})))
			}
			rows = append(rows, row.New(5).Add(cols...))
		}
		rows = append(rows, row.New(4).Add(line.NewCol(12)))

		m.AddRows(rows...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
