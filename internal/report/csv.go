package report

import (
	"encoding/csv"
	"io"
)

// CSVRenderer writes a document as RFC 4180 CSV with a header row.
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (CSVRenderer) Render(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(doc.Header); err != nil {
		return err
	}
	for _, row := range doc.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (CSVRenderer) ContentType() string {
	return "text/csv"
}

func (CSVRenderer) FileExtension() string {
	return "csv"
}
