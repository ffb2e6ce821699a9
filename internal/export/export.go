// Package export lays out the partner x company match matrix as a table and
// writes it as text, CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dealcraft/dealcraft/internal/model"
	"github.com/dealcraft/dealcraft/internal/scorer"
)

// Formats accepted by Write.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatXLSX  = "xlsx"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "Matches"

// Grid is the match matrix with a fixed row and column order: companies
// down, partners across, both in roster order.
type Grid struct {
	Partners  []model.Partner
	Companies []model.Company
	Matrix    model.Matrix
}

// NewGrid scores every pair and returns the laid-out grid.
func NewGrid(partners []model.Partner, companies []model.Company) *Grid {
	return &Grid{
		Partners:  partners,
		Companies: companies,
		Matrix:    scorer.BuildMatrix(partners, companies),
	}
}

// Header returns the column titles: "company" followed by partner IDs.
func (g *Grid) Header() []string {
	h := make([]string, 0, len(g.Partners)+1)
	h = append(h, "company")
	for _, p := range g.Partners {
		h = append(h, p.ID)
	}
	return h
}

// Cell returns the overall score for a company and partner.
func (g *Grid) Cell(company, partnerID string) float64 {
	return g.Matrix[company][partnerID]
}

// Rows returns the header followed by one row per company, with scores
// formatted to the given number of decimals.
func (g *Grid) Rows(decimals int) [][]string {
	rows := make([][]string, 0, len(g.Companies)+1)
	rows = append(rows, g.Header())
	for _, c := range g.Companies {
		row := make([]string, 0, len(g.Partners)+1)
		row = append(row, c.Name)
		for _, p := range g.Partners {
			row = append(row, strconv.FormatFloat(g.Cell(c.Name, p.ID), 'f', decimals, 64))
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteTable writes an aligned text table with two-decimal scores.
func WriteTable(out io.Writer, g *Grid) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range g.Rows(2) {
		for i, cell := range row {
			if i > 0 {
				_, _ = fmt.Fprint(w, "\t")
			}
			_, _ = fmt.Fprint(w, cell)
		}
		_, _ = fmt.Fprint(w, "\t\n")
	}
	return eris.Wrap(w.Flush(), "export: flush table")
}

// WriteCSV writes the grid as CSV with four-decimal scores.
func WriteCSV(out io.Writer, g *Grid) error {
	w := csv.NewWriter(out)
	if err := w.WriteAll(g.Rows(4)); err != nil {
		return eris.Wrap(err, "export: write csv")
	}
	return nil
}

// WriteXLSX saves the grid to path as a single-sheet workbook with numeric
// score cells.
func WriteXLSX(path string, g *Grid) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range g.Header() {
		header.AddCell().SetString(h)
	}

	for _, c := range g.Companies {
		row := sheet.AddRow()
		row.AddCell().SetString(c.Name)
		for _, p := range g.Partners {
			row.AddCell().SetFloatWithFormat(g.Cell(c.Name, p.ID), "0.00")
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
