package report

import (
	"fmt"
	"time"

	"github.com/frahmantamala/sistema-extras/internal/extra"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Relatório de Extras"
	detailedSheet = "Relatório Detalhado"

	// both layouts keep the money column sixth
	valueColumn = 6
)

type column struct {
	header string
	width  float64
}

var summaryColumns = []column{
	{"Data", 12},
	{"Nome do Extra", 25},
	{"Atração", 15},
	{"Vaga", 15},
	{"Horário", 15},
	{"Valor", 15},
	{"Empresa", 20},
	{"Usuário", 25},
}

var detailedColumns = []column{
	{"Nome", 25},
	{"Data(s)", 12},
	{"Horário", 15},
	{"Atração", 15},
	{"Vaga", 15},
	{"Valor Total", 15},
}

func summaryRow(d *extra.ExtraDetail) []interface{} {
	return []interface{}{
		brDate(d.DataEvento),
		d.EmployeeName,
		d.Setor,
		d.Vaga,
		d.HoraEntrada + " - " + d.HoraSaida,
		d.Valor,
		d.CompanyName,
		d.UserName,
	}
}

func detailedRow(d *extra.ExtraDetail) []interface{} {
	return []interface{}{
		d.EmployeeName,
		brDate(d.DataEvento),
		d.HoraEntrada + " - " + d.HoraSaida,
		d.Setor,
		d.Vaga,
		d.Valor,
	}
}

// writeWorkbook renders one sheet with a bold header row and a money
// column formatted as #,##0.00.
func writeWorkbook(kind string, rows []*extra.ExtraDetail) ([]byte, error) {
	sheet, columns, toRow := summarySheet, summaryColumns, summaryRow
	if kind == KindDetailed {
		sheet, columns, toRow = detailedSheet, detailedColumns, detailedRow
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, c.width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, d := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := toRow(d)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(valueColumn, 2)
		last, _ := excelize.CoordinatesToCellName(valueColumn, len(rows)+1)
		if err := f.SetCellStyle(sheet, first, last, money); err != nil {
			return nil, fmt.Errorf("style value column: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func brDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}
