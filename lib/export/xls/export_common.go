package xlsexport

import "github.com/xuri/excelize/v2"

const (
	fontFamily  = "Times New Roman"
	columnWidth = 18
	moneyFormat = "# ##0.00"
)

type cellKind int

const (
	cellHeader cellKind = iota
	cellText
	cellMoney
)

func styleOf(kind cellKind) *excelize.Style {
	font := &excelize.Font{Family: fontFamily, Size: 11}
	switch kind {
	case cellHeader:
		font.Bold = true
		return &excelize.Style{Font: font, Alignment: &excelize.Alignment{Horizontal: "center"}}
	case cellMoney:
		numFmt := moneyFormat
		return &excelize.Style{
			Font:         font,
			Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
			CustomNumFmt: &numFmt,
		}
	default:
		return &excelize.Style{Font: font, Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"}}
	}
}

func writeCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// styleRange стиль прямоугольника ячеек от (colFrom, rowFrom) до (colTo, rowTo) включительно
func styleRange(f *excelize.File, sheet string, kind cellKind, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := f.NewStyle(styleOf(kind))
	if err != nil {
		return err
	}
	from, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}

// writeHeader строка заголовков после row, возвращает ее номер
func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	if err := styleRange(f, sheet, cellHeader, 1, row, len(headers), row); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
		return row, err
	}
	for idx, value := range headers {
		if err = writeCell(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}
