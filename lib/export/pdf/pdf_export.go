package pdfexport

import (
	"bytes"
	"fmt"
	dbmodels "hr-admin-backend/models/db"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	utf8FontFamily = "DejaVu"
	utf8FontFile   = "DejaVuSans.ttf"
	utf8BoldFile   = "DejaVuSans-Bold.ttf"
	coreFontFamily = "Helvetica"
)

type payslipLabels struct {
	Title, Period, Employee, Company, Designation     string
	Basic, Allowance, Deduction, Net, Item, AmountCol string
}

var (
	ruLabels = payslipLabels{
		Title:       "Расчетный лист",
		Period:      "Период",
		Employee:    "Сотрудник",
		Company:     "Компания",
		Designation: "Должность",
		Basic:       "Оклад",
		Allowance:   "Надбавки",
		Deduction:   "Удержания",
		Net:         "К выплате",
		Item:        "Статья",
		AmountCol:   "Сумма",
	}
	// core шрифты без кириллицы
	enLabels = payslipLabels{
		Title:       "Payslip",
		Period:      "Period",
		Employee:    "Employee",
		Company:     "Company",
		Designation: "Designation",
		Basic:       "Basic salary",
		Allowance:   "Allowance",
		Deduction:   "Deduction",
		Net:         "Net salary",
		Item:        "Item",
		AmountCol:   "Amount",
	}
)

// GeneratePayslip расчетный лист в pdf. Если fontDir не задан, используется core шрифт Helvetica
func GeneratePayslip(companyTitle, fontDir string, rec dbmodels.Payslip) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GeneratePayslip panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", fontDir)
	family, labels := coreFontFamily, enLabels
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontDir != "" {
		pdf.AddUTF8Font(utf8FontFamily, "", utf8FontFile)
		pdf.AddUTF8Font(utf8FontFamily, "B", utf8BoldFile)
		family, labels = utf8FontFamily, ruLabels
		tr = func(s string) string { return s }
	}
	pdf.AddPage()
	pdf.SetFont(family, "B", 16)
	if pdf.Error() != nil {
		return nil, errors.Wrapf(pdf.Error(), "ошибка загрузки шрифта из %s", filepath.Join(fontDir, utf8FontFile))
	}

	// заголовок
	pdf.CellFormat(0, 10, tr(companyTitle), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 13)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s: %02d.%d", labels.Title, rec.Month, rec.Year)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// сотрудник
	pdf.SetFont(family, "", 11)
	info := [][2]string{}
	if rec.Employee != nil {
		info = append(info, [2]string{labels.Employee, rec.Employee.Name})
		if rec.Employee.Company != nil {
			info = append(info, [2]string{labels.Company, rec.Employee.Company.Name})
		}
		if rec.Employee.Designation != nil {
			info = append(info, [2]string{labels.Designation, rec.Employee.Designation.Name})
		}
	}
	info = append(info, [2]string{labels.Period, fmt.Sprintf("%02d.%d", rec.Month, rec.Year)})
	for _, line := range info {
		pdf.CellFormat(45, 7, tr(line[0]+":"), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(line[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// начисления
	pdf.SetFont(family, "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(120, 8, tr(labels.Item), "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, tr(labels.AmountCol), "1", 1, "R", true, 0, "")
	pdf.SetFont(family, "", 11)
	amounts := []struct {
		label string
		value decimal.Decimal
	}{
		{labels.Basic, rec.BasicSalary},
		{labels.Allowance, rec.Allowance},
		{labels.Deduction, rec.Deduction.Neg()},
	}
	for _, line := range amounts {
		pdf.CellFormat(120, 8, tr(line.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, line.value.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont(family, "B", 11)
	pdf.CellFormat(120, 8, tr(labels.Net), "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, rec.NetSalary.StringFixed(2), "1", 1, "R", false, 0, "")

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PayslipFileName имя файла расчетного листа
func PayslipFileName(rec dbmodels.Payslip) string {
	return fmt.Sprintf("payslip_%d_%02d_%d.pdf", rec.EmployeeID, rec.Month, rec.Year)
}
