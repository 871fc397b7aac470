package xlsexport

import (
	"bytes"
	"fmt"
	dbmodels "hr-admin-backend/models/db"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportPayslipList(list []dbmodels.Payslip) (*bytes.Buffer, error)
	ReadSalaries(r io.Reader) (rows []SalaryRow, skipped []string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

// SalaryRow строка файла импорта окладов: email | оклад
type SalaryRow struct {
	Row    int
	Email  string
	Salary decimal.Decimal
}

var payslipHeaders = []string{"Сотрудник", "Email", "Период", "Оклад", "Надбавки", "Удержания", "К выплате", "Статус"}

const (
	payslipSheet = "Расчетные листы"
	moneyColFrom = 4
)

func (i impl) ExportPayslipList(list []dbmodels.Payslip) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, payslipHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writePayslipData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
		if err = writeTotal(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования итогов в xlsx")
		}
	}
	if err = f.SetSheetName(sheet, payslipSheet); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

func writePayslipData(f *excelize.File, sheet string, list []dbmodels.Payslip, row int) (int, error) {
	if err := styleRange(f, sheet, cellText, 1, row+1, len(payslipHeaders), len(list)+1); err != nil {
		return row, err
	}
	if err := styleRange(f, sheet, cellMoney, moneyColFrom, row+1, moneyColFrom+3, len(list)+2); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Сотрудник", "Email"
		name, email := "", ""
		if item.Employee != nil {
			name, email = item.Employee.Name, item.Employee.Email
		}
		values := []interface{}{
			name,
			email,
			fmt.Sprintf("%02d.%d", item.Month, item.Year),
			item.BasicSalary.InexactFloat64(),
			item.Allowance.InexactFloat64(),
			item.Deduction.InexactFloat64(),
			item.NetSalary.InexactFloat64(),
			string(item.Status),
		}
		for idx, value := range values {
			if err := writeCell(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func writeTotal(f *excelize.File, sheet string, list []dbmodels.Payslip, row int) error {
	row++
	total := decimal.Zero
	for _, item := range list {
		total = total.Add(item.NetSalary)
	}
	if err := writeCell(f, sheet, 1, row, "Итого"); err != nil {
		return err
	}
	return writeCell(f, sheet, moneyColFrom+3, row, total.InexactFloat64())
}

func (i impl) ReadSalaries(r io.Reader) (rows []SalaryRow, skipped []string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения xlsx")
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("в файле нет листов")
	}
	data, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения строк xlsx")
	}
	skipped = []string{}
	for idx, cells := range data {
		rowNum := idx + 1
		if len(cells) == 0 || strings.TrimSpace(strings.Join(cells, "")) == "" {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(cells[0]))
		if idx == 0 && !strings.Contains(email, "@") {
			// заголовок
			continue
		}
		if !strings.Contains(email, "@") {
			skipped = append(skipped, fmt.Sprintf("строка %d: некорректный email %q", rowNum, email))
			continue
		}
		if len(cells) < 2 {
			skipped = append(skipped, fmt.Sprintf("строка %d: не указан оклад", rowNum))
			continue
		}
		salary, err := parseMoney(cells[1])
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("строка %d: некорректный оклад %q", rowNum, cells[1]))
			continue
		}
		if salary.IsNegative() {
			skipped = append(skipped, fmt.Sprintf("строка %d: оклад не может быть отрицательным", rowNum))
			continue
		}
		rows = append(rows, SalaryRow{Row: rowNum, Email: email, Salary: salary})
	}
	return rows, skipped, nil
}

func parseMoney(value string) (decimal.Decimal, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, ",", ".")
	return decimal.NewFromString(value)
}
