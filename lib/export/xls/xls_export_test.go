package xlsexport

import (
	"bytes"
	"hr-admin-backend/models"
	dbmodels "hr-admin-backend/models/db"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportPayslipList(t *testing.T) {
	t.Run(`лист с итогом`, func(t *testing.T) {
		list := []dbmodels.Payslip{
			{
				Employee:    &dbmodels.Employee{Name: "Иван Петров", Email: "ivan@example.com"},
				Month:       2,
				Year:        2024,
				BasicSalary: decimal.NewFromInt(100000),
				NetSalary:   decimal.NewFromInt(100000),
				Status:      models.PayslipStatusGenerated,
			},
			{
				Month:       2,
				Year:        2024,
				BasicSalary: decimal.NewFromInt(50000),
				Allowance:   decimal.NewFromInt(5000),
				Deduction:   decimal.NewFromInt(500),
				NetSalary:   decimal.NewFromInt(54500),
				Status:      models.PayslipStatusSent,
			},
		}
		buf, err := impl{}.ExportPayslipList(list)
		require.NoError(t, err)

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		rows, err := f.GetRows(payslipSheet)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		require.Equal(t, payslipHeaders, rows[0])
		require.Equal(t, "Иван Петров", rows[1][0])
		require.Equal(t, "02.2024", rows[1][2])
		require.Equal(t, "Итого", rows[3][0])
		total, err := f.GetCellValue(payslipSheet, "G4", excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		require.Equal(t, "154500", total)
	})
	t.Run(`пустой список`, func(t *testing.T) {
		buf, err := impl{}.ExportPayslipList(nil)
		require.NoError(t, err)
		require.NotZero(t, buf.Len())
	})
}

func TestReadSalaries(t *testing.T) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	data := [][]interface{}{
		{"Email", "Оклад"},
		{"Ivan@Example.com", "120 000,50"},
		{"bad-email", "1"},
		{"anna@example.com", "много"},
		{},
		{"oleg@example.com", "-5"},
		{"petr@example.com", 85000},
	}
	for idx, row := range data {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf := new(bytes.Buffer)
	require.NoError(t, f.Write(buf))

	rows, skipped, err := impl{}.ReadSalaries(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "ivan@example.com", rows[0].Email)
	require.Equal(t, 2, rows[0].Row)
	require.True(t, decimal.RequireFromString("120000.50").Equal(rows[0].Salary))
	require.Equal(t, "petr@example.com", rows[1].Email)
	require.True(t, decimal.NewFromInt(85000).Equal(rows[1].Salary))
	require.Equal(t, []string{
		`строка 3: некорректный email "bad-email"`,
		`строка 4: некорректный оклад "много"`,
		`строка 6: оклад не может быть отрицательным`,
	}, skipped)
}
