package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"hr-admin-backend/lib/console/dialog"

	"github.com/pkg/errors"
)

func printTable(out io.Writer, header []string, rows [][]string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// actionsLabel видимые действия строки: E - редактирование, D - удаление, S - статус
func actionsLabel(actions dialog.RowActions) string {
	label := ""
	if actions.Edit {
		label += "E"
	}
	if actions.Delete {
		label += "D"
	}
	if actions.Status {
		label += "S"
	}
	return label
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.Errorf("некорректный идентификатор %q", arg)
	}
	return uint(id), nil
}

func employeeName(name string) string {
	if name == "" {
		return "-"
	}
	return name
}
