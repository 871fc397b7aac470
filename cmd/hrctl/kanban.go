package main

import (
	"fmt"
	"strings"

	"hr-admin-backend/lib/console/kanban"

	"github.com/spf13/cobra"
)

func (a *app) board() *kanban.Board {
	return kanban.NewBoard(kanban.Remote{Client: a.client}, a.notifier, kanban.Options{
		RevertOnFailure: a.conf.RevertOnFailure(),
	})
}

func kanbanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kanban",
		Short: "Доска задач",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Показать доску",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board := a.board()
			if err := board.Refresh(cmd.Context()); err != nil {
				return a.report(err, "Не удалось загрузить доску")
			}
			printBoard(a, board)
			return nil
		},
	}

	var toColumn uint
	var index int
	move := &cobra.Command{
		Use:   "move TASK_ID",
		Short: "Перенести задачу в колонку",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0])
			if err != nil {
				return err
			}
			board := a.board()
			if err = board.Refresh(cmd.Context()); err != nil {
				return a.report(err, "Не удалось загрузить доску")
			}
			if err = board.Move(cmd.Context(), taskID, toColumn, index); err != nil {
				// ошибки сервера уже показаны доской
				if _, known := board.Task(taskID); !known {
					return a.reportLocal(err)
				}
				if _, known := board.Column(toColumn); !known {
					return a.reportLocal(err)
				}
				return errReported
			}
			a.notifier.Success(fmt.Sprintf("Задача %d перенесена", taskID))
			printBoard(a, board)
			return nil
		},
	}
	move.Flags().UintVar(&toColumn, "to", 0, "ИД колонки")
	move.Flags().IntVar(&index, "index", -1, "позиция в колонке, по умолчанию в конец")
	_ = move.MarkFlagRequired("to")

	cmd.AddCommand(show, move)
	return cmd
}

func printBoard(a *app, board *kanban.Board) {
	for _, column := range board.Columns() {
		titles := make([]string, 0, len(column.TaskIDs))
		for _, id := range column.TaskIDs {
			if task, ok := board.Task(id); ok {
				titles = append(titles, fmt.Sprintf("#%d %s", task.ID, task.Title))
			}
		}
		fmt.Fprintf(a.out, "[%d] %s (%s)\n", column.ID, column.Title, board.StatusOf(column.ID))
		if len(titles) > 0 {
			fmt.Fprintln(a.out, "    "+strings.Join(titles, "\n    "))
		}
	}
}
