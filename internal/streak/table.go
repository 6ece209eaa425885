package streak

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/onething/internal/model"
)

const maxTaskWidth = 40

// RenderTable prints one row per view with its state, streak and task.
func RenderTable(w io.Writer, data model.StorageData, views []model.DayView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No days to show.")
		return err
	}
	headers := []string{"Date", "State", "Streak", "Task"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		task := ""
		if entry, ok := data.Days[v.Date]; ok {
			task = runewidth.Truncate(entry.Task, maxTaskWidth, "…")
		}
		rows = append(rows, []string{
			v.Date,
			v.State.String(),
			fmt.Sprintf("%d", v.Streak),
			task,
		})
	}
	lines := formatTable(headers, rows, map[int]bool{2: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	cells := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if rightAlignCols[i] {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}
