package services

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/enunezf/studentdb/internal/core/domain"
)

// NoStudentsMessage is printed instead of a table when there are no rows
const NoStudentsMessage = "No students found."

const (
	columnSeparator   = " | "
	separatorJunction = "-+-"
)

// RenderStudents writes the students as an aligned text table
func RenderStudents(w io.Writer, students []domain.Student) error {
	if len(students) == 0 {
		_, err := fmt.Fprintln(w, NoStudentsMessage)
		return err
	}

	rows := make([][]string, len(students))
	for i, s := range students {
		rows[i] = s.Cells()
	}
	return RenderTable(w, domain.StudentHeaders, rows)
}

// RenderTable writes headers and rows as a left-justified table. Each column
// is as wide as its widest cell or header, columns are joined by " | ", and
// a dashed separator is printed before the header, after the header and
// after the last row. Rows must have as many cells as there are headers.
func RenderTable(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for r, row := range rows {
		if len(row) != len(headers) {
			return fmt.Errorf("row %d has %d cells, want %d", r, len(row), len(headers))
		}
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	dashes := make([]string, len(widths))
	for i, width := range widths {
		dashes[i] = strings.Repeat("-", width)
	}
	separator := strings.Join(dashes, separatorJunction)

	var sb strings.Builder
	sb.WriteString(separator + "\n")
	sb.WriteString(formatRow(headers, widths) + "\n")
	sb.WriteString(separator + "\n")
	for _, row := range rows {
		sb.WriteString(formatRow(row, widths) + "\n")
	}
	sb.WriteString(separator + "\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func formatRow(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = cell + strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
	}
	return strings.Join(padded, columnSeparator)
}
