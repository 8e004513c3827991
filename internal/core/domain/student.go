package domain

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// StudentHeaders are the fixed column titles of the student listing
var StudentHeaders = []string{"ID", "Roll No", "Name", "Course", "Year"}

// Student is a persisted row of the students table
type Student struct {
	ID         int64          `db:"id"`
	RollNumber string         `db:"roll_number"`
	Name       string         `db:"name"`
	Course     sql.NullString `db:"course"`
	Year       sql.NullInt64  `db:"year"`
}

// Cells returns the display values of the student in header order.
// NULL course or year render as empty cells.
func (s Student) Cells() []string {
	year := ""
	if s.Year.Valid {
		year = strconv.FormatInt(s.Year.Int64, 10)
	}
	return []string{
		strconv.FormatInt(s.ID, 10),
		s.RollNumber,
		s.Name,
		s.Course.String,
		year,
	}
}

// StudentInput holds the values collected for a new student
type StudentInput struct {
	RollNumber string
	Name       string
	Course     string
	Year       int
}

// ParseYear converts raw user input into a year. The range 1-4 is only a
// hint to the user and is not enforced. A failure wraps ErrInvalidYear and
// can be retried by the caller.
func ParseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrInvalidYear, strings.TrimSpace(raw))
	}
	return year, nil
}
