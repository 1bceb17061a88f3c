package table

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Options задает символы рамки.
type Options struct {
	HeaderSep rune
	ColumnSep rune
}

// DefaultOptions возвращает '=' для границ и '|' для колонок.
func DefaultOptions() Options {
	return Options{HeaderSep: '=', ColumnSep: '|'}
}

// ColumnMismatchError сообщает о строке с неверным числом колонок.
type ColumnMismatchError struct {
	Line     int
	Expected int
	Got      int
}

func (e *ColumnMismatchError) Error() string {
	return fmt.Sprintf("mismatched columns count at line %d, (all rows should have %d columns)", e.Line, e.Expected)
}

// Table неизменяемая таблица с заранее вычисленной шириной.
// Ширина ячейки считается в колонках терминала (runewidth), для ASCII это число символов.
type Table struct {
	header       []string
	rows         [][]string
	opts         Options
	maxCellWidth int
	width        int
}

// New проверяет прямоугольность и вычисляет ширины.
func New(header []string, rows [][]string, opts Options) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, &ColumnMismatchError{Line: i + 1, Expected: len(header), Got: len(row)}
		}
	}
	if opts.HeaderSep == 0 || opts.ColumnSep == 0 {
		def := DefaultOptions()
		if opts.HeaderSep == 0 {
			opts.HeaderSep = def.HeaderSep
		}
		if opts.ColumnSep == 0 {
			opts.ColumnSep = def.ColumnSep
		}
	}

	t := &Table{header: header, rows: rows, opts: opts}
	for _, cell := range header {
		t.maxCellWidth = max(t.maxCellWidth, runewidth.StringWidth(cell))
	}
	for _, row := range rows {
		for _, cell := range row {
			t.maxCellWidth = max(t.maxCellWidth, runewidth.StringWidth(cell))
		}
	}
	cols := len(header)
	t.width = t.maxCellWidth*cols + cols + 1
	return t, nil
}

// Build разбирает блок CSV: первая строка заголовок, остальные данные.
// Номера строк в ошибках считаются с нуля, заголовок строка 0.
func Build(raw string, opts Options) (*Table, error) {
	lines := strings.Split(raw, "\n")
	for len(lines) > 1 && strings.TrimRight(lines[len(lines)-1], "\r") == "" {
		lines = lines[:len(lines)-1]
	}

	header := splitCells(lines[0])
	rows := make([][]string, 0, len(lines)-1)
	for i, line := range lines[1:] {
		cells := splitCells(line)
		if len(cells) != len(header) {
			return nil, &ColumnMismatchError{Line: i + 1, Expected: len(header), Got: len(cells)}
		}
		rows = append(rows, cells)
	}
	return New(header, rows, opts)
}

func splitCells(line string) []string {
	return strings.Split(strings.TrimRight(line, "\r"), ",")
}

// MaxCellWidth ширина самой длинной ячейки.
func (t *Table) MaxCellWidth() int { return t.maxCellWidth }

// Width полная ширина строки таблицы.
func (t *Table) Width() int { return t.width }

// Columns число колонок.
func (t *Table) Columns() int { return len(t.header) }

// Render рисует таблицу: граница, заголовок, граница, данные, граница.
func (t *Table) Render() string {
	var b strings.Builder
	border := strings.Repeat(string(t.opts.HeaderSep), t.width) + "\n"

	b.WriteString(border)
	t.writeRow(&b, t.header)
	b.WriteString(border)
	for _, row := range t.rows {
		t.writeRow(&b, row)
	}
	b.WriteString(border)
	return b.String()
}

func (t *Table) String() string { return t.Render() }

func (t *Table) writeRow(b *strings.Builder, cells []string) {
	b.WriteRune(t.opts.ColumnSep)
	for _, cell := range cells {
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", t.maxCellWidth-runewidth.StringWidth(cell)))
		b.WriteRune(t.opts.ColumnSep)
	}
	b.WriteByte('\n')
}
