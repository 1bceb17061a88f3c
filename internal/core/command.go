package core

import (
	"fmt"
	"strings"
)

// Command перечисляет команды консоли.
type Command int

const (
	Lowercase Command = iota
	Uppercase
	Slugify
	RemoveSpaces
	Title
	Pascal
	Passwordify
	Csv
	Help
	Exit
)

// Keyword описывает строку таблицы ключевых слов.
type Keyword struct {
	Word        string
	Command     Command
	Description string
}

// keywords фиксирована на этапе сборки; порядок используется в help.
var keywords = []Keyword{
	{Word: "lower", Command: Lowercase, Description: "convert the text to lowercase"},
	{Word: "upper", Command: Uppercase, Description: "convert the text to uppercase"},
	{Word: "nospace", Command: RemoveSpaces, Description: "remove every space character"},
	{Word: "slugify", Command: Slugify, Description: "normalize the text to a URL-safe slug"},
	{Word: "title", Command: Title, Description: "uppercase the first letter of every word (ASCII only)"},
	{Word: "pascal", Command: Pascal, Description: "title-case the text and remove spaces"},
	{Word: "password", Command: Passwordify, Description: "pascal-case the text and substitute a->@ o->0 s->$ i->!"},
	{Word: "csv", Command: Csv, Description: "render a header line plus data lines as a table, end with a blank line"},
	{Word: "help", Command: Help, Description: "list the available commands"},
	{Word: "exit", Command: Exit, Description: "end the session"},
}

// Keywords возвращает копию таблицы ключевых слов.
func Keywords() []Keyword {
	out := make([]Keyword, len(keywords))
	copy(out, keywords)
	return out
}

func (c Command) String() string {
	for _, kw := range keywords {
		if kw.Command == c {
			return kw.Word
		}
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// IsControl сообщает, является ли команда управляющей (help, exit).
func (c Command) IsControl() bool {
	return c == Help || c == Exit
}

// LookupCommand ищет команду по ключевому слову с учетом регистра.
func LookupCommand(word string) (Command, bool) {
	for _, kw := range keywords {
		if kw.Word == word {
			return kw.Command, true
		}
	}
	return 0, false
}

// ParseError возвращается для нераспознанного ключевого слова.
type ParseError struct {
	Keyword string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Keyword)
}

// ParseCommand разбирает строку оператора в (команда, payload).
// Пустая строка должна обрабатываться вызывающей стороной.
func ParseCommand(line string) (Command, string, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return 0, "", fmt.Errorf("empty line: %w", errInvalidArguments)
	}
	cmd, ok := LookupCommand(parts[0])
	if !ok {
		return 0, "", &ParseError{Keyword: parts[0]}
	}
	return cmd, strings.Join(parts[1:], " "), nil
}
