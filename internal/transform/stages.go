package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"

	"transformer/internal/table"
)

// ErrNonASCII возвращается, когда title-стадия встречает символ вне 7-bit ASCII.
var ErrNonASCII = errors.New("letters have to be ascii")

// Stage потребляет текущее значение и возвращает новое или ошибку.
type Stage func(in string) (string, error)

// Lower полный перевод в нижний регистр.
func Lower(in string) (string, error) { return strings.ToLower(in), nil }

// Upper полный перевод в верхний регистр.
func Upper(in string) (string, error) { return strings.ToUpper(in), nil }

// RemoveSpaces удаляет все пробелы.
func RemoveSpaces(in string) (string, error) { return strings.ReplaceAll(in, " ", ""), nil }

// Slugify нормализует строку в URL-безопасный slug.
func Slugify(in string) (string, error) { return slug.Make(in), nil }

// Title переводит в верхний регистр символ после каждого пробела и первый символ строки.
func Title(in string) (string, error) {
	var b strings.Builder
	b.Grow(len(in))
	newWord := true
	for _, r := range in {
		if r > 0x7f {
			return "", fmt.Errorf("%w, %q detected", ErrNonASCII, r)
		}
		if newWord && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		newWord = r == ' '
		b.WriteRune(r)
	}
	return b.String(), nil
}

var passwordReplacer = strings.NewReplacer("a", "@", "o", "0", "s", "$", "i", "!")

// Passwordify подменяет строчные a, o, s, i. Заглавные не затрагиваются.
func Passwordify(in string) (string, error) { return passwordReplacer.Replace(in), nil }

// Csv возвращает стадию, которая строит и рисует таблицу.
func Csv(opts table.Options) Stage {
	return func(in string) (string, error) {
		t, err := table.Build(in, opts)
		if err != nil {
			return "", err
		}
		return t.Render(), nil
	}
}

// Apply применяет стадии по порядку до первой ошибки.
func Apply(in string, stages ...Stage) (string, error) {
	out := in
	for _, stage := range stages {
		var err error
		if out, err = stage(out); err != nil {
			return "", err
		}
	}
	return out, nil
}
