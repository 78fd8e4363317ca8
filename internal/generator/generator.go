package generator

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/vovanwin/id24json/internal/model"
	"github.com/vovanwin/id24json/pkg/compat"
	"github.com/vovanwin/id24json/pkg/types"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Format формат документации каталога
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat принимает имя формата и короткие псевдонимы md и txt
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("неподдерживаемый формат %q (допустимы: markdown, text)", s)
	}
}

// Options настройки генерации документации каталога
type Options struct {
	Tier   compat.Executable // Executable, для которого показываются дефолты
	Format Format
	All    bool // Включать опции, которые Tier не распознаёт
}

// BuildDocs собирает строки каталога в порядке имён
func BuildDocs(opts Options) []model.OptionDoc {
	var docs []model.OptionDoc
	for _, opt := range compat.CompOptions() {
		legal := opt.LegalFor(opts.Tier)
		if !legal && !opts.All {
			continue
		}
		doc := model.OptionDoc{
			Name:        opt.Name(),
			Kind:        opt.Kind(),
			MinTier:     opt.MinTier().String(),
			MaxTier:     opt.MaxTier().String(),
			Values:      valuesOf(opt),
			Legal:       legal,
			Description: opt.Description(),
			Long:        opt.LongDescription(),
		}
		if v, ok := opt.DefaultFor(opts.Tier); ok {
			doc.Default = formatValue(v)
		}
		docs = append(docs, doc)
	}
	return docs
}

// Render выводит каталог в выбранном формате
func Render(w io.Writer, opts Options) error {
	if !opts.Tier.Valid() {
		return fmt.Errorf("%w: %d", compat.ErrUnknownTier, opts.Tier)
	}

	var tmplFile string
	switch opts.Format {
	case FormatMarkdown, "":
		tmplFile = "templates/catalog.md.tmpl"
	case FormatText:
		tmplFile = "templates/catalog.txt.tmpl"
	default:
		return fmt.Errorf("неподдерживаемый формат %q", opts.Format)
	}

	tmplB, err := templatesFS.ReadFile(tmplFile)
	if err != nil {
		return fmt.Errorf("чтение шаблона: %w", err)
	}

	tmpl, err := template.New("catalog").Parse(string(tmplB))
	if err != nil {
		return fmt.Errorf("парсинг шаблона: %w", err)
	}

	buf := &bytes.Buffer{}
	data := map[string]any{
		"Tier": opts.Tier,
		"All":  opts.All,
		"Docs": BuildDocs(opts),
	}
	if err := tmpl.Execute(buf, data); err != nil {
		return fmt.Errorf("выполнение шаблона: %w", err)
	}
	buf.WriteByte('\n')

	if opts.Format != FormatText {
		_, err := w.Write(buf.Bytes())
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := tw.Write(buf.Bytes()); err != nil {
		return err
	}
	return tw.Flush()
}

// valuesOf возвращает допустимые значения опции на проводе
func valuesOf(opt compat.CompOption) string {
	switch opt.Kind() {
	case types.KindBool:
		return "0, 1"
	case types.KindInt:
		return "0.." + strconv.Itoa(int(opt.IntMax()))
	default:
		names := compat.EnumNames(opt.Kind())
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = strconv.Itoa(i) + " " + name
		}
		return strings.Join(parts, ", ")
	}
}

// formatValue выводит код значения; для перечислений добавляет имя состояния
func formatValue(v compat.Value) string {
	code := strconv.Itoa(int(v.Code()))
	if v.Kind().IsEnum() {
		return code + " (" + v.String() + ")"
	}
	return code
}
