package parser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vovanwin/id24json/internal/model"
	"github.com/vovanwin/id24json/pkg/compat"
	"github.com/vovanwin/id24json/pkg/types"
)

// presetFile корневая структура файла пресета
type presetFile struct {
	Executable string         `toml:"executable" yaml:"executable"`
	Options    map[string]any `toml:"options" yaml:"options"`
}

// ParsePresetFile читает пресет опций. Формат определяется по расширению:
// .toml или .yaml/.yml
func ParsePresetFile(path string) (*model.Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", path, err)
	}

	var (
		pf       presetFile
		comments commentMap
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(b), &pf); err != nil {
			return nil, fmt.Errorf("декодирование toml %s: %w", path, err)
		}
		comments, err = extractComments(path)
		if err != nil {
			return nil, fmt.Errorf("извлечение комментариев %s: %w", path, err)
		}
	case ".yaml", ".yml":
		pf, comments, err = decodeYAML(b)
		if err != nil {
			return nil, fmt.Errorf("декодирование yaml %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: неподдерживаемое расширение %q (допустимы: .toml, .yaml, .yml)", path, ext)
	}

	preset, err := buildPreset(pf, comments)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	preset.Path = path
	return preset, nil
}

func decodeYAML(b []byte) (presetFile, commentMap, error) {
	var pf presetFile
	comments := make(commentMap)

	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return pf, nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return pf, comments, nil
	}
	if err := doc.Decode(&pf); err != nil {
		return pf, nil, err
	}
	collectYAMLComments(doc.Content[0], "", comments)
	return pf, comments, nil
}

// collectYAMLComments собирает head-комментарии ключей (section.key -> comment)
func collectYAMLComments(n *yaml.Node, prefix string, comments commentMap) {
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		fullKey := key.Value
		if prefix != "" {
			fullKey = prefix + "." + key.Value
		}
		if c := cleanComment(key.HeadComment); c != "" {
			comments[fullKey] = c
		}
		collectYAMLComments(val, fullKey, comments)
	}
}

func cleanComment(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "#"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func buildPreset(pf presetFile, comments commentMap) (*model.Preset, error) {
	preset := &model.Preset{
		Options:  compat.NewOptions(),
		Comments: make(map[compat.CompOption]string),
	}

	if pf.Executable != "" {
		tier, err := compat.ParseExecutable(pf.Executable)
		if err != nil {
			return nil, err
		}
		preset.Executable = &tier
	}

	names := make([]string, 0, len(pf.Options))
	for name := range pf.Options {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		opt, err := compat.ParseCompOption(name)
		if err != nil {
			return nil, fmt.Errorf("опция %q: %w", name, err)
		}
		v, err := coerceValue(pf.Options[name], opt)
		if err != nil {
			return nil, fmt.Errorf("опция %q: %w", name, err)
		}
		if err := preset.Options.Set(opt, v); err != nil {
			return nil, fmt.Errorf("опция %q: %w", name, err)
		}
		if c, ok := comments["options."+name]; ok {
			preset.Comments[opt] = c
		}
	}
	return preset, nil
}

// coerceValue приводит значение из файла к форме, которую каталог задаёт для опции.
// Перечисления принимают имя состояния или его порядковый номер.
func coerceValue(val any, opt compat.CompOption) (compat.Value, error) {
	switch opt.Kind() {
	case types.KindBool:
		if v, ok := val.(bool); ok {
			return compat.Bool(v), nil
		}
		n, err := toUint(val)
		if err != nil {
			return compat.Value{}, fmt.Errorf("%w: ожидался bool, получен %T", compat.ErrInvalidValue, val)
		}
		return compat.Bool(n != 0), nil
	case types.KindInt:
		n, err := toUint(val)
		if err != nil {
			return compat.Value{}, err
		}
		if n > uint64(opt.IntMax()) {
			n = uint64(opt.IntMax())
		}
		return compat.Int(uint16(n)), nil
	case types.KindClipMasked:
		code, err := enumCode(val, opt.Kind())
		if err != nil {
			return compat.Value{}, err
		}
		return compat.ClipMaskedValue(compat.ClipMasked(code)), nil
	case types.KindTexWidthClamp:
		code, err := enumCode(val, opt.Kind())
		if err != nil {
			return compat.Value{}, err
		}
		return compat.TexWidthClampValue(compat.TexWidthClamp(code)), nil
	default:
		return compat.Value{}, fmt.Errorf("неизвестная форма значения %v", opt.Kind())
	}
}

func toUint(val any) (uint64, error) {
	var n int64
	switch v := val.(type) {
	case int64:
		n = v
	case int:
		n = int64(v)
	case uint64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: ожидалось целое, получен %T", compat.ErrInvalidValue, val)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: отрицательное значение %d", compat.ErrInvalidValue, n)
	}
	return uint64(n), nil
}

func enumCode(val any, kind types.Kind) (uint8, error) {
	names := compat.EnumNames(kind)
	if s, ok := val.(string); ok {
		for i, name := range names {
			if strings.EqualFold(name, s) {
				return uint8(i), nil
			}
		}
		return 0, fmt.Errorf("%w: %q (допустимы: %s)", compat.ErrInvalidEnumValue, s, strings.Join(names, ", "))
	}
	n, err := toUint(val)
	if err != nil {
		return 0, err
	}
	if n >= uint64(len(names)) {
		return 0, fmt.Errorf("%w: %d", compat.ErrInvalidEnumValue, n)
	}
	return uint8(n), nil
}

// presetOut формат записи пресета; перечисления пишутся именами состояний
type presetOut struct {
	Executable string         `toml:"executable,omitempty"`
	Options    map[string]any `toml:"options"`
}

// WritePreset записывает пресет в TOML
func WritePreset(w io.Writer, p *model.Preset) error {
	out := presetOut{Options: make(map[string]any, p.Options.Len())}
	if p.Executable != nil {
		out.Executable = p.Executable.String()
	}
	for opt, v := range p.Options.All() {
		switch v.Kind() {
		case types.KindBool:
			b, _ := v.Bool()
			out.Options[opt.Name()] = b
		case types.KindInt:
			n, _ := v.Int()
			out.Options[opt.Name()] = int64(n)
		default:
			out.Options[opt.Name()] = v.String()
		}
	}
	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("запись пресета: %w", err)
	}
	return nil
}
