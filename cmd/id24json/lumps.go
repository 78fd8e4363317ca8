package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vovanwin/id24json/internal/generator"
	"github.com/vovanwin/id24json/internal/schema"
	"github.com/vovanwin/id24json/pkg/lump"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// loadLump читает ламп; YAML определяется по расширению
func loadLump(path string) (*lump.Lump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", path, err)
	}
	defer f.Close()

	var l *lump.Lump
	if isYAML(path) {
		l, err = lump.DecodeYAML(f)
	} else {
		l, err = lump.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// checkLump декодирует и проверяет один файл
func (a *app) checkLump(path string) error {
	l, err := loadLump(path)
	if err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	a.log.Debug("ламп прошёл проверку",
		zap.String("path", path),
		zap.String("type", string(l.Type)),
		zap.Stringer("version", l.Version),
	)
	return nil
}

func runValidate(a *app, args []string) error {
	fs := a.newFlagSet("validate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("укажите хотя бы один файл")
	}

	failed := 0
	for _, path := range fs.Args() {
		if err := a.checkLump(path); err != nil {
			failed++
			fmt.Fprintf(a.stdout, "  ✗ %v\n", err)
			continue
		}
		fmt.Fprintf(a.stdout, "  ✓ %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d из %d файлов не прошли проверку", failed, fs.NArg())
	}
	return nil
}

func runConvert(a *app, args []string) error {
	fs := a.newFlagSet("convert")
	to := fs.String("to", "", "формат вывода: json или yaml (по умолчанию противоположный входному)")
	out := fs.String("o", "", "файл вывода (по умолчанию stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("укажите один входной файл")
	}
	path := fs.Arg(0)

	l, err := loadLump(path)
	if err != nil {
		return err
	}

	format := *to
	if format == "" {
		format = "yaml"
		if isYAML(path) {
			format = "json"
		}
	}

	var buf bytes.Buffer
	switch format {
	case "json":
		err = l.Encode(&buf, a.cfg.Indent)
	case "yaml", "yml":
		err = l.EncodeYAML(&buf)
	default:
		return fmt.Errorf("неподдерживаемый формат %q (допустимы: json, yaml)", format)
	}
	if err != nil {
		return err
	}

	if *out == "" {
		_, err := a.stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("запись %s: %w", *out, err)
	}
	a.log.Info("ламп сконвертирован", zap.String("from", path), zap.String("to", *out), zap.String("format", format))
	return nil
}

func runSchema(a *app, args []string) error {
	fs := a.newFlagSet("schema")
	typ := fs.String("type", "", "тип лампа; без него нужен -out для всех типов")
	outDir := fs.String("out", "", "директория для файлов <type>.schema.json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	types := lump.Types()
	if *typ != "" {
		t, err := lump.ParseType(*typ)
		if err != nil {
			return err
		}
		types = []lump.Type{t}
	} else if *outDir == "" {
		return fmt.Errorf("укажите -type или -out")
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			return fmt.Errorf("создание директории %s: %w", *outDir, err)
		}
	}

	for _, t := range types {
		s, err := schema.For(t)
		if err != nil {
			return err
		}
		data, err := schema.Marshal(s)
		if err != nil {
			return err
		}
		if *outDir == "" {
			_, err := a.stdout.Write(data)
			return err
		}
		path := filepath.Join(*outDir, string(t)+".schema.json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("запись %s: %w", path, err)
		}
		fmt.Fprintf(a.stdout, "  ✓ %s\n", path)
	}
	return nil
}

func runCatalog(a *app, args []string) error {
	fs := a.newFlagSet("catalog")
	tierFlag := fs.String("tier", "", "executable, для которого показываются дефолты")
	format := fs.String("format", "markdown", "формат: markdown или text")
	all := fs.Bool("all", false, "включать опции, не распознаваемые executable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tier, err := a.tier(*tierFlag)
	if err != nil {
		return err
	}
	f, err := generator.ParseFormat(*format)
	if err != nil {
		return err
	}
	return generator.Render(a.stdout, generator.Options{Tier: tier, Format: f, All: *all})
}

func runInit(a *app, args []string) error {
	fs := a.newFlagSet("init")
	if err := fs.Parse(args); err != nil {
		return err
	}
	dir := "."
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	fmt.Fprintf(a.stdout, "Директория: %s\n", dir)
	return generator.Init(dir, a.stdout)
}
