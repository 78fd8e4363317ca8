package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/vovanwin/id24json/internal/model"
	"github.com/vovanwin/id24json/internal/parser"
	"github.com/vovanwin/id24json/pkg/compat"
	"github.com/vovanwin/id24json/pkg/lump"
)

var optionsCommands = map[string]func(a *app, args []string) error{
	"encode":   runOptionsEncode,
	"decode":   runOptionsDecode,
	"defaults": runOptionsDefaults,
	"common":   runOptionsCommon,
}

func runOptions(a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("укажите действие: encode, decode, defaults, common")
	}
	sub, ok := optionsCommands[args[0]]
	if !ok {
		return fmt.Errorf("неизвестное действие %q (допустимы: encode, decode, defaults, common)", args[0])
	}
	return sub(a, args[1:])
}

func parsePresets(a *app, paths []string) ([]*model.Preset, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("укажите хотя бы один пресет")
	}
	presets := make([]*model.Preset, 0, len(paths))
	for _, path := range paths {
		p, err := parser.ParsePresetFile(path)
		if err != nil {
			return nil, err
		}
		a.log.Debug("пресет загружен", zap.String("path", path), zap.Int("options", p.Options.Len()))
		presets = append(presets, p)
	}
	return presets, nil
}

// runOptionsEncode собирает строку options из пресетов
func runOptionsEncode(a *app, args []string) error {
	fs := a.newFlagSet("options encode")
	asJSON := fs.Bool("json", false, "вывести как JSON строку")
	tierFlag := fs.String("tier", "", "проверить опции для executable (по умолчанию из пресета)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	presets, err := parsePresets(a, fs.Args())
	if err != nil {
		return err
	}
	merged := parser.Merge(presets...)
	for opt, comment := range merged.Comments {
		a.log.Debug("комментарий", zap.Stringer("option", opt), zap.String("comment", comment))
	}

	var tier *compat.Executable
	if *tierFlag != "" {
		t, err := compat.ParseExecutable(*tierFlag)
		if err != nil {
			return err
		}
		tier = &t
	} else if merged.Executable != nil {
		tier = merged.Executable
	}
	if tier != nil {
		if illegal := merged.Options.Illegal(*tier); len(illegal) > 0 {
			return fmt.Errorf("%w %s: %s", compat.ErrOptionNotLegal, *tier, joinNames(illegal))
		}
	}

	encoded := compat.Encode(merged.Options)
	if *asJSON {
		b, err := json.Marshal(encoded)
		if err != nil {
			return err
		}
		encoded = string(b)
	}
	fmt.Fprintln(a.stdout, encoded)
	return nil
}

// runOptionsDecode разбирает строку options из аргумента, stdin или лампа gameconf
func runOptionsDecode(a *app, args []string) error {
	fs := a.newFlagSet("options decode")
	tierFlag := fs.String("tier", "", "executable для проверки (по умолчанию из лампа или настроек)")
	file := fs.String("file", "", "ламп gameconf, из которого берётся строка options")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		opts     *compat.Options
		declared *compat.Executable
	)
	switch {
	case *file != "":
		l, err := loadLump(*file)
		if err != nil {
			return err
		}
		gc, ok := l.Data.(*lump.GameConf)
		if !ok {
			return fmt.Errorf("%s: ожидался ламп %s, получен %s", *file, lump.TypeGameConf, l.Type)
		}
		opts, declared = gc.Options, gc.Executable
		if opts == nil {
			opts = compat.NewOptions()
		}
	default:
		var text string
		if fs.NArg() > 0 {
			text = strings.Join(fs.Args(), "\n")
		} else {
			b, err := io.ReadAll(a.stdin)
			if err != nil {
				return fmt.Errorf("чтение stdin: %w", err)
			}
			text = strings.TrimRight(string(b), "\r\n")
		}
		var err error
		opts, err = compat.Decode(text)
		if err != nil {
			return err
		}
	}

	var (
		tier compat.Executable
		err  error
	)
	if *tierFlag == "" && declared != nil {
		tier = *declared
	} else if tier, err = a.tier(*tierFlag); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "OPTION\tVALUE\tLEGAL (%s)\n", tier)
	for opt, v := range opts.All() {
		legal := "ok"
		if !opt.LegalFor(tier) {
			legal = "not legal"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", opt.Name(), v, legal)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if illegal := opts.Illegal(tier); len(illegal) > 0 {
		return fmt.Errorf("%w %s: %s", compat.ErrOptionNotLegal, tier, joinNames(illegal))
	}
	return nil
}

// runOptionsDefaults выводит дефолты executable строкой options или пресетом
func runOptionsDefaults(a *app, args []string) error {
	fs := a.newFlagSet("options defaults")
	asPreset := fs.Bool("preset", false, "вывести как TOML пресет")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tier, err := a.tier(fs.Arg(0))
	if err != nil {
		return err
	}
	defaults := compat.Defaults(tier)

	if *asPreset {
		return parser.WritePreset(a.stdout, &model.Preset{Executable: &tier, Options: defaults})
	}
	fmt.Fprintln(a.stdout, compat.Encode(defaults))
	return nil
}

// runOptionsCommon выводит опции, совпадающие во всех пресетах
func runOptionsCommon(a *app, args []string) error {
	fs := a.newFlagSet("options common")
	if err := fs.Parse(args); err != nil {
		return err
	}
	presets, err := parsePresets(a, fs.Args())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, compat.Encode(parser.Intersect(presets...)))
	return nil
}
