package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/vovanwin/id24json/internal/config"
	"github.com/vovanwin/id24json/internal/logging"
	"github.com/vovanwin/id24json/pkg/compat"
)

// app общее состояние подкоманд
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	usage string
	run   func(a *app, args []string) error
}

var commands = map[string]command{
	"validate": {"validate FILE...                 проверить лампы (JSON или YAML)", runValidate},
	"options":  {"options encode|decode|defaults|common  работа со строкой опций", runOptions},
	"catalog":  {"catalog [-tier] [-format] [-all] каталог опций совместимости", runCatalog},
	"schema":   {"schema [-type T] [-out DIR]       JSON Schema лампов", runSchema},
	"convert":  {"convert [-to json|yaml] [-o OUT] FILE  перевести ламп между JSON и YAML", runConvert},
	"watch":    {"watch PATH...                    перепроверять файлы при изменении", runWatch},
	"init":     {"init [DIR]                       создать пример настроек, пресета и gameconf", runInit},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("id24json", flag.ContinueOnError)
	global.SetOutput(stderr)
	cfgPath := global.String("config", "", "файл настроек (по умолчанию "+config.DefaultPath+")")
	logLevel := global.String("log-level", "", "уровень логирования (debug, info, warn, error)")
	global.Usage = func() { usage(stderr, global) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr, global)
		return 2
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "✗ Неизвестная команда %q\n\n", rest[0])
		usage(stderr, global)
		return 2
	}

	cfg, err := config.Load(config.LoadOptions{
		Path:      *cfgPath,
		Optional:  *cfgPath == "",
		EnableEnv: true,
	})
	if err != nil {
		fmt.Fprintf(stderr, "✗ Ошибка: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger, err := logging.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "✗ Ошибка: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	a := &app{cfg: cfg, log: logger, stdin: stdin, stdout: stdout, stderr: stderr}
	if err := cmd.run(a, rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "\n✗ Ошибка: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer, global *flag.FlagSet) {
	fmt.Fprintln(w, "id24json - инструменты для ID24 JSON лампов")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Использование: id24json [флаги] КОМАНДА [аргументы]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Команды:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Флаги:")
	global.PrintDefaults()
}

// newFlagSet создаёт набор флагов подкоманды, ошибки разбора возвращаются вызывающему
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// tier возвращает executable из флага, а без флага из настроек
func (a *app) tier(flagValue string) (compat.Executable, error) {
	if flagValue != "" {
		return compat.ParseExecutable(flagValue)
	}
	return a.cfg.Executable()
}

func joinNames[T fmt.Stringer](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return strings.Join(names, ", ")
}
