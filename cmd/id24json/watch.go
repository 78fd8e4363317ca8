package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/vovanwin/id24json/internal/parser"
	"github.com/vovanwin/id24json/internal/watch"
	"github.com/vovanwin/id24json/pkg/lump"
)

func runWatch(a *app, args []string) error {
	fs := a.newFlagSet("watch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.watch(ctx, paths)
}

func (a *app) watch(ctx context.Context, paths []string) error {
	w, err := watch.New(a.cfg.Watch.Debounce, paths...)
	if err != nil {
		return fmt.Errorf("наблюдение: %w", err)
	}
	defer w.Close()

	a.log.Info("наблюдение запущено", zap.Strings("paths", paths), zap.Duration("debounce", a.cfg.Watch.Debounce))

	for {
		select {
		case <-ctx.Done():
			a.log.Info("наблюдение остановлено")
			return nil
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			a.recheck(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("ошибка наблюдателя", zap.Error(err))
		}
	}
}

// recheck проверяет изменённый файл. TOML считается пресетом; YAML без типа
// лампа тоже разбирается как пресет
func (a *app) recheck(path string) {
	var err error
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		_, err = parser.ParsePresetFile(path)
	} else {
		err = a.checkLump(path)
		if err != nil && isYAML(path) && errors.Is(err, lump.ErrUnknownLumpType) {
			_, err = parser.ParsePresetFile(path)
		}
	}
	if err != nil {
		fmt.Fprintf(a.stdout, "  ✗ %v\n", err)
		return
	}
	fmt.Fprintf(a.stdout, "  ✓ %s\n", path)
}
