package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/vovanwin/id24json/pkg/compat"
	"github.com/vovanwin/id24json/pkg/lump"
)

var initFiles = map[string]string{
	"id24json.toml": `# id24json.toml: настройки утилиты id24json
# Любой ключ переопределяется переменной окружения ID24JSON_<KEY> (вложенность через __),
# например ID24JSON_LOG__LEVEL=debug

default_executable = "mbf21"
indent = "  "

[log]
level = "info"
format = "console"

[watch]
debounce = "200ms"
`,

	"preset.yaml": `# preset.yaml: пресет опций совместимости
# id24json options encode preset.yaml выводит строку для поля options

executable: mbf21
options:
  # Клиппинг маскированных текстур как в vanilla
  comp_clipmasked: multipatchonly
  comp_texwidthclamp: all
  comp_pursuit: true
  friend_distance: 128
`,
}

// Init создаёт пример настроек, пресета и gameconf в указанной директории.
// Существующие файлы не перезаписываются.
func Init(dir string, out io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("создание директории %s: %w", dir, err)
	}

	gameconf, err := sampleGameConf()
	if err != nil {
		return err
	}
	files := map[string]string{"gameconf.json": gameconf}
	for name, content := range initFiles {
		files[name] = content
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "  skip: %s (already exists)\n", name)
			continue
		}
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return fmt.Errorf("запись %s: %w", name, err)
		}
		fmt.Fprintf(out, "  created: %s\n", name)
	}

	return nil
}

// sampleGameConf собирает gameconf для MBF21 с дефолтами опций рендеринга
func sampleGameConf() (string, error) {
	l, err := lump.New(lump.TypeGameConf)
	if err != nil {
		return "", err
	}
	gc := l.Data.(*lump.GameConf)

	title, iwad := "My Megawad", "doom2.wad"
	mode := lump.ModeCommercial
	gc.Title = &title
	gc.IWAD = &iwad
	gc.PWADFiles = []string{"mymegawad.wad"}
	gc.Mode = &mode
	gc.SetExecutable(compat.MBF21)
	gc.AddOption(compat.CompClipMasked)
	gc.AddOption(compat.CompTexWidthClamp)
	gc.AddOption(compat.CompPursuit)

	var buf bytes.Buffer
	if err := l.Encode(&buf, "  "); err != nil {
		return "", fmt.Errorf("кодирование gameconf: %w", err)
	}
	return buf.String(), nil
}
