package parser

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// optionsSection таблица пресета, комментарии которой попадают в Preset.Comments
const optionsSection = "options"

// commentMap хранит комментарии опций пресета (options.<name> -> comment)
type commentMap map[string]string

var (
	sectionRe = regexp.MustCompile(`^\s*\[([^\]]+)\]\s*(?:#.*)?$`)
	// Значения опций: bool, число или имя состояния в кавычках
	optionRe  = regexp.MustCompile(`^\s*([a-z0-9_]+)\s*=\s*("[^"]*"|[^\s#]+)\s*(?:#\s*(.*))?$`)
	commentRe = regexp.MustCompile(`^\s*#\s*(.*)$`)
)

// extractComments собирает комментарии к опциям из таблицы [options] TOML
// пресета: строки "# ..." прямо над ключом и комментарий в конце строки ключа.
// Комментарии вне [options] игнорируются.
func extractComments(path string) (commentMap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	comments := make(commentMap)
	scanner := bufio.NewScanner(file)

	var (
		inOptions bool
		pending   []string
	)
	for scanner.Scan() {
		line := scanner.Text()

		if match := sectionRe.FindStringSubmatch(line); match != nil {
			inOptions = strings.TrimSpace(match[1]) == optionsSection
			pending = nil
			continue
		}

		if match := commentRe.FindStringSubmatch(line); match != nil {
			if c := strings.TrimSpace(match[1]); c != "" && inOptions {
				pending = append(pending, c)
			}
			continue
		}

		if match := optionRe.FindStringSubmatch(line); match != nil && inOptions {
			lines := pending
			if inline := strings.TrimSpace(match[3]); inline != "" {
				lines = append(lines, inline)
			}
			if len(lines) > 0 {
				comments[optionsSection+"."+match[1]] = strings.Join(lines, "\n")
			}
			pending = nil
			continue
		}

		// Пустая строка или ключ вне [options] отрывает комментарий от опции
		pending = nil
	}

	return comments, scanner.Err()
}
