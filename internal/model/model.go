package model

import (
	"github.com/vovanwin/id24json/pkg/compat"
	"github.com/vovanwin/id24json/pkg/types"
)

// OptionDoc описывает одну опцию совместимости для документации каталога
type OptionDoc struct {
	Name        string     // Имя в строке options (comp_pursuit)
	Kind        types.Kind // Форма значения
	MinTier     string     // Первый executable, знающий опцию
	MaxTier     string     // Последний executable, знающий опцию
	Values      string     // Допустимые значения: "0|1", "0..999", "0=all|1=multipatchonly|2=none"
	Default     string     // Значение по умолчанию для выбранного executable, "" если не записано
	Legal       bool       // Опция допустима для выбранного executable
	Description string     // Краткое описание
	Long        string     // Подробное описание
}

// Preset представляет один файл пресета опций (TOML или YAML)
type Preset struct {
	Path       string
	Executable *compat.Executable           // nil, если executable не указан
	Options    *compat.Options              // Опции в порядке имён
	Comments   map[compat.CompOption]string // Комментарии над ключами в секции options
}
