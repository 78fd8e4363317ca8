package parser

import (
	"github.com/vovanwin/id24json/internal/model"
	"github.com/vovanwin/id24json/pkg/compat"
)

// Merge объединяет пресеты, более поздние переопределяют более ранние.
// Executable берётся из последнего пресета, где он указан.
func Merge(presets ...*model.Preset) *model.Preset {
	result := &model.Preset{
		Options:  compat.NewOptions(),
		Comments: make(map[compat.CompOption]string),
	}
	for _, p := range presets {
		if p.Executable != nil {
			tier := *p.Executable
			result.Executable = &tier
		}
		result.Options.Merge(p.Options)
		for opt, c := range p.Comments {
			result.Comments[opt] = c
		}
	}
	return result
}

// Intersect возвращает опции, заданные с одинаковым значением во всех пресетах
func Intersect(presets ...*model.Preset) *compat.Options {
	if len(presets) == 0 {
		return compat.NewOptions()
	}

	result := presets[0].Options.Clone()
	for _, p := range presets[1:] {
		for opt, v := range result.All() {
			if w, ok := p.Options.Get(opt); !ok || w != v {
				result.Remove(opt)
			}
		}
	}
	return result
}
