package parser

import (
	"testing"

	"github.com/vovanwin/id24json/internal/model"
	"github.com/vovanwin/id24json/pkg/compat"
)

func preset(t *testing.T, tier *compat.Executable, encoded string) *model.Preset {
	t.Helper()
	opts, err := compat.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode(%q): %v", encoded, err)
	}
	return &model.Preset{Executable: tier, Options: opts, Comments: map[compat.CompOption]string{}}
}

func TestMerge(t *testing.T) {
	boom, mbf := compat.Boom2_02, compat.MBF
	a := preset(t, &boom, "comp_soul 1\ncomp_god 0")
	a.Comments[compat.CompSoul] = "из первого"
	b := preset(t, nil, "comp_god 1\nmonkeys 1")
	c := preset(t, &mbf, "comp_zombie 0")

	merged := Merge(a, b, c)

	if merged.Executable == nil || *merged.Executable != compat.MBF {
		t.Errorf("Executable = %v, ожидался mbf", merged.Executable)
	}
	want := "comp_god 1\ncomp_soul 1\ncomp_zombie 0\nmonkeys 1"
	if got := compat.Encode(merged.Options); got != want {
		t.Errorf("Merge = %q, ожидалось %q", got, want)
	}
	if merged.Comments[compat.CompSoul] != "из первого" {
		t.Errorf("комментарий потерян: %v", merged.Comments)
	}

	// Исходные пресеты не меняются
	if v, _ := a.Options.Get(compat.CompGod); v != compat.Bool(false) {
		t.Errorf("Merge изменил исходный пресет: comp_god = %v", v)
	}
}

func TestMergeEmpty(t *testing.T) {
	merged := Merge()
	if merged.Executable != nil || merged.Options.Len() != 0 {
		t.Errorf("ожидался пустой пресет")
	}
}

func TestIntersect(t *testing.T) {
	a := preset(t, nil, "comp_soul 1\ncomp_god 0\ncomp_zombie 1")
	b := preset(t, nil, "comp_soul 1\ncomp_god 1")
	c := preset(t, nil, "comp_soul 1\ncomp_god 0\ncomp_zombie 1")

	got := compat.Encode(Intersect(a, b, c))
	if got != "comp_soul 1" {
		t.Errorf("Intersect = %q, ожидалось %q", got, "comp_soul 1")
	}

	if Intersect().Len() != 0 {
		t.Error("Intersect без пресетов должен быть пуст")
	}
	if single := Intersect(a); !single.Equal(a.Options) {
		t.Errorf("Intersect одного пресета = %q", single)
	}
}
