package compat

import (
	"errors"
	"slices"
	"testing"
)

func TestOptions_AddRemove(t *testing.T) {
	o := NewOptions()

	if !o.Add(CompSoul, Boom2_02) {
		t.Fatal("Add(comp_soul, boom2.02) should insert the default")
	}
	if v, ok := o.Get(CompSoul); !ok || v != Bool(false) {
		t.Errorf("comp_soul = %v, %v", v, ok)
	}

	if o.Add(PlayerHelpers, Boom2_02) {
		t.Error("player_helpers has no boom default and must not be added")
	}
	if o.Has(PlayerHelpers) {
		t.Error("player_helpers present after no-op Add")
	}

	if o.Add(CompRespawn, MBF) {
		t.Error("comp_respawn has no mbf default")
	}

	o.Remove(CompSoul)
	o.Remove(CompSoul)
	if o.Has(CompSoul) || o.Len() != 0 {
		t.Errorf("expected empty set, got %q", Encode(o))
	}
}

func TestOptions_ZeroValue(t *testing.T) {
	var o Options
	if o.Len() != 0 {
		t.Fatal("zero Options should be empty")
	}
	if err := o.Set(CompGod, Bool(true)); err != nil {
		t.Fatalf("Set on zero value: %v", err)
	}
	if !o.Has(CompGod) {
		t.Error("comp_god missing")
	}
}

func TestOptions_Set(t *testing.T) {
	o := NewOptions()

	if err := o.Set(CompTexWidthClamp, TexWidthClampValue(TexWidthClampNone)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	err := o.Set(CompSoul, TexWidthClampValue(TexWidthClampNone))
	if !errors.Is(err, ErrOptionShapeMismatch) {
		t.Errorf("expected ErrOptionShapeMismatch, got %v", err)
	}
	if o.Has(CompSoul) {
		t.Error("mismatched value must not be stored")
	}

	err = o.Set(CompClipMasked, ClipMaskedValue(ClipMasked(7)))
	if !errors.Is(err, ErrInvalidEnumValue) {
		t.Errorf("expected ErrInvalidEnumValue, got %v", err)
	}

	if err := o.Set(FriendDistance, Int(5000)); err != nil {
		t.Fatalf("Set friend_distance: %v", err)
	}
	if v, _ := o.Get(FriendDistance); v != Int(MaxFriendDistance) {
		t.Errorf("friend_distance = %v, expected clamp to %d", v, MaxFriendDistance)
	}

	if err := o.Set(CompOption(99), Bool(true)); !errors.Is(err, ErrUnknownOption) {
		t.Errorf("expected ErrUnknownOption, got %v", err)
	}
}

func TestOptions_SetExecutablePrunesRetired(t *testing.T) {
	o := Defaults(MBF)
	if !o.Has(ClassicBFG) || !o.Has(Monkeys) {
		t.Fatal("mbf defaults should include retired options")
	}
	before := o.Len()

	for _, tier := range []Executable{MBF21, MBF21EX, ID24} {
		c := o.Clone()
		removed := c.SetExecutable(tier)

		expected := []CompOption{BetaEmulation, ClassicBFG, CompInfCheat, Monkeys}
		if !slices.Equal(removed, expected) {
			t.Errorf("%v: removed %v, expected %v", tier, removed, expected)
		}
		if c.Len() != before-len(expected) {
			t.Errorf("%v: %d options left, expected %d", tier, c.Len(), before-len(expected))
		}
		for opt := range c.All() {
			if !opt.LegalFor(tier) {
				t.Errorf("%v: illegal option %s survived", tier, opt)
			}
		}
	}
}

func TestOptions_SetExecutableDoesNotPopulate(t *testing.T) {
	o := NewOptions()
	o.Add(CompSoul, Boom2_02)

	removed := o.SetExecutable(ID24)
	if len(removed) != 0 {
		t.Errorf("nothing should be removed, got %v", removed)
	}
	if o.Len() != 1 {
		t.Errorf("SetExecutable must not add defaults, got %q", Encode(o))
	}

	o.SetExecutable(LimitRemoving)
	if o.Len() != 0 {
		t.Errorf("comp_soul is not legal for limitremoving, got %q", Encode(o))
	}
}

func TestOptions_AllOrdered(t *testing.T) {
	o := NewOptions()
	for _, opt := range []CompOption{WeaponRecoil, CompSoul, AllowPushers, MonstersRemember, MonsterInfighting} {
		o.Add(opt, MBF)
	}

	var got []string
	for opt := range o.All() {
		got = append(got, opt.Name())
	}
	expected := []string{"allow_pushers", "comp_soul", "monster_infighting", "monsters_remember", "weapon_recoil"}
	if !slices.Equal(got, expected) {
		t.Errorf("All() order = %v, expected %v", got, expected)
	}
}

func TestOptions_MergeEqual(t *testing.T) {
	a := NewOptions()
	a.Add(CompSoul, Boom2_02)
	b := NewOptions()
	_ = b.Set(CompSoul, Bool(true))
	_ = b.Set(PlayerHelpers, Int(2))

	a.Merge(b)
	if !a.Equal(b) {
		t.Errorf("after merge %q != %q", Encode(a), Encode(b))
	}

	c := a.Clone()
	c.Remove(PlayerHelpers)
	if a.Equal(c) || !a.Has(PlayerHelpers) {
		t.Error("Clone must not share storage")
	}
}

func TestOptions_Illegal(t *testing.T) {
	o := Defaults(ID24)
	if bad := o.Illegal(ID24); len(bad) != 0 {
		t.Errorf("id24 defaults illegal for id24: %v", bad)
	}
	bad := o.Illegal(Boom2_02)
	if !slices.Contains(bad, CompLedgeBlock) || slices.Contains(bad, CompSoul) {
		t.Errorf("unexpected illegal set for boom2.02: %v", bad)
	}
}
