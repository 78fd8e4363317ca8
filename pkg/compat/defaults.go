package compat

// defaultTable holds the explicit defaults recorded for one tier.
type defaultTable map[CompOption]Value

// extend returns a copy of base without the dropped options and with the
// overrides applied on top.
func extend(base defaultTable, overrides defaultTable, drop ...CompOption) defaultTable {
	out := make(defaultTable, len(base)+len(overrides))
	for opt, v := range base {
		out[opt] = v
	}
	for _, opt := range drop {
		delete(out, opt)
	}
	for opt, v := range overrides {
		out[opt] = v
	}
	return out
}

var vanillaDefaults = defaultTable{
	Comp666:             Bool(false),
	CompClipMasked:      ClipMaskedValue(ClipMaskedMultipatchOnly),
	CompMaskedAnim:      Bool(true),
	CompTexWidthClamp:   TexWidthClampValue(TexWidthClampAll),
	CompThingFloorLight: Bool(false),
}

var boomDefaults = extend(vanillaDefaults, defaultTable{
	AllowPushers:     Bool(true),
	CompBlazing:      Bool(false),
	CompDoorLight:    Bool(false),
	CompDropoff:      Bool(false),
	CompFalloff:      Bool(false),
	CompFloors:       Bool(false),
	CompGod:          Bool(false),
	CompMaskedAnim:   Bool(false),
	CompModel:        Bool(false),
	CompPain:         Bool(false),
	CompRespawn:      Bool(false),
	CompSkull:        Bool(false),
	CompSkymap:       Bool(false),
	CompSoul:         Bool(false),
	CompStairs:       Bool(false),
	CompTelefrag:     Bool(false),
	CompVile:         Bool(false),
	CompZeroTags:     Bool(false),
	CompZombie:       Bool(true),
	VariableFriction: Bool(true),
	WeaponRecoil:     Bool(false),
})

// comp_respawn is legal at MBF but has no agreed default there; see DESIGN.md.
var mbfDefaults = extend(boomDefaults, defaultTable{
	BetaEmulation:       Bool(false),
	ClassicBFG:          Bool(false),
	CompDoorStuck:       Bool(false),
	CompInfCheat:        Bool(false),
	CompPursuit:         Bool(false),
	CompStayLift:        Bool(false),
	DogJumping:          Bool(true),
	FriendDistance:      Int(128),
	HelpFriends:         Bool(false),
	Monkeys:             Bool(false),
	MonsterAvoidHazards: Bool(true),
	MonsterBacking:      Bool(false),
	MonsterFriction:     Bool(true),
	MonsterInfighting:   Bool(true),
	MonstersRemember:    Bool(true),
	PlayerHelpers:       Int(0),
}, CompRespawn)

// modernDefaults is shared by every tier from MBF21 on.
var modernDefaults = extend(mbfDefaults, defaultTable{
	CompClipMasked:       ClipMaskedValue(ClipMaskedNone),
	CompFriendlySpawn:    Bool(true),
	CompLedgeBlock:       Bool(true),
	CompMoveBlock:        Bool(false),
	CompPursuit:          Bool(true),
	CompReservedLineFlag: Bool(true),
	CompRespawn:          Bool(false),
	CompTexWidthClamp:    TexWidthClampValue(TexWidthClampSolidWallsOnly),
	CompThingFloorLight:  Bool(true),
	CompVoodooScroller:   Bool(false),
}, BetaEmulation, ClassicBFG, CompInfCheat, Monkeys)

// Tiers are matched by equality. Bugfixed has no recorded table.
var defaultsByTier = [executableCount]defaultTable{
	Doom1_9:       vanillaDefaults,
	LimitRemoving: vanillaDefaults,
	Boom2_02:      boomDefaults,
	CompLevel9:    boomDefaults,
	MBF:           mbfDefaults,
	MBF21:         modernDefaults,
	MBF21EX:       modernDefaults,
	ID24:          modernDefaults,
}

// DefaultFor returns the value o takes by default under tier. The second
// result is false when no default is recorded for that exact tier.
func (o CompOption) DefaultFor(tier Executable) (Value, bool) {
	if !o.Valid() || !tier.Valid() {
		return Value{}, false
	}
	v, ok := defaultsByTier[tier][o]
	return v, ok
}

// DefaultValue is DefaultFor for a tier that may be undeclared. A nil tier
// never yields a default.
func DefaultValue(o CompOption, tier *Executable) (Value, bool) {
	if tier == nil {
		return Value{}, false
	}
	return o.DefaultFor(*tier)
}

// Defaults returns a set holding every default recorded for tier.
func Defaults(tier Executable) *Options {
	o := NewOptions()
	for _, opt := range CompOptions() {
		o.Add(opt, tier)
	}
	return o
}
