package compat

import (
	"fmt"

	"github.com/vovanwin/id24json/pkg/types"
)

// CompOption names one compatibility option. Constants are declared in
// ascending wire-name order, so ordinal order is also name order.
type CompOption uint8

const (
	AllowPushers CompOption = iota
	BetaEmulation
	ClassicBFG
	Comp666
	CompBlazing
	CompClipMasked
	CompDoorLight
	CompDoorStuck
	CompDropoff
	CompFalloff
	CompFloors
	CompFriendlySpawn
	CompGod
	CompInfCheat
	CompLedgeBlock
	CompMaskedAnim
	CompModel
	CompMoveBlock
	CompPain
	CompPursuit
	CompReservedLineFlag
	CompRespawn
	CompSkull
	CompSkymap
	CompSoul
	CompStairs
	CompStayLift
	CompTelefrag
	CompTexWidthClamp
	CompThingFloorLight
	CompVile
	CompVoodooScroller
	CompZeroTags
	CompZombie
	DogJumping
	FriendDistance
	HelpFriends
	Monkeys
	MonsterAvoidHazards
	MonsterBacking
	MonsterFriction
	MonsterInfighting
	MonstersRemember
	PlayerHelpers
	VariableFriction
	WeaponRecoil

	optionCount = int(WeaponRecoil) + 1
)

const (
	// MaxPlayerHelpers bounds player_helpers.
	MaxPlayerHelpers = 3
	// MaxFriendDistance bounds friend_distance.
	MaxFriendDistance = 999
)

type optionInfo struct {
	name   string
	kind   types.Kind
	min    Executable
	max    Executable
	intMax uint16
	short  string
	long   string
}

// catalog is the single source of option metadata. Adding an option means
// adding a constant above, a row here and, if it has defaults, entries in
// defaults.go.
var catalog = [optionCount]optionInfo{
	AllowPushers: {
		name: "allow_pushers", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Enable pushers and pullers",
		long:  "Point pushers, pullers and current/wind sector effects are active.",
	},
	BetaEmulation: {
		name: "beta_emulation", kind: types.KindBool, min: MBF, max: MBF,
		short: "Emulate the Doom press release beta",
		long:  "Reproduces the pre-release beta's weapons, items and sprites.",
	},
	ClassicBFG: {
		name: "classic_bfg", kind: types.KindBool, min: MBF, max: MBF,
		short: "Use the classic BFG",
		long:  "Selects the original BFG behavior instead of MBF's alternative modes.",
	},
	Comp666: {
		name: "comp_666", kind: types.KindBool, min: Doom1_9, max: ID24,
		short: "Emulate pre-Ultimate boss death behavior",
		long:  "Tag 666 triggers fire on every boss map regardless of the boss type, as before Ultimate Doom.",
	},
	CompBlazing: {
		name: "comp_blazing", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Blazing doors make double closing sounds",
		long:  "Fast doors play their closing sound twice when they are reactivated.",
	},
	CompClipMasked: {
		name: "comp_clipmasked", kind: types.KindClipMasked, min: Doom1_9, max: ID24,
		short: "Masked midtexture clipping",
		long:  "Selects which masked midtextures are clipped to the floor and ceiling of their sectors.",
	},
	CompDoorLight: {
		name: "comp_doorlight", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Tagged doors don't trigger special lighting",
		long:  "Doors do not gradually change the light level of tagged sectors while moving.",
	},
	CompDoorStuck: {
		name: "comp_doorstuck", kind: types.KindBool, min: MBF, max: ID24,
		short: "Monsters get stuck on doortracks",
		long:  "Monsters standing on a door track are not pushed out of the way of a closing door.",
	},
	CompDropoff: {
		name: "comp_dropoff", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Some objects never move over tall ledges",
		long:  "Monsters and thrown objects never walk or get pushed off tall ledges.",
	},
	CompFalloff: {
		name: "comp_falloff", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Objects don't fall off ledges under their own weight",
		long:  "Corpses and items hanging over a ledge stay in place instead of sliding off.",
	},
	CompFloors: {
		name: "comp_floors", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Use exactly Doom's floor motion behavior",
		long:  "Floors and ceilings move through obstacles the way the original engine lets them.",
	},
	CompFriendlySpawn: {
		name: "comp_friendlyspawn", kind: types.KindBool, min: MBF21, max: ID24,
		short: "Spawned things don't inherit friendliness",
		long:  "Things created by A_Spawn do not inherit the friend flag of their spawner.",
	},
	CompGod: {
		name: "comp_god", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "God mode isn't absolute",
		long:  "Telefrags and other instant-death damage still kill a player in god mode.",
	},
	CompInfCheat: {
		name: "comp_infcheat", kind: types.KindBool, min: MBF, max: MBF,
		short: "Powerup cheats are not infinite duration",
		long:  "Powerups granted by cheats expire like their pickup counterparts.",
	},
	CompLedgeBlock: {
		name: "comp_ledgeblock", kind: types.KindBool, min: MBF21, max: ID24,
		short: "Ledges block ground enemies",
		long:  "Ground monsters are blocked by ledges they could not step down from.",
	},
	CompMaskedAnim: {
		name: "comp_maskedanim", kind: types.KindBool, min: Doom1_9, max: ID24,
		short: "Masked midtextures don't animate",
		long:  "Animated textures used as masked midtextures on two-sided lines stay on their first frame.",
	},
	CompModel: {
		name: "comp_model", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Use exactly Doom's linedef trigger model",
		long:  "Linedef triggers follow the original activation model instead of the generalized one.",
	},
	CompMoveBlock: {
		name: "comp_moveblock", kind: types.KindBool, min: MBF21, max: ID24,
		short: "Emulate vanilla movement clipping",
		long:  "Reproduces the original blockmap movement clipping, including its bugs.",
	},
	CompPain: {
		name: "comp_pain", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Pain elementals limited to 21 lost souls",
		long:  "A pain elemental stops spawning lost souls once 21 are alive on the map.",
	},
	CompPursuit: {
		name: "comp_pursuit", kind: types.KindBool, min: MBF, max: ID24,
		short: "Monsters don't give up pursuit of targets",
		long:  "Monsters keep chasing their current target instead of retargeting when attacked.",
	},
	CompReservedLineFlag: {
		name: "comp_reservedlineflag", kind: types.KindBool, min: MBF21, max: ID24,
		short: "Reserved linedef flag clears extended flags",
		long:  "A set reserved linedef flag clears all extended linedef flags, as older tools expect.",
	},
	CompRespawn: {
		name: "comp_respawn", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Creatures with no spawn point respawn at (0,0)",
		long:  "Monsters created after map load respawn at the map origin on nightmare or -respawn.",
	},
	CompSkull: {
		name: "comp_skull", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Lost souls get stuck behind walls",
		long:  "Lost souls spawned by pain elementals may appear behind walls.",
	},
	CompSkymap: {
		name: "comp_skymap", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Don't apply invulnerability to the sky",
		long:  "The invulnerability colormap is not applied to sky textures.",
	},
	CompSoul: {
		name: "comp_soul", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Lost souls don't bounce off flat surfaces",
		long:  "Charging lost souls stop at floors and ceilings instead of bouncing.",
	},
	CompStairs: {
		name: "comp_stairs", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Use exactly Doom's stairbuilding method",
		long:  "Stair builders follow the original sector-walking algorithm, including its bugs.",
	},
	CompStayLift: {
		name: "comp_staylift", kind: types.KindBool, min: MBF, max: ID24,
		short: "Monsters randomly walk off of moving lifts",
		long:  "Monsters do not try to stay on a lift while it is moving.",
	},
	CompTelefrag: {
		name: "comp_telefrag", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Any monster can telefrag on MAP30",
		long:  "Every monster teleporting on MAP30 kills whatever it lands on.",
	},
	CompTexWidthClamp: {
		name: "comp_texwidthclamp", kind: types.KindTexWidthClamp, min: Doom1_9, max: ID24,
		short: "Texture width clamping",
		long:  "Selects which textures have their width clamped to a power of two when tiled.",
	},
	CompThingFloorLight: {
		name: "comp_thingfloorlight", kind: types.KindBool, min: Doom1_9, max: ID24,
		short: "Things are lit by their floor sector",
		long:  "Things take the light level of the sector under their feet rather than their origin sector.",
	},
	CompVile: {
		name: "comp_vile", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Arch-viles can create ghosts",
		long:  "Resurrecting a crushed corpse creates an unshootable ghost monster.",
	},
	CompVoodooScroller: {
		name: "comp_voodooscroller", kind: types.KindBool, min: MBF21, max: ID24,
		short: "Voodoo dolls on slow scrollers move too slowly",
		long:  "Voodoo dolls on scrolling floors move at the reduced speed of older engines.",
	},
	CompZeroTags: {
		name: "comp_zerotags", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Linedef effects work with sector tag 0",
		long:  "Tagged linedef specials act on every sector with tag 0 when their own tag is 0.",
	},
	CompZombie: {
		name: "comp_zombie", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Dead players can exit levels",
		long:  "A dead player's voodoo doll or corpse can still trigger exit lines.",
	},
	DogJumping: {
		name: "dog_jumping", kind: types.KindBool, min: MBF, max: ID24,
		short: "Helper dogs can jump down",
		long:  "Helper dogs are allowed to jump down from ledges to follow the player.",
	},
	FriendDistance: {
		name: "friend_distance", kind: types.KindInt, min: MBF, max: ID24, intMax: MaxFriendDistance,
		short: "Friend following distance",
		long:  "Distance friendly monsters try to keep from the player, in map units.",
	},
	HelpFriends: {
		name: "help_friends", kind: types.KindBool, min: MBF, max: ID24,
		short: "Monsters help dying friends",
		long:  "Friendly monsters back off to help friends that are low on health.",
	},
	Monkeys: {
		name: "monkeys", kind: types.KindBool, min: MBF, max: MBF,
		short: "Monsters climb steep stairs",
		long:  "Monsters may climb stairs steeper than the player can.",
	},
	MonsterAvoidHazards: {
		name: "monster_avoid_hazards", kind: types.KindBool, min: MBF, max: ID24,
		short: "Monsters avoid hazards",
		long:  "Monsters move away from crushing ceilings and similar hazards.",
	},
	MonsterBacking: {
		name: "monster_backing", kind: types.KindBool, min: MBF, max: ID24,
		short: "Ranged monsters back away from melee",
		long:  "Monsters with ranged attacks retreat from enemies attacking in melee.",
	},
	MonsterFriction: {
		name: "monster_friction", kind: types.KindBool, min: MBF, max: ID24,
		short: "Monsters are affected by friction",
		long:  "Ice and mud sector friction applies to monsters as well as players.",
	},
	MonsterInfighting: {
		name: "monster_infighting", kind: types.KindBool, min: MBF, max: ID24,
		short: "Monsters fight each other",
		long:  "Monsters retaliate against other monsters that hurt them.",
	},
	MonstersRemember: {
		name: "monsters_remember", kind: types.KindBool, min: MBF, max: ID24,
		short: "Monsters remember previous enemies",
		long:  "After killing a target a monster returns to the enemy it was fighting before.",
	},
	PlayerHelpers: {
		name: "player_helpers", kind: types.KindInt, min: MBF, max: ID24, intMax: MaxPlayerHelpers,
		short: "Number of helper dogs",
		long:  "Number of friendly helper dogs spawned with each player.",
	},
	VariableFriction: {
		name: "variable_friction", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Enable variable friction",
		long:  "Sector friction effects such as ice and mud are active.",
	},
	WeaponRecoil: {
		name: "weapon_recoil", kind: types.KindBool, min: Boom2_02, max: ID24,
		short: "Weapons have recoil",
		long:  "Firing a weapon pushes the player backwards.",
	},
}

var optionsByName = func() map[string]CompOption {
	m := make(map[string]CompOption, optionCount)
	for i := range catalog {
		m[catalog[i].name] = CompOption(i)
	}
	return m
}()

// CompOptions returns every catalog option in name order.
func CompOptions() []CompOption {
	out := make([]CompOption, optionCount)
	for i := range out {
		out[i] = CompOption(i)
	}
	return out
}

// LegalOptions returns the options recognized by tier, in name order.
func LegalOptions(tier Executable) []CompOption {
	var out []CompOption
	for i := range optionCount {
		if opt := CompOption(i); opt.LegalFor(tier) {
			out = append(out, opt)
		}
	}
	return out
}

// ParseCompOption looks up an option by its exact wire name.
func ParseCompOption(name string) (CompOption, error) {
	opt, ok := optionsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOption, name)
	}
	return opt, nil
}

func (o CompOption) Valid() bool { return int(o) < optionCount }

func (o CompOption) info() optionInfo {
	if !o.Valid() {
		return optionInfo{}
	}
	return catalog[o]
}

// Name is the wire name.
func (o CompOption) Name() string { return o.info().name }

func (o CompOption) String() string {
	if !o.Valid() {
		return fmt.Sprintf("compoption(%d)", uint8(o))
	}
	return catalog[o].name
}

func (o CompOption) Kind() types.Kind        { return o.info().kind }
func (o CompOption) MinTier() Executable     { return o.info().min }
func (o CompOption) MaxTier() Executable     { return o.info().max }
func (o CompOption) IntMax() uint16          { return o.info().intMax }
func (o CompOption) Description() string     { return o.info().short }
func (o CompOption) LongDescription() string { return o.info().long }

// LegalFor reports whether tier lies within the option's tier range.
func (o CompOption) LegalFor(tier Executable) bool {
	if !o.Valid() || !tier.Valid() {
		return false
	}
	info := catalog[o]
	return info.min <= tier && tier <= info.max
}

func (o CompOption) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOption, uint8(o))
	}
	return []byte(catalog[o].name), nil
}

func (o *CompOption) UnmarshalText(text []byte) error {
	v, err := ParseCompOption(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
