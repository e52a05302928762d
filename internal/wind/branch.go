package wind

// BranchKind identifies one of the six integrable solution families of the
// isothermal wind equation.
type BranchKind int

const (
	// TransonicWind is the physical solution: subsonic below r_c,
	// accelerating through the sonic point, supersonic beyond.
	TransonicWind BranchKind = iota
	// TransonicAccretion is the unphysical mirror curve, decelerating from
	// supersonic to subsonic across r_c.
	TransonicAccretion
	// SubsonicBreezeLow and SubsonicBreezeHigh stay below v = a everywhere,
	// peaking at r_c.
	SubsonicBreezeLow
	SubsonicBreezeHigh
	// SupersonicLow and SupersonicHigh stay above v = a everywhere, with a
	// minimum at r_c.
	SupersonicLow
	SupersonicHigh

	numBranches = 6
)

// Branches lists every computed branch in canonical order.
var Branches = []BranchKind{
	TransonicWind,
	TransonicAccretion,
	SubsonicBreezeLow,
	SubsonicBreezeHigh,
	SupersonicLow,
	SupersonicHigh,
}

func (b BranchKind) String() string {
	switch b {
	case TransonicWind:
		return "transonic subsonic -> supersonic"
	case TransonicAccretion:
		return "transonic supersonic -> subsonic"
	case SubsonicBreezeLow:
		return "non-transonic subsonic II"
	case SubsonicBreezeHigh:
		return "non-transonic subsonic I"
	case SupersonicLow:
		return "non-transonic supersonic I"
	case SupersonicHigh:
		return "non-transonic supersonic II"
	default:
		return "unknown"
	}
}

// Slug returns a filesystem-safe identifier for the branch.
func (b BranchKind) Slug() string {
	switch b {
	case TransonicWind:
		return "transonic_wind"
	case TransonicAccretion:
		return "transonic_accretion"
	case SubsonicBreezeLow:
		return "subsonic_breeze_low"
	case SubsonicBreezeHigh:
		return "subsonic_breeze_high"
	case SupersonicLow:
		return "supersonic_low"
	case SupersonicHigh:
		return "supersonic_high"
	default:
		return "unknown"
	}
}

// ParseBranch resolves a slug back to its BranchKind.
func ParseBranch(slug string) (BranchKind, bool) {
	for _, b := range Branches {
		if b.Slug() == slug {
			return b, true
		}
	}
	return 0, false
}

// Point is one sample of a solution curve: radial distance and wind speed,
// both in SI units.
type Point struct {
	R float64
	V float64
}

// Solution is one ordered-by-increasing-r solution curve. It is immutable
// once returned by the classifier. Truncated is set when either half-run
// stopped early on a non-finite derivative; the samples up to that point
// are still valid.
type Solution struct {
	Branch    BranchKind
	Points    []Point
	Truncated bool
}
