package gpu

import (
	"strconv"
	"strings"
)

// Architecture family names as shown after the GPU name.
const (
	ArchKepler    = "Kepler"
	ArchMaxwell   = "Maxwell"
	ArchPascal    = "Pascal"
	ArchVolta     = "Volta"
	ArchTuring    = "Turing"
	ArchAmpere    = "Ampere"
	ArchAda       = "Ada"
	ArchHopper    = "Hopper"
	ArchBlackwell = "Blackwell"
	ArchUnknown   = "Unknown"
)

// ArchitectureFromComputeCap maps a CUDA compute capability such as "8.6"
// to its architecture family. An empty capability yields "".
func ArchitectureFromComputeCap(cc string) string {
	cc = strings.TrimSpace(cc)
	if cc == "" {
		return ""
	}

	majorStr, minorStr, _ := strings.Cut(cc, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return ArchUnknown
	}
	minor, _ := strconv.Atoi(minorStr)

	switch {
	case major == 3:
		return ArchKepler
	case major == 5:
		return ArchMaxwell
	case major == 6:
		return ArchPascal
	case major == 7 && minor < 5:
		return ArchVolta
	case major == 7:
		return ArchTuring
	case major == 8 && minor == 9:
		return ArchAda
	case major == 8:
		return ArchAmpere
	case major == 9:
		return ArchHopper
	case major == 10 || major == 12:
		return ArchBlackwell
	default:
		return ArchUnknown
	}
}
