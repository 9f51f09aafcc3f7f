// Package naming derives the names of the breeding hierarchy
// crossing → lot → cultivar → plant group → plant (or tree), checks the
// name formats and detects name collisions across entity kinds.
package naming

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind is a level of the breeding hierarchy.
type Kind int

const (
	Crossing Kind = iota
	Lot
	Cultivar
	PlantGroup
	Plant
	Tree
)

func (k Kind) String() string {
	switch k {
	case Crossing:
		return "crossing"
	case Lot:
		return "lot"
	case Cultivar:
		return "cultivar"
	case PlantGroup:
		return "plant_group"
	case Plant:
		return "plant"
	case Tree:
		return "tree"
	default:
		return "unknown"
	}
}

// Separator joins name segments of a full name.
const Separator = "."

// OverrideMaxLength is the longest allowed name override.
const OverrideMaxLength = 45

var (
	crossingNameRe = regexp.MustCompile(`^[-_\w]{1,8}$`)
	lotSegmentRe   = regexp.MustCompile(`^\d{2}[A-Z]$`)
	segmentRe      = regexp.MustCompile(`^[-_\w]{1,25}$`)
)

// JoinName builds a full name from a parent full name and a segment.
func JoinName(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + Separator + segment
}

// DisplayName is the override if present, the full name otherwise.
func DisplayName(fullName string, override *string) string {
	if override != nil {
		return *override
	}
	return fullName
}

// ValidateCrossingName trims and checks the name of a crossing.
func ValidateCrossingName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", RequiredError(Crossing, "name")
	}
	if !crossingNameRe.MatchString(name) {
		return "", FormatError(Crossing, "name", name)
	}
	return name, nil
}

// ValidateSegment trims and checks the name segment of a lot, cultivar or
// plant group.
func ValidateSegment(kind Kind, segment string) (string, error) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "", RequiredError(kind, "name_segment")
	}
	re := segmentRe
	if kind == Lot {
		re = lotSegmentRe
	}
	if !re.MatchString(segment) {
		return "", FormatError(kind, "name_segment", segment)
	}
	return segment, nil
}

// NormalizeOverride trims an override. Blank overrides become nil.
func NormalizeOverride(kind Kind, override *string) (*string, error) {
	if override == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*override)
	if s == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(s) > OverrideMaxLength {
		return nil, LengthError(kind, "name_override", OverrideMaxLength)
	}
	if strings.Trim(s, Separator) == "" {
		return nil, FormatError(kind, "name_override", s)
	}
	return &s, nil
}
