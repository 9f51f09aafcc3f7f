package breeding

import "strings"

// Kind is a record kind. Its value is the table name.
type Kind string

const (
	Crossings         Kind = "crossings"
	Lots              Kind = "lots"
	Cultivars         Kind = "cultivars"
	PlantGroups       Kind = "plant_groups"
	Plants            Kind = "plants"
	Trees             Kind = "trees"
	Pollen            Kind = "pollen"
	MotherPlants      Kind = "mother_plants"
	MotherTrees       Kind = "mother_trees"
	Attributes        Kind = "attributes"
	AttributionForms  Kind = "attribution_forms"
	Attributions      Kind = "attributions"
	AttributionValues Kind = "attribution_values"
	Marks             Kind = "marks"
	MarkValues        Kind = "mark_values"
)

// Kinds lists every record kind.
var Kinds = []Kind{
	Crossings, Lots, Cultivars, PlantGroups, Plants, Trees,
	Pollen, MotherPlants, MotherTrees,
	Attributes, AttributionForms, Attributions, AttributionValues,
	Marks, MarkValues,
}

var singular = map[Kind]string{
	Crossings:         "crossing",
	Lots:              "lot",
	Cultivars:         "cultivar",
	PlantGroups:       "plant_group",
	Plants:            "plant",
	Trees:             "tree",
	Pollen:            "pollen",
	MotherPlants:      "mother_plant",
	MotherTrees:       "mother_tree",
	Attributes:        "attribute",
	AttributionForms:  "attribution_form",
	Attributions:      "attribution",
	AttributionValues: "attribution_value",
	Marks:             "mark",
	MarkValues:        "mark_value",
}

// Name is the singular name of the kind used in messages.
func (k Kind) Name() string {
	if s, ok := singular[k]; ok {
		return s
	}
	return string(k)
}

// ParseKind converts a table name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := singular[k]; ok {
		return k, nil
	}
	return "", UnknownKindError(s)
}
