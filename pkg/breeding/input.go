package breeding

import (
	"encoding/json"
	"time"
)

// Input is the settable part of a record. Derived columns, ids and
// timestamps are not part of any input.
type Input interface {
	Kind() Kind
}

// NewInput returns an empty input of the kind.
func NewInput(k Kind) (Input, error) {
	switch k {
	case Crossings:
		return &CrossingInput{}, nil
	case Lots:
		return &LotInput{}, nil
	case Cultivars:
		return &CultivarInput{}, nil
	case PlantGroups:
		return &PlantGroupInput{}, nil
	case Plants:
		return &PlantInput{}, nil
	case Trees:
		return &TreeInput{}, nil
	case Pollen:
		return &PollenInput{}, nil
	case MotherPlants:
		return &MotherPlantInput{}, nil
	case MotherTrees:
		return &MotherTreeInput{}, nil
	case Attributes:
		return &AttributeInput{}, nil
	case AttributionForms:
		return &AttributionFormInput{}, nil
	case Attributions:
		return &AttributionInput{}, nil
	case AttributionValues:
		return &AttributionValueInput{}, nil
	case Marks:
		return &MarkInput{}, nil
	case MarkValues:
		return &MarkValueInput{}, nil
	}
	return nil, UnknownKindError(string(k))
}

// CrossingInput is the settable part of a crossing. IsVariety is set here
// and copied to every descendant.
type CrossingInput struct {
	Name             string  `json:"name"               mapstructure:"name"`
	IsVariety        bool    `json:"is_variety"         mapstructure:"is_variety"`
	MotherCultivarID *uint   `json:"mother_cultivar_id" mapstructure:"mother_cultivar_id"`
	FatherCultivarID *uint   `json:"father_cultivar_id" mapstructure:"father_cultivar_id"`
	Description      *string `json:"description"        mapstructure:"description"`
}

type LotInput struct {
	CrossingID   uint       `json:"crossing_id"   mapstructure:"crossing_id"`
	NameSegment  string     `json:"name_segment"  mapstructure:"name_segment"`
	NameOverride *string    `json:"name_override" mapstructure:"name_override"`
	OrchardID    *uint      `json:"orchard_id"    mapstructure:"orchard_id"`
	DateSowed    *time.Time `json:"date_sowed"    mapstructure:"date_sowed"`
	Note         *string    `json:"note"          mapstructure:"note"`
}

type CultivarInput struct {
	LotID        uint    `json:"lot_id"        mapstructure:"lot_id"`
	NameSegment  string  `json:"name_segment"  mapstructure:"name_segment"`
	NameOverride *string `json:"name_override" mapstructure:"name_override"`
	Acronym      *string `json:"acronym"       mapstructure:"acronym"`
	Breeder      *string `json:"breeder"       mapstructure:"breeder"`
	Registration *string `json:"registration"  mapstructure:"registration"`
	Note         *string `json:"note"          mapstructure:"note"`
}

type PlantGroupInput struct {
	CultivarID   uint    `json:"cultivar_id"   mapstructure:"cultivar_id"`
	NameSegment  string  `json:"name_segment"  mapstructure:"name_segment"`
	NameOverride *string `json:"name_override" mapstructure:"name_override"`
	Disabled     bool    `json:"disabled"      mapstructure:"disabled"`
	Note         *string `json:"note"          mapstructure:"note"`
}

// PlantInput is the settable part of a plant. Setting DateEliminated
// prefixes the label id with #, clearing it removes the prefix.
type PlantInput struct {
	LabelID        string     `json:"label_id"        mapstructure:"label_id"`
	PlantGroupID   uint       `json:"plant_group_id"  mapstructure:"plant_group_id"`
	DatePlanted    *time.Time `json:"date_planted"    mapstructure:"date_planted"`
	DateEliminated *time.Time `json:"date_eliminated" mapstructure:"date_eliminated"`
	Disabled       bool       `json:"disabled"        mapstructure:"disabled"`
	Note           *string    `json:"note"            mapstructure:"note"`
}

type TreeInput struct {
	LabelID        string     `json:"label_id"        mapstructure:"label_id"`
	CultivarID     uint       `json:"cultivar_id"     mapstructure:"cultivar_id"`
	DatePlanted    *time.Time `json:"date_planted"    mapstructure:"date_planted"`
	DateEliminated *time.Time `json:"date_eliminated" mapstructure:"date_eliminated"`
	Note           *string    `json:"note"            mapstructure:"note"`
}

type PollenInput struct {
	Name          string     `json:"name"           mapstructure:"name"`
	CultivarID    uint       `json:"cultivar_id"    mapstructure:"cultivar_id"`
	DateHarvested *time.Time `json:"date_harvested" mapstructure:"date_harvested"`
	Note          *string    `json:"note"           mapstructure:"note"`
}

type MotherPlantInput struct {
	Name            string     `json:"name"             mapstructure:"name"`
	PlantID         uint       `json:"plant_id"         mapstructure:"plant_id"`
	PollenID        *uint      `json:"pollen_id"        mapstructure:"pollen_id"`
	CrossingID      uint       `json:"crossing_id"      mapstructure:"crossing_id"`
	DateImpregnated *time.Time `json:"date_impregnated" mapstructure:"date_impregnated"`
	NumbFlowers     *int       `json:"numb_flowers"     mapstructure:"numb_flowers"`
	NumbFruits      *int       `json:"numb_fruits"      mapstructure:"numb_fruits"`
	NumbSeeds       *int       `json:"numb_seeds"       mapstructure:"numb_seeds"`
	Note            *string    `json:"note"             mapstructure:"note"`
}

type MotherTreeInput struct {
	Code           string     `json:"code"            mapstructure:"code"`
	TreeID         uint       `json:"tree_id"         mapstructure:"tree_id"`
	CrossingID     uint       `json:"crossing_id"     mapstructure:"crossing_id"`
	DatePollinated *time.Time `json:"date_pollinated" mapstructure:"date_pollinated"`
	NumbFlowers    *int       `json:"numb_flowers"    mapstructure:"numb_flowers"`
	NumbFruits     *int       `json:"numb_fruits"     mapstructure:"numb_fruits"`
	NumbSeeds      *int       `json:"numb_seeds"      mapstructure:"numb_seeds"`
	Note           *string    `json:"note"            mapstructure:"note"`
}

// AttributeInput is an attribute definition. The JSON fields are kept raw
// so that their shape can be checked.
type AttributeInput struct {
	Name           string          `json:"name"            mapstructure:"name"`
	DataType       string          `json:"data_type"       mapstructure:"data_type"`
	AttributeType  string          `json:"attribute_type"  mapstructure:"attribute_type"`
	ValidationRule json.RawMessage `json:"validation_rule" mapstructure:"validation_rule"`
	DefaultValue   json.RawMessage `json:"default_value"   mapstructure:"default_value"`
	Legend         json.RawMessage `json:"legend"          mapstructure:"legend"`
	Description    *string         `json:"description"     mapstructure:"description"`
	Disabled       bool            `json:"disabled"        mapstructure:"disabled"`
}

type AttributionFormInput struct {
	Name        string  `json:"name"        mapstructure:"name"`
	Description *string `json:"description" mapstructure:"description"`
	Disabled    bool    `json:"disabled"    mapstructure:"disabled"`
}

// AttributionInput references exactly one of plant, plant group, cultivar
// or lot.
type AttributionInput struct {
	Author            string    `json:"author"              mapstructure:"author"`
	DateAttributed    time.Time `json:"date_attributed"     mapstructure:"date_attributed"`
	AttributionFormID uint      `json:"attribution_form_id" mapstructure:"attribution_form_id"`
	PlantID           *uint     `json:"plant_id"            mapstructure:"plant_id"`
	PlantGroupID      *uint     `json:"plant_group_id"      mapstructure:"plant_group_id"`
	CultivarID        *uint     `json:"cultivar_id"         mapstructure:"cultivar_id"`
	LotID             *uint     `json:"lot_id"              mapstructure:"lot_id"`
}

// AttributionValueInput carries exactly one typed value.
type AttributionValueInput struct {
	AttributeID   uint       `json:"attribute_id"   mapstructure:"attribute_id"`
	AttributionID uint       `json:"attribution_id" mapstructure:"attribution_id"`
	IntegerValue  *int64     `json:"integer_value"  mapstructure:"integer_value"`
	FloatValue    *float64   `json:"float_value"    mapstructure:"float_value"`
	TextValue     *string    `json:"text_value"     mapstructure:"text_value"`
	BooleanValue  *bool      `json:"boolean_value"  mapstructure:"boolean_value"`
	DateValue     *time.Time `json:"date_value"     mapstructure:"date_value"`
	TextNote      *string    `json:"text_note"      mapstructure:"text_note"`
	PhotoNote     *string    `json:"photo_note"     mapstructure:"photo_note"`
	Exceptional   bool       `json:"exceptional"    mapstructure:"exceptional"`
	OfflineID     *string    `json:"offline_id"     mapstructure:"offline_id"`
}

// MarkInput references exactly one of tree, cultivar or lot.
type MarkInput struct {
	Author     string    `json:"author"      mapstructure:"author"`
	DateMarked time.Time `json:"date_marked" mapstructure:"date_marked"`
	TreeID     *uint     `json:"tree_id"     mapstructure:"tree_id"`
	CultivarID *uint     `json:"cultivar_id" mapstructure:"cultivar_id"`
	LotID      *uint     `json:"lot_id"      mapstructure:"lot_id"`
}

type MarkValueInput struct {
	AttributeID  uint       `json:"attribute_id"  mapstructure:"attribute_id"`
	MarkID       uint       `json:"mark_id"       mapstructure:"mark_id"`
	IntegerValue *int64     `json:"integer_value" mapstructure:"integer_value"`
	FloatValue   *float64   `json:"float_value"   mapstructure:"float_value"`
	TextValue    *string    `json:"text_value"    mapstructure:"text_value"`
	BooleanValue *bool      `json:"boolean_value" mapstructure:"boolean_value"`
	DateValue    *time.Time `json:"date_value"    mapstructure:"date_value"`
	Exceptional  bool       `json:"exceptional"   mapstructure:"exceptional"`
}

func (*CrossingInput) Kind() Kind         { return Crossings }
func (*LotInput) Kind() Kind              { return Lots }
func (*CultivarInput) Kind() Kind         { return Cultivars }
func (*PlantGroupInput) Kind() Kind       { return PlantGroups }
func (*PlantInput) Kind() Kind            { return Plants }
func (*TreeInput) Kind() Kind             { return Trees }
func (*PollenInput) Kind() Kind           { return Pollen }
func (*MotherPlantInput) Kind() Kind      { return MotherPlants }
func (*MotherTreeInput) Kind() Kind       { return MotherTrees }
func (*AttributeInput) Kind() Kind        { return Attributes }
func (*AttributionFormInput) Kind() Kind  { return AttributionForms }
func (*AttributionInput) Kind() Kind      { return Attributions }
func (*AttributionValueInput) Kind() Kind { return AttributionValues }
func (*MarkInput) Kind() Kind             { return Marks }
func (*MarkValueInput) Kind() Kind        { return MarkValues }
