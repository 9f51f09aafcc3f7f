package iostore

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/ent/naming"
	"github.com/bolliger-tech/breedersdb.com-sub000/pkg/schema"
	"gorm.io/gorm"
)

// cascade recomputes the derived fields of a hierarchy record and of
// everything below it. Rows whose derived fields changed are written, the
// cache rows of the record and of the changed rows are rebuilt.
func (s *store) cascade(tx *gorm.DB, kind naming.Kind, id uint) error {
	root, parent, err := s.loadSubtree(tx, kind, id)
	if err != nil {
		return err
	}

	changed := naming.Cascade(root, parent)
	for _, n := range changed {
		if err := writeDerived(tx, n); err != nil {
			return err
		}
	}
	slog.Debug("Names cascaded",
		"kind", kind.String(), "id", id, "changed", len(changed))

	return s.syncNodes(tx, append(changed, root))
}

// loadSubtree loads the record and its descendants as naming nodes and
// returns the context the record inherits from its stored parent.
func (s *store) loadSubtree(
	tx *gorm.DB,
	kind naming.Kind,
	id uint,
) (*naming.Node, naming.Context, error) {
	root, parent, err := s.loadRoot(tx, kind, id)
	if err != nil {
		return nil, parent, err
	}

	level := map[uint]*naming.Node{id: root}
	if kind == naming.Crossing {
		if level, err = s.attachLots(tx, level); err != nil {
			return nil, parent, err
		}
	}
	if kind <= naming.Lot {
		if level, err = s.attachCultivars(tx, level); err != nil {
			return nil, parent, err
		}
	}
	if kind <= naming.Cultivar {
		if err = s.attachTrees(tx, level); err != nil {
			return nil, parent, err
		}
		if level, err = s.attachPlantGroups(tx, level); err != nil {
			return nil, parent, err
		}
	}
	if kind <= naming.PlantGroup {
		if err = s.attachPlants(tx, level); err != nil {
			return nil, parent, err
		}
	}
	return root, parent, nil
}

func (s *store) loadRoot(
	tx *gorm.DB,
	kind naming.Kind,
	id uint,
) (*naming.Node, naming.Context, error) {
	var parent naming.Context

	switch kind {
	case naming.Crossing:
		c, err := first[schema.Crossing](tx, kindOf(kind), id)
		if err != nil {
			return nil, parent, err
		}
		return crossingNode(c), parent, nil

	case naming.Lot:
		l, err := first[schema.Lot](tx, kindOf(kind), id)
		if err != nil {
			return nil, parent, err
		}
		c, err := first[schema.Crossing](tx, kindOf(naming.Crossing), l.CrossingID)
		if err != nil {
			return nil, parent, err
		}
		parent = naming.Context{FullName: c.Name, IsVariety: c.IsVariety}
		return lotNode(l), parent, nil

	case naming.Cultivar:
		c, err := first[schema.Cultivar](tx, kindOf(kind), id)
		if err != nil {
			return nil, parent, err
		}
		l, err := first[schema.Lot](tx, kindOf(naming.Lot), c.LotID)
		if err != nil {
			return nil, parent, err
		}
		parent = naming.Context{FullName: l.FullName, IsVariety: l.IsVariety}
		return cultivarNode(c), parent, nil

	case naming.PlantGroup:
		g, err := first[schema.PlantGroup](tx, kindOf(kind), id)
		if err != nil {
			return nil, parent, err
		}
		parent, err = cultivarContext(tx, g.CultivarID)
		if err != nil {
			return nil, parent, err
		}
		return plantGroupNode(g), parent, nil

	case naming.Plant:
		p, err := first[schema.Plant](tx, kindOf(kind), id)
		if err != nil {
			return nil, parent, err
		}
		g, err := first[schema.PlantGroup](tx, kindOf(naming.PlantGroup),
			p.PlantGroupID)
		if err != nil {
			return nil, parent, err
		}
		parent = naming.Context{
			FullName:       g.FullName,
			IsVariety:      g.IsVariety,
			CultivarID:     g.CultivarID,
			CultivarName:   g.CultivarName,
			PlantGroupName: g.DisplayName,
		}
		return plantNode(p), parent, nil

	default:
		t, err := first[schema.Tree](tx, kindOf(naming.Tree), id)
		if err != nil {
			return nil, parent, err
		}
		parent, err = cultivarContext(tx, t.CultivarID)
		if err != nil {
			return nil, parent, err
		}
		return treeNode(t), parent, nil
	}
}

func cultivarContext(tx *gorm.DB, id uint) (naming.Context, error) {
	c, err := first[schema.Cultivar](tx, kindOf(naming.Cultivar), id)
	if err != nil {
		return naming.Context{}, err
	}
	return naming.Context{
		FullName:     c.FullName,
		IsVariety:    c.IsVariety,
		CultivarID:   c.ID,
		CultivarName: c.DisplayName,
	}, nil
}

func (s *store) attachLots(
	tx *gorm.DB,
	parents map[uint]*naming.Node,
) (map[uint]*naming.Node, error) {
	rows, err := findIn[schema.Lot](tx, "crossing_id", ids(parents), s.batch)
	if err != nil {
		return nil, err
	}
	res := make(map[uint]*naming.Node, len(rows))
	for i := range rows {
		n := lotNode(&rows[i])
		attach(parents[rows[i].CrossingID], n)
		res[n.ID] = n
	}
	return res, nil
}

func (s *store) attachCultivars(
	tx *gorm.DB,
	parents map[uint]*naming.Node,
) (map[uint]*naming.Node, error) {
	rows, err := findIn[schema.Cultivar](tx, "lot_id", ids(parents), s.batch)
	if err != nil {
		return nil, err
	}
	res := make(map[uint]*naming.Node, len(rows))
	for i := range rows {
		n := cultivarNode(&rows[i])
		attach(parents[rows[i].LotID], n)
		res[n.ID] = n
	}
	return res, nil
}

func (s *store) attachPlantGroups(
	tx *gorm.DB,
	parents map[uint]*naming.Node,
) (map[uint]*naming.Node, error) {
	rows, err := findIn[schema.PlantGroup](tx, "cultivar_id", ids(parents),
		s.batch)
	if err != nil {
		return nil, err
	}
	res := make(map[uint]*naming.Node, len(rows))
	for i := range rows {
		n := plantGroupNode(&rows[i])
		attach(parents[rows[i].CultivarID], n)
		res[n.ID] = n
	}
	return res, nil
}

func (s *store) attachPlants(
	tx *gorm.DB,
	parents map[uint]*naming.Node,
) error {
	rows, err := findIn[schema.Plant](tx, "plant_group_id", ids(parents),
		s.batch)
	if err != nil {
		return err
	}
	for i := range rows {
		attach(parents[rows[i].PlantGroupID], plantNode(&rows[i]))
	}
	return nil
}

func (s *store) attachTrees(
	tx *gorm.DB,
	parents map[uint]*naming.Node,
) error {
	rows, err := findIn[schema.Tree](tx, "cultivar_id", ids(parents), s.batch)
	if err != nil {
		return err
	}
	for i := range rows {
		attach(parents[rows[i].CultivarID], treeNode(&rows[i]))
	}
	return nil
}

func attach(parent, child *naming.Node) {
	if parent != nil {
		parent.Children = append(parent.Children, child)
	}
}

func ids(nodes map[uint]*naming.Node) []uint {
	return slices.Sorted(maps.Keys(nodes))
}

// writeDerived stores the derived fields of a node.
func writeDerived(tx *gorm.DB, n *naming.Node) error {
	var model any
	var fields map[string]any

	switch n.Kind {
	case naming.Lot:
		model = &schema.Lot{}
		fields = map[string]any{
			"full_name":    n.FullName,
			"display_name": n.DisplayName,
			"is_variety":   n.IsVariety,
		}
	case naming.Cultivar:
		model = &schema.Cultivar{}
		fields = map[string]any{
			"full_name":    n.FullName,
			"display_name": n.DisplayName,
			"is_variety":   n.IsVariety,
		}
	case naming.PlantGroup:
		model = &schema.PlantGroup{}
		fields = map[string]any{
			"full_name":     n.FullName,
			"display_name":  n.DisplayName,
			"is_variety":    n.IsVariety,
			"cultivar_name": n.CultivarName,
		}
	case naming.Plant:
		model = &schema.Plant{}
		fields = map[string]any{
			"is_variety":       n.IsVariety,
			"cultivar_id":      n.CultivarID,
			"cultivar_name":    n.CultivarName,
			"plant_group_name": n.PlantGroupName,
		}
	case naming.Tree:
		model = &schema.Tree{}
		fields = map[string]any{
			"cultivar_id":   n.CultivarID,
			"cultivar_name": n.CultivarName,
		}
	default:
		// crossings have no derived columns
		return nil
	}

	err := tx.Model(model).Where("id = ?", n.ID).Updates(fields).Error
	if err != nil {
		return QueryError(err)
	}
	return nil
}

// syncNodes rebuilds the cache rows recorded on the nodes or below them.
func (s *store) syncNodes(tx *gorm.DB, nodes []*naming.Node) error {
	var plants, groups, cultivars, lots []uint
	for _, n := range nodes {
		switch n.Kind {
		case naming.Plant:
			plants = append(plants, n.ID)
		case naming.PlantGroup:
			groups = append(groups, n.ID)
		case naming.Cultivar:
			cultivars = append(cultivars, n.ID)
		case naming.Lot:
			lots = append(lots, n.ID)
		}
	}

	var valueIDs []uint
	for _, v := range []struct {
		column string
		ids    []uint
	}{
		{"plant_id", plants},
		{"combined_plant_group_id", groups},
		{"combined_cultivar_id", cultivars},
		{"combined_lot_id", lots},
	} {
		res, err := pluckIn(tx, &schema.CachedAttribution{}, "id",
			v.column, unique(v.ids), s.batch)
		if err != nil {
			return err
		}
		valueIDs = append(valueIDs, res...)
	}
	return s.syncCache(tx, unique(valueIDs))
}

func crossingNode(c *schema.Crossing) *naming.Node {
	return &naming.Node{
		Kind:        naming.Crossing,
		ID:          c.ID,
		Segment:     c.Name,
		IsVariety:   c.IsVariety,
		FullName:    c.Name,
		DisplayName: c.Name,
	}
}

func lotNode(l *schema.Lot) *naming.Node {
	return &naming.Node{
		Kind:        naming.Lot,
		ID:          l.ID,
		Segment:     l.NameSegment,
		Override:    l.NameOverride,
		IsVariety:   l.IsVariety,
		FullName:    l.FullName,
		DisplayName: l.DisplayName,
	}
}

func cultivarNode(c *schema.Cultivar) *naming.Node {
	return &naming.Node{
		Kind:        naming.Cultivar,
		ID:          c.ID,
		Segment:     c.NameSegment,
		Override:    c.NameOverride,
		IsVariety:   c.IsVariety,
		FullName:    c.FullName,
		DisplayName: c.DisplayName,
	}
}

func plantGroupNode(g *schema.PlantGroup) *naming.Node {
	return &naming.Node{
		Kind:         naming.PlantGroup,
		ID:           g.ID,
		Segment:      g.NameSegment,
		Override:     g.NameOverride,
		IsVariety:    g.IsVariety,
		FullName:     g.FullName,
		DisplayName:  g.DisplayName,
		CultivarID:   g.CultivarID,
		CultivarName: g.CultivarName,
	}
}

func plantNode(p *schema.Plant) *naming.Node {
	return &naming.Node{
		Kind:           naming.Plant,
		ID:             p.ID,
		IsVariety:      p.IsVariety,
		CultivarID:     p.CultivarID,
		CultivarName:   p.CultivarName,
		PlantGroupName: p.PlantGroupName,
	}
}

func treeNode(t *schema.Tree) *naming.Node {
	return &naming.Node{
		Kind:         naming.Tree,
		ID:           t.ID,
		CultivarID:   t.CultivarID,
		CultivarName: t.CultivarName,
	}
}
