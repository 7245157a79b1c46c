package calc

import "fmt"

// Move is a move prepared for one calculation.
type Move struct {
	Name      string
	Type      string
	Category  Category
	BasePower int
	IsCrit    bool
}

// NewMove looks up name and fixes its category for gen.
func (d *Dex) NewMove(gen Gen, name string, crit bool) (*Move, error) {
	m, ok := d.Move(name)
	if !ok {
		return nil, fmt.Errorf("unknown move %q", name)
	}
	return &Move{
		Name:      m.Name,
		Type:      m.Type,
		Category:  gen.category(m),
		BasePower: m.BasePower,
		IsCrit:    crit,
	}, nil
}
