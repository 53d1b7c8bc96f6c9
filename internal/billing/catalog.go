package billing

import "strings"

// ItemType identifies a garment that can be billed.
type ItemType string

const (
	ItemShirt       ItemType = "shirt"
	ItemTrouser     ItemType = "trouser"
	ItemSuit        ItemType = "suit"
	ItemDress       ItemType = "dress"
	ItemBlouse      ItemType = "blouse"
	ItemKurta       ItemType = "kurta"
	ItemSareeBlouse ItemType = "saree_blouse"
)

// Garment describes an item type and the measurements taken for it.
type Garment struct {
	Type         ItemType `json:"value"`
	Label        string   `json:"label"`
	Measurements []string `json:"sizes"`
}

var catalog = []Garment{
	{Type: ItemShirt, Label: "Shirt", Measurements: []string{"Chest", "Waist", "Length", "Shoulder", "Sleeve"}},
	{Type: ItemTrouser, Label: "Trouser", Measurements: []string{"Waist", "Length", "Hip", "Thigh", "Bottom"}},
	{Type: ItemSuit, Label: "Suit", Measurements: []string{"Chest", "Waist", "Length", "Shoulder", "Sleeve", "Trouser Waist", "Trouser Length"}},
	{Type: ItemDress, Label: "Dress", Measurements: []string{"Bust", "Waist", "Hip", "Length", "Shoulder"}},
	{Type: ItemBlouse, Label: "Blouse", Measurements: []string{"Bust", "Waist", "Length", "Shoulder", "Sleeve"}},
	{Type: ItemKurta, Label: "Kurta", Measurements: []string{"Chest", "Length", "Shoulder", "Sleeve"}},
	{Type: ItemSareeBlouse, Label: "Saree Blouse", Measurements: []string{"Bust", "Waist", "Length", "Shoulder"}},
}

// Catalog returns a copy of the garment list in display order.
func Catalog() []Garment {
	out := make([]Garment, len(catalog))
	for i, g := range catalog {
		g.Measurements = append([]string(nil), g.Measurements...)
		out[i] = g
	}
	return out
}

// LookupGarment finds a garment by item type, ignoring case and surrounding space.
func LookupGarment(t string) (Garment, bool) {
	key := ItemType(strings.ToLower(strings.TrimSpace(t)))
	for _, g := range catalog {
		if g.Type == key {
			g.Measurements = append([]string(nil), g.Measurements...)
			return g, true
		}
	}
	return Garment{}, false
}

// ValidItemType reports whether t names a catalog garment.
func ValidItemType(t string) bool {
	_, ok := LookupGarment(t)
	return ok
}

// MeasurementLabels returns the labels recorded for an item type, or nil.
func MeasurementLabels(t string) []string {
	g, ok := LookupGarment(t)
	if !ok {
		return nil
	}
	return g.Measurements
}
