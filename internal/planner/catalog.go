package planner

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Swatch binds a subject name to a display colour.
type Swatch struct {
	Subject string `json:"subject" yaml:"subject"`
	Color   string `json:"color" yaml:"color"`
}

// Catalog carries the reference data the engine reads while placing classes.
type Catalog struct {
	Days          []string `json:"days"`
	Rooms         []string `json:"rooms"`
	Palette       []Swatch `json:"palette"`
	HeavyKeywords []string `json:"heavyKeywords"`
	PeriodLabels  []string `json:"periodLabels"`
	Teachers      []string `json:"teachers"`
}

// DefaultCatalog returns the reference pools used by the planning office.
func DefaultCatalog() Catalog {
	return Catalog{
		Days: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		Rooms: []string{
			"101", "102", "103", "104", "105",
			"201", "202", "203",
			"LAB1", "LAB2",
		},
		Palette: []Swatch{
			{Subject: "Mathematics", Color: "#3B82F6"},
			{Subject: "Science", Color: "#10B981"},
			{Subject: "English", Color: "#F97316"},
			{Subject: "Thai Language", Color: "#A855F7"},
			{Subject: "Social Studies", Color: "#EAB308"},
			{Subject: "Physical Education", Color: "#22C55E"},
			{Subject: "Art", Color: "#EC4899"},
			{Subject: "Computing", Color: "#06B6D4"},
		},
		HeavyKeywords: []string{"math", "science", "คณิต", "วิทย"},
		PeriodLabels: []string{
			"Period 1 (08:30-09:20)",
			"Period 2 (09:20-10:10)",
			"Period 3 (10:30-11:20)",
			"Period 4 (11:20-12:10)",
			"Period 5 (13:00-13:50)",
			"Period 6 (13:50-14:40)",
			"Period 7 (14:50-15:40)",
			"Period 8 (15:40-16:30)",
		},
		Teachers: []string{
			"T. Somchai", "T. Somying", "T. Wichai", "T. Pim", "T. Prayut",
			"T. Suda", "T. Mana", "T. Rattana", "T. Weera", "T. Chan",
		},
	}
}

// ActiveDays returns the first n canonical days.
func (c Catalog) ActiveDays(n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n > len(c.Days) {
		n = len(c.Days)
	}
	return c.Days[:n]
}

// Room picks rooms[(seed+period) mod len]. Empty when the catalog has no rooms.
func (c Catalog) Room(seed int64, period int) string {
	if len(c.Rooms) == 0 {
		return ""
	}
	return c.Rooms[positiveMod(seed+int64(period), len(c.Rooms))]
}

// ColorFor looks the subject up in the palette and falls back to a seed-derived swatch.
func (c Catalog) ColorFor(subject string, seed int64) string {
	if swatch, ok := lo.Find(c.Palette, func(s Swatch) bool { return s.Subject == subject }); ok {
		return swatch.Color
	}
	if len(c.Palette) == 0 {
		return ""
	}
	return c.Palette[positiveMod(seed, len(c.Palette))].Color
}

// IsHeavy reports whether the subject name contains a heavy keyword.
func (c Catalog) IsHeavy(subject string) bool {
	return isHeavy(subject, c.HeavyKeywords)
}

// PeriodLabel names period i, falling back to a bare ordinal past the configured labels.
func (c Catalog) PeriodLabel(i int) string {
	if i >= 0 && i < len(c.PeriodLabels) {
		return c.PeriodLabels[i]
	}
	return fmt.Sprintf("Period %d", i+1)
}

func isHeavy(subject string, keywords []string) bool {
	name := strings.ToLower(subject)
	return lo.SomeBy(keywords, func(k string) bool {
		k = strings.ToLower(strings.TrimSpace(k))
		return k != "" && strings.Contains(name, k)
	})
}

func positiveMod(v int64, n int) int {
	m := v % int64(n)
	if m < 0 {
		m += int64(n)
	}
	return int(m)
}

// WithOverrides replaces the room pool and heavy keywords when the given lists are non-empty.
func (c Catalog) WithOverrides(rooms, heavyKeywords []string) Catalog {
	if len(rooms) > 0 {
		c.Rooms = append([]string(nil), rooms...)
	}
	if len(heavyKeywords) > 0 {
		c.HeavyKeywords = append([]string(nil), heavyKeywords...)
	}
	return c
}
