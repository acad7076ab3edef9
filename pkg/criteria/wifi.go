package criteria

import "strings"

// Preset is a named allow-list offered as a single choice.
type Preset struct {
	Name  string
	Value Set
}

// WiFiPresets collapses the raw Wi-Fi tiers advertised by a dataset into the
// three choices the catalog offers: any hotel, hotels with Wi-Fi and hotels
// with free Wi-Fi.
func WiFiPresets(tiers []string) []Preset {
	var exists, free []string
	for _, id := range tiers {
		if !strings.Contains(id, "NONE") {
			exists = append(exists, id)
		}
		if strings.Contains(id, "FREE") {
			free = append(free, id)
		}
	}
	return []Preset{
		{Name: "Все отели", Value: NewSet(tiers...)},
		{Name: "Есть Wi-Fi", Value: NewSet(exists...)},
		{Name: "Бесплатный Wi-Fi", Value: NewSet(free...)},
	}
}

// WithWiFi returns a copy restricted to the preset's tiers.
func (c Criteria) WithWiFi(p Preset) Criteria {
	c.wifi = p.Value
	return c
}
