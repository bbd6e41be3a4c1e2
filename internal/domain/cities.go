package domain

import "strings"

// KnownCities — список основных городов Туниса для нормализации.
var KnownCities = []string{
	"Tunis", "Sfax", "Sousse", "Kairouan", "Bizerte",
	"Gabès", "Ariana", "Gafsa", "Monastir", "Ben Arous",
	"La Marsa", "Kasserine", "Médenine", "Nabeul", "Hammamet",
	"Tataouine", "Béja", "Jendouba", "El Kef", "Mahdia",
	"Sidi Bouzid", "Tozeur", "Siliana", "Kébili", "Zaghouan",
	"La Goulette", "Carthage", "Djerba", "Manouba",
}

// cityAliases — частые варианты написания, приводимые к каноническому виду.
var cityAliases = map[string]string{
	"tunis city":  "Tunis",
	"grand tunis": "Tunis",
	"gabes":       "Gabès",
	"medenine":    "Médenine",
	"beja":        "Béja",
	"kebili":      "Kébili",
	"el-kef":      "El Kef",
	"le kef":      "El Kef",
	"houmt souk":  "Djerba",
	"jerba":       "Djerba",
}

// NormalizeCity приводит название города к единому виду: известные
// варианты написания — к каноническому, остальные — с заглавной буквы.
func NormalizeCity(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return ""
	}

	lower := strings.ToLower(city)
	if canonical, ok := cityAliases[lower]; ok {
		return canonical
	}
	for _, known := range KnownCities {
		if strings.EqualFold(known, city) {
			return known
		}
	}

	runes := []rune(city)
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

// CitiesMatch проверяет, совпадают ли два города с учётом нормализации.
func CitiesMatch(city1, city2 string) bool {
	if city1 == "" || city2 == "" {
		return false
	}
	return strings.EqualFold(NormalizeCity(city1), NormalizeCity(city2))
}
