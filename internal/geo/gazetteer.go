// Package geo holds the static reference table of named hotspots used for
// fuzzy name resolution and midpoint candidate generation.
package geo

import (
	"strings"

	"github.com/meetspot/backend/internal/domain/entities"
)

// Hotspot is one gazetteer entry: a named transit hub or district.
type Hotspot struct {
	Name     string
	Location entities.Location
}

// Table iteration order is significant: ResolveFuzzy returns the first
// matching entry and midpoint candidate ties break in table order.
var hotspots = []Hotspot{
	{"Tokyo", entities.Location{Latitude: 35.6812, Longitude: 139.7671}},
	{"Shinjuku", entities.Location{Latitude: 35.6896, Longitude: 139.7006}},
	{"Shibuya", entities.Location{Latitude: 35.6580, Longitude: 139.7016}},
	{"Ikebukuro", entities.Location{Latitude: 35.7295, Longitude: 139.7109}},
	{"Ueno", entities.Location{Latitude: 35.7141, Longitude: 139.7774}},
	{"Shinagawa", entities.Location{Latitude: 35.6284, Longitude: 139.7387}},
	{"Akihabara", entities.Location{Latitude: 35.6984, Longitude: 139.7731}},
	{"Ginza", entities.Location{Latitude: 35.6717, Longitude: 139.7650}},
	{"Roppongi", entities.Location{Latitude: 35.6627, Longitude: 139.7313}},
	{"Ebisu", entities.Location{Latitude: 35.6467, Longitude: 139.7101}},
	{"Meguro", entities.Location{Latitude: 35.6340, Longitude: 139.7157}},
	{"Gotanda", entities.Location{Latitude: 35.6262, Longitude: 139.7233}},
	{"Osaki", entities.Location{Latitude: 35.6197, Longitude: 139.7286}},
	{"Tamachi", entities.Location{Latitude: 35.6457, Longitude: 139.7476}},
	{"Hamamatsucho", entities.Location{Latitude: 35.6554, Longitude: 139.7571}},
	{"Shimbashi", entities.Location{Latitude: 35.6662, Longitude: 139.7583}},
	{"Yurakucho", entities.Location{Latitude: 35.6750, Longitude: 139.7630}},
	{"Kanda", entities.Location{Latitude: 35.6918, Longitude: 139.7709}},
	{"Okachimachi", entities.Location{Latitude: 35.7075, Longitude: 139.7747}},
	{"Uguisudani", entities.Location{Latitude: 35.7214, Longitude: 139.7781}},
	{"Nippori", entities.Location{Latitude: 35.7281, Longitude: 139.7707}},
	{"Tabata", entities.Location{Latitude: 35.7381, Longitude: 139.7608}},
	{"Komagome", entities.Location{Latitude: 35.7365, Longitude: 139.7460}},
	{"Sugamo", entities.Location{Latitude: 35.7335, Longitude: 139.7396}},
	{"Otsuka", entities.Location{Latitude: 35.7316, Longitude: 139.7281}},
	{"Mejiro", entities.Location{Latitude: 35.7212, Longitude: 139.7064}},
	{"Takadanobaba", entities.Location{Latitude: 35.7123, Longitude: 139.7030}},
	{"Shin-Okubo", entities.Location{Latitude: 35.7013, Longitude: 139.7000}},
	{"Yoyogi", entities.Location{Latitude: 35.6830, Longitude: 139.7022}},
	{"Harajuku", entities.Location{Latitude: 35.6702, Longitude: 139.7027}},
	{"Daikanyama", entities.Location{Latitude: 35.6485, Longitude: 139.7031}},
	{"Nakameguro", entities.Location{Latitude: 35.6441, Longitude: 139.6993}},
	{"Jiyugaoka", entities.Location{Latitude: 35.6077, Longitude: 139.6690}},
	{"Futako-Tamagawa", entities.Location{Latitude: 35.6118, Longitude: 139.6265}},
	{"Sangenjaya", entities.Location{Latitude: 35.6435, Longitude: 139.6692}},
	{"Shimokitazawa", entities.Location{Latitude: 35.6613, Longitude: 139.6681}},
	{"Kichijoji", entities.Location{Latitude: 35.7033, Longitude: 139.5797}},
	{"Mitaka", entities.Location{Latitude: 35.7028, Longitude: 139.5610}},
	{"Nakano", entities.Location{Latitude: 35.7065, Longitude: 139.6657}},
	{"Koenji", entities.Location{Latitude: 35.7052, Longitude: 139.6498}},
	{"Asagaya", entities.Location{Latitude: 35.7048, Longitude: 139.6357}},
	{"Ogikubo", entities.Location{Latitude: 35.7046, Longitude: 139.6200}},
	{"Asakusa", entities.Location{Latitude: 35.7119, Longitude: 139.7983}},
	{"Oshiage", entities.Location{Latitude: 35.7107, Longitude: 139.8130}},
	{"Kinshicho", entities.Location{Latitude: 35.6967, Longitude: 139.8143}},
	{"Ryogoku", entities.Location{Latitude: 35.6961, Longitude: 139.7927}},
	{"Monzen-Nakacho", entities.Location{Latitude: 35.6717, Longitude: 139.7954}},
	{"Toyosu", entities.Location{Latitude: 35.6550, Longitude: 139.7963}},
	{"Odaiba", entities.Location{Latitude: 35.6251, Longitude: 139.7756}},
	{"Kachidoki", entities.Location{Latitude: 35.6590, Longitude: 139.7768}},
	{"Tsukiji", entities.Location{Latitude: 35.6654, Longitude: 139.7707}},
	{"Nihombashi", entities.Location{Latitude: 35.6813, Longitude: 139.7744}},
	{"Otemachi", entities.Location{Latitude: 35.6876, Longitude: 139.7645}},
	{"Jimbocho", entities.Location{Latitude: 35.6959, Longitude: 139.7576}},
	{"Iidabashi", entities.Location{Latitude: 35.7020, Longitude: 139.7448}},
	{"Kagurazaka", entities.Location{Latitude: 35.7028, Longitude: 139.7400}},
	{"Yotsuya", entities.Location{Latitude: 35.6860, Longitude: 139.7301}},
	{"Ichigaya", entities.Location{Latitude: 35.6918, Longitude: 139.7355}},
	{"Akasaka", entities.Location{Latitude: 35.6735, Longitude: 139.7366}},
	{"Toranomon", entities.Location{Latitude: 35.6691, Longitude: 139.7496}},
	{"Kamiyacho", entities.Location{Latitude: 35.6630, Longitude: 139.7450}},
	{"Azabu-Juban", entities.Location{Latitude: 35.6565, Longitude: 139.7360}},
	{"Hiroo", entities.Location{Latitude: 35.6520, Longitude: 139.7221}},
	{"Omotesando", entities.Location{Latitude: 35.6652, Longitude: 139.7124}},
	{"Gaiemmae", entities.Location{Latitude: 35.6706, Longitude: 139.7177}},
	{"Aoyama-Itchome", entities.Location{Latitude: 35.6727, Longitude: 139.7240}},
	{"Ochanomizu", entities.Location{Latitude: 35.6993, Longitude: 139.7649}},
	{"Suidobashi", entities.Location{Latitude: 35.7020, Longitude: 139.7530}},
	{"Korakuen", entities.Location{Latitude: 35.7075, Longitude: 139.7510}},
	{"Hongo-Sanchome", entities.Location{Latitude: 35.7074, Longitude: 139.7600}},
	{"Nezu", entities.Location{Latitude: 35.7184, Longitude: 139.7660}},
	{"Sendagi", entities.Location{Latitude: 35.7258, Longitude: 139.7640}},
	{"Waseda", entities.Location{Latitude: 35.7054, Longitude: 139.7204}},
	{"Edogawabashi", entities.Location{Latitude: 35.7115, Longitude: 139.7338}},
	{"Myogadani", entities.Location{Latitude: 35.7173, Longitude: 139.7430}},
	{"Itabashi", entities.Location{Latitude: 35.7456, Longitude: 139.7197}},
	{"Akabane", entities.Location{Latitude: 35.7781, Longitude: 139.7209}},
	{"Oji", entities.Location{Latitude: 35.7528, Longitude: 139.7389}},
	{"Kita-Senju", entities.Location{Latitude: 35.7497, Longitude: 139.8049}},
	{"Machiya", entities.Location{Latitude: 35.7421, Longitude: 139.7809}},
	{"Kameido", entities.Location{Latitude: 35.6973, Longitude: 139.8268}},
	{"Shin-Koiwa", entities.Location{Latitude: 35.7169, Longitude: 139.8582}},
	{"Kasai", entities.Location{Latitude: 35.6635, Longitude: 139.8727}},
	{"Funabori", entities.Location{Latitude: 35.6842, Longitude: 139.8642}},
	{"Oimachi", entities.Location{Latitude: 35.6063, Longitude: 139.7340}},
	{"Omori", entities.Location{Latitude: 35.5884, Longitude: 139.7281}},
	{"Kamata", entities.Location{Latitude: 35.5622, Longitude: 139.7161}},
	{"Haneda", entities.Location{Latitude: 35.5494, Longitude: 139.7798}},
	{"Musashi-Kosugi", entities.Location{Latitude: 35.5766, Longitude: 139.6597}},
	{"Kawasaki", entities.Location{Latitude: 35.5308, Longitude: 139.6970}},
	{"Yokohama", entities.Location{Latitude: 35.4658, Longitude: 139.6223}},
	{"Kikuna", entities.Location{Latitude: 35.5097, Longitude: 139.6305}},
	{"Shin-Yokohama", entities.Location{Latitude: 35.5070, Longitude: 139.6172}},
	{"Machida", entities.Location{Latitude: 35.5419, Longitude: 139.4454}},
	{"Tachikawa", entities.Location{Latitude: 35.6977, Longitude: 139.4137}},
	{"Kokubunji", entities.Location{Latitude: 35.7005, Longitude: 139.4804}},
	{"Chofu", entities.Location{Latitude: 35.6518, Longitude: 139.5441}},
	{"Shimokita", entities.Location{Latitude: 35.6614, Longitude: 139.6669}},
	{"Omiya", entities.Location{Latitude: 35.9063, Longitude: 139.6238}},
	{"Urawa", entities.Location{Latitude: 35.8587, Longitude: 139.6566}},
	{"Kawaguchi", entities.Location{Latitude: 35.8019, Longitude: 139.7220}},
	{"Matsudo", entities.Location{Latitude: 35.7844, Longitude: 139.9009}},
	{"Kashiwa", entities.Location{Latitude: 35.8622, Longitude: 139.9709}},
	{"Funabashi", entities.Location{Latitude: 35.7019, Longitude: 139.9855}},
	{"Nishi-Funabashi", entities.Location{Latitude: 35.7072, Longitude: 139.9591}},
	{"Ichikawa", entities.Location{Latitude: 35.7285, Longitude: 139.9087}},
	{"Urayasu", entities.Location{Latitude: 35.6650, Longitude: 139.8944}},
	{"Maihama", entities.Location{Latitude: 35.6361, Longitude: 139.8853}},
	{"Chiba", entities.Location{Latitude: 35.6132, Longitude: 140.1133}},
}

// DefaultCenter returns the first table entry's coordinate (Tokyo Station),
// the center used when a request resolves no coordinates at all.
func DefaultCenter() entities.Location {
	return hotspots[0].Location
}

// ResolveFuzzy returns the coordinate of the first hotspot whose name
// appears as a substring of text, case-insensitively. First match wins;
// callers must not assume nearest-match semantics from this path.
func ResolveFuzzy(text string) (entities.Location, bool) {
	lowered := strings.ToLower(text)
	for _, h := range hotspots {
		if strings.Contains(lowered, strings.ToLower(h.Name)) {
			return h.Location, true
		}
	}
	return entities.Location{}, false
}

// NearestName returns the name of the hotspot closest to loc in squared
// degree-space. Label generation only; not distance-accurate.
func NearestName(loc entities.Location) string {
	best := hotspots[0]
	bestDist := loc.SqDegreesTo(best.Location)
	for _, h := range hotspots[1:] {
		if d := loc.SqDegreesTo(h.Location); d < bestDist {
			best = h
			bestDist = d
		}
	}
	return best.Name
}

// NearestN returns the n hotspots closest to loc, nearest first. Ties keep
// table order.
func NearestN(loc entities.Location, n int) []Hotspot {
	type scored struct {
		h Hotspot
		d float64
	}
	all := make([]scored, len(hotspots))
	for i, h := range hotspots {
		all[i] = scored{h: h, d: loc.SqDegreesTo(h.Location)}
	}
	// Insertion sort keeps the selection stable for equal distances.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j].d < all[j-1].d; j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}
	if n > len(all) {
		n = len(all)
	}
	out := make([]Hotspot, n)
	for i := 0; i < n; i++ {
		out[i] = all[i].h
	}
	return out
}

// Size returns the number of gazetteer entries.
func Size() int {
	return len(hotspots)
}
