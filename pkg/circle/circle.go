// Package circle normalizes the many spellings of a telecom circle name that
// appear in HR exports, CSV uploads and mobile clients into one canonical code.
package circle

import (
	"sort"
	"strings"
	"unicode"
)

// Circle is the canonical code of a telecom administrative circle
type Circle string

const (
	AndamanNicobar  Circle = "ANDAMAN_NICOBAR"
	AndhraPradesh   Circle = "ANDHRA_PRADESH"
	Assam           Circle = "ASSAM"
	Bihar           Circle = "BIHAR"
	Chennai         Circle = "CHENNAI"
	Chhattisgarh    Circle = "CHHATTISGARH"
	Gujarat         Circle = "GUJARAT"
	Haryana         Circle = "HARYANA"
	HimachalPradesh Circle = "HIMACHAL_PRADESH"
	JammuKashmir    Circle = "JAMMU_KASHMIR"
	Jharkhand       Circle = "JHARKHAND"
	Karnataka       Circle = "KARNATAKA"
	Kerala          Circle = "KERALA"
	Kolkata         Circle = "KOLKATA"
	MadhyaPradesh   Circle = "MADHYA_PRADESH"
	Maharashtra     Circle = "MAHARASHTRA"
	NorthEast1      Circle = "NORTH_EAST_1"
	NorthEast2      Circle = "NORTH_EAST_2"
	Odisha          Circle = "ODISHA"
	Punjab          Circle = "PUNJAB"
	Rajasthan       Circle = "RAJASTHAN"
	TamilNadu       Circle = "TAMIL_NADU"
	Telangana       Circle = "TELANGANA"
	UPEast          Circle = "UP_EAST"
	UPWest          Circle = "UP_WEST"
	Uttarakhand     Circle = "UTTARAKHAND"
	WestBengal      Circle = "WEST_BENGAL"
)

// aliases maps every accepted spelling to its circle. Keys are written the way
// they show up in source data; they are folded with key() when the index is built.
var aliases = map[string]Circle{
	// Andaman & Nicobar
	"ANDAMAN_NICOBAR":           AndamanNicobar,
	"Andaman & Nicobar":         AndamanNicobar,
	"Andaman and Nicobar":       AndamanNicobar,
	"Andaman & Nicobar Islands": AndamanNicobar,
	"Andaman/Nicobar":           AndamanNicobar,
	"Andaman":                   AndamanNicobar,
	"A&N":                       AndamanNicobar,
	"ANI":                       AndamanNicobar,
	"Port Blair":                AndamanNicobar,

	// Andhra Pradesh
	"ANDHRA_PRADESH": AndhraPradesh,
	"Andhra Pradesh": AndhraPradesh,
	"Andhra":         AndhraPradesh,
	"AP":             AndhraPradesh,
	"A.P.":           AndhraPradesh,

	// Assam
	"ASSAM": Assam,
	"AS":    Assam,
	"ASM":   Assam,

	// Bihar
	"BIHAR": Bihar,
	"BR":    Bihar,
	"BH":    Bihar,

	// Chennai telephones
	"CHENNAI":            Chennai,
	"Chennai Telephones": Chennai,
	"CHTD":               Chennai,
	"Madras":             Chennai,

	// Chhattisgarh
	"CHHATTISGARH": Chhattisgarh,
	"Chattisgarh":  Chhattisgarh,
	"Chhatisgarh":  Chhattisgarh,
	"CG":           Chhattisgarh,
	"CT":           Chhattisgarh,

	// Gujarat
	"GUJARAT": Gujarat,
	"Gujrat":  Gujarat,
	"GJ":      Gujarat,

	// Haryana
	"HARYANA": Haryana,
	"HR":      Haryana,

	// Himachal Pradesh
	"HIMACHAL_PRADESH": HimachalPradesh,
	"Himachal Pradesh": HimachalPradesh,
	"Himachal":         HimachalPradesh,
	"HP":               HimachalPradesh,
	"H.P.":             HimachalPradesh,

	// Jammu & Kashmir
	"JAMMU_KASHMIR":     JammuKashmir,
	"Jammu & Kashmir":   JammuKashmir,
	"Jammu and Kashmir": JammuKashmir,
	"Jammu Kashmir":     JammuKashmir,
	"J&K":               JammuKashmir,
	"JK":                JammuKashmir,
	"JNK":               JammuKashmir,

	// Jharkhand
	"JHARKHAND": Jharkhand,
	"Jharkhnad": Jharkhand,
	"JH":        Jharkhand,
	"JHK":       Jharkhand,

	// Karnataka
	"KARNATAKA": Karnataka,
	"Karnatak":  Karnataka,
	"Mysore":    Karnataka,
	"KA":        Karnataka,
	"KTK":       Karnataka,

	// Kerala
	"KERALA": Kerala,
	"KL":     Kerala,
	"KRL":    Kerala,

	// Kolkata telephones
	"KOLKATA":             Kolkata,
	"Calcutta":            Kolkata,
	"Calcutta Telephones": Kolkata,
	"Kolkata Telephones":  Kolkata,
	"CTD":                 Kolkata,
	"KOL":                 Kolkata,

	// Madhya Pradesh
	"MADHYA_PRADESH": MadhyaPradesh,
	"Madhya Pradesh": MadhyaPradesh,
	"MP":             MadhyaPradesh,
	"M.P.":           MadhyaPradesh,

	// Maharashtra
	"MAHARASHTRA": Maharashtra,
	"Maharastra":  Maharashtra,
	"MH":          Maharashtra,
	"MAH":         Maharashtra,

	// North East I
	"NORTH_EAST_1": NorthEast1,
	"North East 1": NorthEast1,
	"North East I": NorthEast1,
	"North-East-I": NorthEast1,
	"NE-I":         NorthEast1,
	"NE I":         NorthEast1,
	"NE1":          NorthEast1,
	"NE-1":         NorthEast1,
	"Meghalaya":    NorthEast1,
	"Shillong":     NorthEast1,

	// North East II
	"NORTH_EAST_2":  NorthEast2,
	"North East 2":  NorthEast2,
	"North East II": NorthEast2,
	"North-East-II": NorthEast2,
	"NE-II":         NorthEast2,
	"NE II":         NorthEast2,
	"NE2":           NorthEast2,
	"NE-2":          NorthEast2,
	"Dimapur":       NorthEast2,

	// Odisha
	"ODISHA": Odisha,
	"Orissa": Odisha,
	"OD":     Odisha,
	"OR":     Odisha,
	"ORS":    Odisha,

	// Punjab
	"PUNJAB": Punjab,
	"PB":     Punjab,
	"PUN":    Punjab,

	// Rajasthan
	"RAJASTHAN": Rajasthan,
	"Rajsthan":  Rajasthan,
	"RJ":        Rajasthan,
	"RAJ":       Rajasthan,

	// Tamil Nadu
	"TAMIL_NADU": TamilNadu,
	"Tamil Nadu": TamilNadu,
	"Tamilnadu":  TamilNadu,
	"TN":         TamilNadu,
	"T.N.":       TamilNadu,

	// Telangana
	"TELANGANA": Telangana,
	"Telengana": Telangana,
	"TS":        Telangana,
	"TG":        Telangana,
	"Hyderabad": Telangana,

	// Uttar Pradesh East
	"UP_EAST":              UPEast,
	"UP East":              UPEast,
	"UP(E)":                UPEast,
	"UPE":                  UPEast,
	"U.P. East":            UPEast,
	"Uttar Pradesh East":   UPEast,
	"Uttar Pradesh (East)": UPEast,
	"Lucknow":              UPEast,

	// Uttar Pradesh West
	"UP_WEST":              UPWest,
	"UP West":              UPWest,
	"UP(W)":                UPWest,
	"UPW":                  UPWest,
	"U.P. West":            UPWest,
	"Uttar Pradesh West":   UPWest,
	"Uttar Pradesh (West)": UPWest,
	"Meerut":               UPWest,

	// Uttarakhand
	"UTTARAKHAND": Uttarakhand,
	"Uttaranchal": Uttarakhand,
	"Uttrakhand":  Uttarakhand,
	"UK":          Uttarakhand,
	"UA":          Uttarakhand,
	"Dehradun":    Uttarakhand,

	// West Bengal
	"WEST_BENGAL": WestBengal,
	"West Bengal": WestBengal,
	"W.B.":        WestBengal,
	"WB":          WestBengal,
	"Bengal":      WestBengal,
}

var index = buildIndex()

func buildIndex() map[string]Circle {
	idx := make(map[string]Circle, len(aliases))
	for alias, c := range aliases {
		idx[key(alias)] = c
	}
	return idx
}

// key folds a raw circle name into its lookup form: upper case, "&" spelled
// out as AND, everything that is not a letter or digit removed, and a trailing
// "CIRCLE" suffix dropped.
func key(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "&", " AND ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	k := b.String()
	k = strings.TrimPrefix(k, "BSNL")
	k = strings.TrimSuffix(k, "TELECOMCIRCLE")
	k = strings.TrimSuffix(k, "CIRCLE")
	return k
}

// Normalize maps a raw circle name to its canonical code.
// The second return value is false when the name is not recognised.
func Normalize(raw string) (Circle, bool) {
	k := key(raw)
	if k == "" {
		return "", false
	}
	c, ok := index[k]
	return c, ok
}

// MustNormalize is Normalize for static inputs; it panics on unknown names.
func MustNormalize(raw string) Circle {
	c, ok := Normalize(raw)
	if !ok {
		panic("circle: unknown circle " + raw)
	}
	return c
}

// IsValid reports whether raw names a known circle
func IsValid(raw string) bool {
	_, ok := Normalize(raw)
	return ok
}

// All returns every canonical circle, sorted
func All() []Circle {
	seen := make(map[Circle]struct{})
	for _, c := range aliases {
		seen[c] = struct{}{}
	}
	out := make([]Circle, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Aliases returns a copy of the alias table
func Aliases() map[string]Circle {
	out := make(map[string]Circle, len(aliases))
	for k, v := range aliases {
		out[k] = v
	}
	return out
}

func (c Circle) String() string {
	return string(c)
}
