package recommend

// allergenTokens maps an allergen category to the ingredient tokens that carry it.
var allergenTokens = map[string]Set{
	"milk":   NewSet("milk", "butter", "cream", "cheese", "yogurt"),
	"eggs":   NewSet("egg", "eggs"),
	"nuts":   NewSet("almond", "walnut", "peanut", "cashew"),
	"soy":    NewSet("soy", "tofu", "soy sauce"),
	"gluten": NewSet("flour", "wheat", "bread", "pasta"),
}

// proteinVariants maps a canonical protein to the ingredient tokens that count as it.
var proteinVariants = map[string]Set{
	"beef":    NewSet("beef", "ground beef", "steak", "sirloin"),
	"chicken": NewSet("chicken", "chicken breast", "thigh"),
	"pork":    NewSet("pork", "bacon", "ham"),
	"fish":    NewSet("fish", "salmon", "tuna", "cod"),
	"turkey":  NewSet("turkey", "ground turkey"),
	"eggs":    NewSet("egg", "eggs"),
	"tofu":    NewSet("tofu"),
	"beans":   NewSet("beans", "black beans", "kidney beans"),
	"lentils": NewSet("lentils"),
}

// spiceWeights holds the heat contributed by each spice indicator.
// Matching is by substring, so "chili" also fires inside "chili powder".
var spiceWeights = map[string]float64{
	"jalapeno":     0.6,
	"serrano":      0.7,
	"habanero":     1.0,
	"ghost pepper": 1.0,
	"chili":        0.5,
	"chile":        0.5,
	"chili powder": 0.4,
	"red pepper":   0.4,
	"cayenne":      0.7,
	"hot sauce":    0.6,
	"sriracha":     0.6,
	"gochujang":    0.6,
	"harissa":      0.6,
	"wasabi":       0.5,
	"horseradish":  0.5,
	"kimchi":       0.5,
	"curry paste":  0.5,
}

// spiceOrder fixes the summation order so spice scores are bit-for-bit reproducible.
var spiceOrder = func() []string {
	s := make(Set, len(spiceWeights))
	for k := range spiceWeights {
		s[k] = struct{}{}
	}
	return s.Keys()
}()

// AllergenTokens returns the tokens for an allergen category.
// Unknown categories resolve to an empty set.
func AllergenTokens(category string) Set {
	return allergenTokens[category].Clone()
}

// ProteinVariants returns the tokens that count as the given canonical protein.
func ProteinVariants(protein string) Set {
	return proteinVariants[protein].Clone()
}

// SpiceWeight returns the weight of a spice indicator, or 0 if it is not one.
func SpiceWeight(token string) float64 {
	return spiceWeights[token]
}

// AllergenCategories lists the known allergen categories in sorted order.
func AllergenCategories() []string {
	return sortedKeys(allergenTokens)
}

// ProteinCategories lists the known canonical proteins in sorted order.
func ProteinCategories() []string {
	return sortedKeys(proteinVariants)
}

func sortedKeys(m map[string]Set) []string {
	s := make(Set, len(m))
	for k := range m {
		s[k] = struct{}{}
	}
	return s.Keys()
}
