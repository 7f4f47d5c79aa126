package recommend

// PastryPreference is the tri-state pastry constraint of an intent.
type PastryPreference int

const (
	PastryIgnore PastryPreference = iota
	PastryRequire
	PastryForbid
)

// Coverage controls how the desired ingredients must appear in a recipe.
type Coverage int

const (
	// CoverageLoose requires at least one desired ingredient.
	CoverageLoose Coverage = iota
	// CoverageStrict requires every desired ingredient.
	CoverageStrict
)

// DefaultK is the number of recommendations returned when none is requested.
const DefaultK = 3

// Intent is the request-scoped description of what the user wants.
type Intent struct {
	Ingredients     Set
	Allergens       Set
	Pastry          PastryPreference
	MaxIngredients  int
	MaxCookTime     int
	Spice           float64
	ProteinRequired bool
	Coverage        Coverage
	K               int
}

// Predicate is one hard constraint over a recipe's metadata.
type Predicate func(m Metadata, i Intent) bool

// PastryMatches enforces the pastry flag unless it is ignored.
func PastryMatches(m Metadata, i Intent) bool {
	switch i.Pastry {
	case PastryRequire:
		return m.Pastry
	case PastryForbid:
		return !m.Pastry
	default:
		return true
	}
}

// ProteinSatisfied requires a protein when the intent asks for one.
func ProteinSatisfied(m Metadata, i Intent) bool {
	return !i.ProteinRequired || m.ProteinFilled
}

// WithinIngredientLimit caps the number of distinct ingredients.
func WithinIngredientLimit(m Metadata, i Intent) bool {
	return m.NumIngredients <= i.MaxIngredients
}

// WithinCookTime caps the estimated cook time.
func WithinCookTime(m Metadata, i Intent) bool {
	return m.CookTimeMinutes <= i.MaxCookTime
}

// AllergenFree rejects recipes carrying any blocked allergen.
func AllergenFree(m Metadata, i Intent) bool {
	return !ContainsAllergen(m.Ingredients, i.Allergens)
}

// CoverageSatisfied checks the desired ingredients against the recipe.
func CoverageSatisfied(m Metadata, i Intent) bool {
	if i.Coverage == CoverageStrict {
		return i.Ingredients.SubsetOf(m.Ingredients)
	}
	return i.Ingredients.Intersects(m.Ingredients)
}

// IntentPredicates returns the six hard constraints of an intent.
func IntentPredicates() []Predicate {
	return []Predicate{
		PastryMatches,
		ProteinSatisfied,
		WithinIngredientLimit,
		WithinCookTime,
		AllergenFree,
		CoverageSatisfied,
	}
}

// All combines predicates into one that holds when every predicate holds.
func All(preds ...Predicate) Predicate {
	return func(m Metadata, i Intent) bool {
		for _, p := range preds {
			if !p(m, i) {
				return false
			}
		}
		return true
	}
}

// Passes reports whether a recipe's metadata satisfies every intent constraint.
func Passes(m Metadata, i Intent) bool {
	return All(IntentPredicates()...)(m, i)
}

// ProteinSetMatches requires the recipe's proteins to equal the user's exactly
// when the user named any protein.
func ProteinSetMatches(userProteins Set) Predicate {
	return func(m Metadata, _ Intent) bool {
		return len(userProteins) == 0 || m.Proteins.Equal(userProteins)
	}
}

// LegalPredicate is the full gate used to build the legal universe.
func LegalPredicate(i Intent) Predicate {
	preds := append(IntentPredicates(), ProteinSetMatches(ExtractProteins(i.Ingredients)))
	return All(preds...)
}

// LegalUniverse keeps the recipes that survive hard filtering, in corpus order.
func LegalUniverse(recipes []Recipe, i Intent) []Recipe {
	legal := LegalPredicate(i)
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if legal(ExtractMetadata(r), i) {
			out = append(out, r)
		}
	}
	return out
}
