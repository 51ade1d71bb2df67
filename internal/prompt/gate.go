package prompt

import "strings"

// RefusalMessage is the fixed reply for out-of-domain questions. It is
// returned verbatim, without calling the model or any research source.
const RefusalMessage = "Please ask questions related to agriculture only."

// GreetingReply is the canned welcome for small-talk openers, returned
// without research or a model call.
const GreetingReply = `**Hello! I'm RootSource AI**

Your expert AI assistant for all things farming and agriculture.

**How can I assist you today?**

• Ask about crop management
• Get advice on soil health
• Learn about pest control
• Explore irrigation techniques
• Discover organic farming methods

Feel free to ask me anything related to farming!`

// agricultureTerms are matched as substrings of the lowercased query, so
// "farming", "crops" and "irrigated" all hit. The list errs on the side of
// admitting borderline queries; the model's own instructions are the second
// line of defense.
var agricultureTerms = []string{
	"agricultur", "farm", "crop", "plant", "soil", "seed", "harvest",
	"irrigat", "fertiliz", "fertilis", "pest", "weed", "livestock",
	"cattle", "poultry", "dairy", "garden", "grow", "cultivat", "orchard",
	"vegetable", "fruit", "grain", "wheat", "rice", "maize", "corn",
	"paddy", "yield", "greenhouse", "compost", "organic", "tractor",
	"agronom", "horticultur", "prune", "mulch", "sow", "germinat",
	"plough", "plow", "silage", "fodder", "apiary", "beekeep",
	"aquacultur", "drought", "monsoon", "rain", "weather", "climate",
	"ndvi", "groundwater", "aquifer",
}

var greetingWords = map[string]bool{
	"hi":        true,
	"hello":     true,
	"hey":       true,
	"greetings": true,
	"namaste":   true,
}

// IsAgricultureRelated is the domain gate: a cheap keyword heuristic run
// before any research fan-out or model call.
func IsAgricultureRelated(query string) bool {
	lower := strings.ToLower(query)
	for _, term := range agricultureTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// IsGreeting reports whether the query is small talk that should skip the
// research fan-out entirely. Whole-word match only: "this" must not match
// "hi".
func IsGreeting(query string) bool {
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 || len(fields) > 4 {
		return false
	}
	first := strings.Trim(fields[0], ".,!?")
	return greetingWords[first]
}
