// Package advisor answers the three-question style quiz (occasion, fit,
// fabric) with a suit recommendation.
package advisor

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrIncomplete is returned when a question was left unanswered.
var ErrIncomplete = errors.New("advisor: occasion, fit and fabric are required")

type Selections struct {
	Occasion string `json:"occasion"`
	Fit      string `json:"fit"`
	Fabric   string `json:"fabric"`
}

type Recommendation struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	BestFor     string          `json:"bestFor"`
	Fit         string          `json:"fit"`
	Fabric      string          `json:"fabric"`
}

type suit struct {
	name        string
	description string
	image       string
	price       int64
}

var (
	executiveSlim = suit{
		name:        "Executive Slim Fit",
		description: "A sharp, modern silhouette perfect for the boardroom. Features a tapered waist, higher armholes, and narrow lapels for a contemporary professional look.",
		image:       "black.jpg",
		price:       1295,
	}
	boardroomClassic = suit{
		name:        "Boardroom Classic",
		description: "Timeless traditional fit with structured shoulders and a comfortable drape. The gold standard for conservative business environments.",
		image:       "blue.jpg",
		price:       1195,
	}
	directorModern = suit{
		name:        "Director Modern Fit",
		description: "Balanced proportions with a slightly shaped waist. Ideal for executives who want a polished look with contemporary details.",
		image:       "grey.jpg",
		price:       1350,
	}
	tuxedo = suit{
		name:        "Tuxedo Collection",
		description: "Our finest formalwear with satin lapel facings and jetted pockets. Perfect for the groom or wedding guests seeking timeless elegance.",
		image:       "charcoal.png",
		price:       1495,
	}
	midnightVelvet = suit{
		name:        "Midnight Velvet",
		description: "Luxury black velvet dinner jacket with peak lapels. Makes a bold statement at any evening affair.",
		image:       "suit.jpg",
		price:       1650,
	}
	cocktailBlazer = suit{
		name:        "Cocktail Hour Blazer",
		description: "Slim-fit unstructured blazer with minimal padding for effortless style at social gatherings.",
		image:       "excutive.jpg",
		price:       895,
	}
)

func pick(occasion, fit string) suit {
	switch occasion {
	case "formal":
		switch fit {
		case "slim":
			return executiveSlim
		case "classic":
			return boardroomClassic
		default:
			return directorModern
		}
	case "wedding":
		return tuxedo
	case "evening":
		return midnightVelvet
	default:
		return cocktailBlazer
	}
}

// Recommend maps the quiz answers to a suit. Fabric adjusts the price:
// cashmere adds 200, linen takes off 100.
func Recommend(sel Selections) (Recommendation, error) {
	occasion := strings.ToLower(strings.TrimSpace(sel.Occasion))
	fit := strings.ToLower(strings.TrimSpace(sel.Fit))
	fabric := strings.ToLower(strings.TrimSpace(sel.Fabric))
	if occasion == "" || fit == "" || fabric == "" {
		return Recommendation{}, ErrIncomplete
	}

	s := pick(occasion, fit)
	price := s.price
	description := s.description
	switch fabric {
	case "cashmere":
		price += 200
		description += " Crafted from our premium cashmere-wool blend for exceptional softness and drape."
	case "linen":
		price -= 100
		description += " Made with our lightweight linen-wool blend for superior breathability."
	default:
		description += " Constructed from our signature Super 150s wool for year-round comfort."
	}

	return Recommendation{
		Name:        s.name,
		Description: description,
		Image:       s.image,
		Price:       decimal.NewFromInt(price),
		BestFor:     capitalize(occasion) + " events",
		Fit:         capitalize(fit),
		Fabric:      capitalize(fabric),
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
