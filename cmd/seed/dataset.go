package main

import (
	"time"

	"github.com/google/uuid"

	"github.com/trueinsight/reviewtrust/internal/domain"
)

// seedNamespace makes generated IDs stable across runs so re-seeding is a
// no-op.
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://trueinsight.dev/reviewtrust/seed"))

func seedID(kind, key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+"/"+key)).String()
}

// Dataset is the demo catalogue written by the seed command.
type Dataset struct {
	Products []domain.Product
	Reviews  []domain.Review
}

type reviewDef struct {
	product string
	user    string
	rating  int
	text    string
	at      time.Time
}

// BuildDataset returns products and reviews that exercise every scoring
// signal: a duplicate burst from fresh accounts, off-topic reviews, reviewers
// with a long history and a product in a category without explicit rules.
// All timestamps are derived from now.
func BuildDataset(now time.Time) Dataset {
	now = now.UTC().Truncate(time.Minute)
	day := 24 * time.Hour

	products := []struct{ key, name, category string }{
		{"sunscreen", "Ultra SPF 50 Sunscreen", "Sunscreen"},
		{"phone", "Pixel Phone X", "phone"},
		{"hose", "Expandable Garden Hose", "Garden"},
		{"misc", "Assorted Kitchen Goods", "kitchen"},
	}

	var defs []reviewDef

	// Established reviewers build a history on other products first.
	for i, user := range []string{"alice", "bob", "carol"} {
		for d := 0; d < 5+i; d++ {
			defs = append(defs, reviewDef{
				product: "misc", user: user, rating: 4,
				text: "Solid everyday item, does the job.",
				at:   now.Add(-time.Duration(30+d) * day),
			})
		}
	}

	defs = append(defs,
		reviewDef{"sunscreen", "alice", 4, "Absorbs quickly and leaves no white cast.", now.Add(-10 * day)},
		reviewDef{"sunscreen", "bob", 5, "Wore it all day at the beach with no sunburn.", now.Add(-8 * day)},
		reviewDef{"sunscreen", "carol", 3, "Protects well but the scent is strong.", now.Add(-6 * day)},
		reviewDef{"sunscreen", "bob", 2, "The camera app keeps crashing after the update.", now.Add(-5 * day)},
	)

	// A coordinated burst: identical praise from new accounts within a minute.
	burstStart := now.Add(-2 * day)
	for i, user := range []string{"fresh1", "fresh2", "fresh3"} {
		defs = append(defs, reviewDef{
			product: "sunscreen", user: user, rating: 5,
			text: "Amazing product, must buy!!!",
			at:   burstStart.Add(time.Duration(i*20) * time.Second),
		})
	}

	defs = append(defs,
		reviewDef{"phone", "alice", 5, "Battery easily lasts two days and the camera is sharp.", now.Add(-9 * day)},
		reviewDef{"phone", "carol", 4, "Fast processor, but the charger is sold separately.", now.Add(-7 * day)},
		reviewDef{"phone", "fresh4", 1, "This lotion made my skin greasy.", now.Add(-3 * day)},
		reviewDef{"hose", "bob", 4, "Expands to full length and does not kink.", now.Add(-4 * day)},
		reviewDef{"hose", "fresh5", 5, "Best hose ever", now.Add(-1 * day)},
	)

	ds := Dataset{Products: make([]domain.Product, len(products))}
	for i, p := range products {
		ds.Products[i] = domain.Product{ID: seedID("product", p.key), Name: p.name, Category: p.category}
	}
	ds.Reviews = make([]domain.Review, len(defs))
	for i, d := range defs {
		ds.Reviews[i] = domain.Review{
			ID:        seedID("review", d.product+"/"+d.user+"/"+d.at.Format(time.RFC3339)),
			ProductID: seedID("product", d.product),
			UserID:    seedID("user", d.user),
			Rating:    d.rating,
			Text:      d.text,
			CreatedAt: d.at,
		}
	}
	return ds
}
