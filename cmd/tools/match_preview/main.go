// match_preview prints the ranked supplier matches for one opportunity,
// the same computation the matches endpoint serves.
//
// Usage: match_preview <opportunity-id> [limit]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/samuel/fed-rfq/internal/db"
	"github.com/samuel/fed-rfq/internal/matching"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: match_preview <opportunity-id> [limit]")
	}
	oppID := os.Args[1]

	limit := 10
	if len(os.Args) > 2 {
		if l, err := strconv.Atoi(os.Args[2]); err == nil && l > 0 {
			limit = l
		}
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	store := db.NewStore(pool)

	opp, err := store.GetOpportunity(ctx, oppID)
	if err != nil {
		log.Fatalf("Opportunity not found: %v", err)
	}

	suppliers, err := store.ListSuppliers(ctx, true)
	if err != nil {
		log.Fatal(err)
	}

	matches := matching.RankSuppliers(*opp, suppliers, matching.NewEstimator(), limit)

	fmt.Printf("%s\nNAICS %s | set-aside %q | %s | est. $%.0f\n\n",
		opp.Title, opp.NaicsCode, opp.SetAside, opp.ContractType, opp.EstimatedValue)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Supplier", "Score", "Est. Price", "Delivery", "Reasoning"})

	for i, m := range matches {
		price := "-"
		if m.EstimatedPrice != nil {
			price = fmt.Sprintf("$%.0f", *m.EstimatedPrice)
		}
		t.AppendRow(table.Row{
			i + 1, m.SupplierName, m.MatchScore, price,
			fmt.Sprintf("%dd", m.EstimatedDeliveryDays),
			strings.Join(m.Reasoning, "; "),
		})
	}
	t.Render()
}
