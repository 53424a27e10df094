// assess_rfq runs the full multi-analysis assessment for one RFQ from the
// command line and prints the aggregated result.
//
// Usage: assess_rfq <rfq-id>
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/samuel/fed-rfq/internal/ai"
	"github.com/samuel/fed-rfq/internal/assessment"
	"github.com/samuel/fed-rfq/internal/db"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: assess_rfq <rfq-id>")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := db.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	store := db.NewStore(pool)

	rfq, err := store.GetRFQ(ctx, os.Args[1])
	if err != nil {
		log.Fatalf("RFQ not found: %v", err)
	}

	ollamaHost := os.Getenv("OLLAMA_HOST")
	if ollamaHost == "" {
		ollamaHost = "http://localhost:11434"
	}
	client := ai.NewOllamaClient(ollamaHost, "", os.Getenv("OLLAMA_GEN_MODEL"))

	log.Printf("Assessing RFQ: %s", rfq.Title)
	overall, err := assessment.AssessRFQ(ctx, client, *rfq)
	if err != nil {
		log.Fatalf("Assessment failed: %v", err)
	}

	if err := store.SaveAssessment(ctx, rfq.ID, overall.OverallScore, overall.ReadinessLevel, overall.CriticalIssueCount, overall); err != nil {
		log.Printf("Warning: failed to persist assessment: %v", err)
	}

	fmt.Printf("\nOverall: %d/100  Readiness: %s  Critical issues: %d\n\n",
		overall.OverallScore, overall.ReadinessLevel, overall.CriticalIssueCount)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Area", "Priority", "Impact"})
	for _, p := range overall.ImprovementPriorities {
		t.AppendRow(table.Row{p.Area, p.Priority, p.Impact})
	}
	t.Render()

	if len(overall.RecommendedActions) > 0 {
		fmt.Println("\nRecommended actions:")
		for _, a := range overall.RecommendedActions {
			fmt.Printf("  - %s\n", a)
		}
	}
	if len(overall.StrengthAreas) > 0 {
		fmt.Println("\nStrengths:")
		for _, s := range overall.StrengthAreas {
			fmt.Printf("  - %s\n", s)
		}
	}
}
