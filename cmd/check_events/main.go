package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-service/internal/app/outbox/queries/list_events"
	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/repo/spannerrepo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database := flag.String("database", cfg.Storage.SpannerDatabase, "Spanner database")
	eventType := flag.String("type", "", "Only events of this type, e.g. order.placed")
	aggregateID := flag.String("aggregate", "", "Only events for this aggregate ID")
	status := flag.String("status", "", "pending, completed or failed")
	limit := flag.Int("limit", 10, "Maximum number of events")
	flag.Parse()

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, *database)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer client.Close()

	events, err := list_events.NewQuery(spannerrepo.NewStore(client)).Execute(ctx, &list_events.Request{
		EventType:   *eventType,
		AggregateID: *aggregateID,
		Status:      *status,
		Limit:       *limit,
	})
	if err != nil {
		log.Fatalf("Failed to list events: %v", err)
	}

	if len(events) == 0 {
		fmt.Println("No events found!")
		return
	}

	fmt.Println("Events in outbox_events table:")
	for i, e := range events {
		fmt.Printf("%d. %s - %s (aggregate: %s, status: %s, retries: %d)\n",
			i+1, e.EventType, e.EventID, e.AggregateID, e.Status, e.RetryCount)
		if e.ErrorMessage != "" {
			fmt.Printf("   last error: %s\n", e.ErrorMessage)
		}
	}
	fmt.Printf("\nTotal: %d events\n", len(events))
}
