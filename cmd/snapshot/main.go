// Record a daily portfolio value snapshot for every user.
//
// Run this from cron once a day.
package main

import (
	"fmt"
	"os"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/env"
	"github.com/birikio/birikio/internal/portfolio"
	"github.com/birikio/birikio/internal/snapshot"
	"github.com/birikio/birikio/internal/store"
	"github.com/birikio/birikio/pkg/log"
)

func run() error {
	conn, err := database.Connect()

	if err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	defer conn.Close()

	snapshotConn, err := snapshot.Connect()

	if err != nil {
		return fmt.Errorf("snapshot connection error: %w", err)
	}

	defer snapshotConn.Close()

	if err := snapshotConn.EnsureTable(); err != nil {
		return fmt.Errorf("snapshot table error: %w", err)
	}

	s := store.New(conn)
	userIDList, err := s.ListUserIDs()

	if err != nil {
		return err
	}

	for _, userID := range userIDList {
		assetList, err := s.ListAssets(userID, store.AssetFilter{})

		if err != nil {
			return err
		}

		summary := portfolio.Summarize(assetList)
		sliceList := portfolio.Breakdown(assetList)

		if err := snapshotConn.Record(userID, summary, sliceList); err != nil {
			return err
		}

		log.Infof("recorded snapshot for user %d", userID)
	}

	return nil
}

func main() {
	env.LoadEnvironmentVariables()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
