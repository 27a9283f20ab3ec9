// rebuild-balances recomputes the materialized customer_credits rows from
// the immutable transaction log, for one business or all of them.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//	REDIS_ADDRESS=... go run ./cmd/rebuild-balances [--business-id <uuid>]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bsm/redislock"

	"github.com/ekthaa/khata_backend/config"
	"github.com/ekthaa/khata_backend/models"
	"github.com/ekthaa/khata_backend/utils"
)

func main() {
	businessID := flag.String("business-id", "", "Optional: rebuild a single business (uuid); default all")
	flag.Parse()

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	ctx := context.Background()

	var ids []string
	if strings.TrimSpace(*businessID) != "" {
		ids = []string{strings.TrimSpace(*businessID)}
	} else {
		scanCtx := utils.SetSkipTenantScopeInContext(ctx, true)
		var businesses []models.Business
		if err := db.WithContext(scanCtx).Select("id").Find(&businesses).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to list businesses: %v\n", err)
			os.Exit(1)
		}
		for _, b := range businesses {
			ids = append(ids, b.ID.String())
		}
	}

	locker := config.GetRedisLock()
	failed := 0
	for _, id := range ids {
		if err := rebuildOne(ctx, locker, id); err != nil {
			fmt.Fprintf(os.Stderr, "business %s: %v\n", id, err)
			failed++
			continue
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
	fmt.Printf("rebuilt balances for %d business(es)\n", len(ids)-failed)
}

// rebuildOne serializes per business so two rebuilds cannot interleave.
// Without Redis the rebuild still runs; the lock is an optimization.
func rebuildOne(ctx context.Context, locker *redislock.Client, businessId string) error {
	if locker != nil {
		lock, err := locker.Obtain(ctx, "rebuild-balances:"+businessId, 2*time.Minute, nil)
		if err == redislock.ErrNotObtained {
			return fmt.Errorf("another rebuild is already running")
		}
		if err == nil {
			defer func() { _ = lock.Release(ctx) }()
		}
	}

	bizCtx := utils.SetBusinessIdInContext(ctx, businessId)
	rebuilt, err := models.RebuildCustomerCredits(bizCtx)
	if err != nil {
		return err
	}
	fmt.Printf("business %s: %d customer balance(s) rebuilt\n", businessId, rebuilt)
	return nil
}
