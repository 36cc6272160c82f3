package booking

import (
	"context"
	"log"
	"time"
)

// RunSweeper calls ExpireHolds every interval until ctx is cancelled.
// A non-positive interval disables the sweeper.
func RunSweeper(ctx context.Context, svc Service, interval time.Duration) {
	if interval <= 0 {
		log.Printf("⚠️ hold sweeper disabled: interval %s is not positive", interval)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.ExpireHolds(ctx)
			if err != nil {
				log.Printf("⚠️ hold sweeper: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("hold sweeper: %d booking(s) expired", n)
			}
		}
	}
}
