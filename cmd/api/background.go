package main

import (
	"context"
	"time"
)

func (app *application) runBackgroundJobs() {
	app.sweepWaitlistOffers()
	app.markCompletedSessionsEvery30Mins()
}

// sweepWaitlistOffers expires lapsed offers and pending requests whose slot
// has passed, promoting the next requester where one is queued.
func (app *application) sweepWaitlistOffers() {
	go func() {
		ticker := time.NewTicker(app.config.waitlist.sweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			expired, err := app.waitlist.ExpireDue(context.Background())
			if err != nil {
				app.logger.Errorf("Error sweeping waitlist offers: %v", err)
				continue
			}
			if expired > 0 {
				app.logger.Infof("Expired %d waitlist requests at %s", expired, time.Now().Format(time.RFC1123))
			}
		}
	}()
}

func (app *application) markCompletedSessionsEvery30Mins() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		// Run once immediately
		app.markCompletedSessions()

		// Then run every 30 minutes
		for range ticker.C {
			app.markCompletedSessions()
		}
	}()
}

func (app *application) markCompletedSessions() {
	count, err := app.store.Sessions.MarkCompletedSessions(context.Background())
	if err != nil {
		app.logger.Errorf("Error marking sessions as completed: %v", err)
		return
	}
	if count > 0 {
		app.logger.Infof("Marked %d sessions as completed at %s", count, time.Now().Format(time.RFC1123))
	}
}
