// Package refresh runs the background product refresh loop. It is the
// only producer of periodic work in the app: it re-fetches the catalog
// through the product store on an interval, raises trend alerts for
// products that newly started trending, and feeds results to the TUI
// as Bubble Tea messages over a channel.
package refresh

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/nvelasco/trendboard/internal/store"
)

// fetchTimeout is the maximum time allowed for a single refresh cycle.
const fetchTimeout = 30 * time.Second

// ResultMsg is a tea.Msg sent when a refresh cycle completes.
type ResultMsg struct {
	// Err carries the store's error message, empty on success.
	Err string

	// ProductCount is the size of the collection after the cycle.
	ProductCount int

	// NewTrending is how many products newly started trending.
	NewTrending int
}

// Refresher orchestrates periodic product refreshes.
type Refresher struct {
	products      *store.ProductStore
	notifications *store.NotificationStore
	interval      time.Duration

	resultCh  chan ResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu           sync.Mutex
	running      bool
	seenTrending map[string]bool
}

// New creates a Refresher over the two stores. A non-positive interval
// falls back to two minutes.
func New(
	products *store.ProductStore,
	notifications *store.NotificationStore,
	interval time.Duration,
) *Refresher {
	if interval <= 0 {
		interval = 2 * time.Minute
	}
	return &Refresher{
		products:      products,
		notifications: notifications,
		interval:      interval,
		resultCh:      make(chan ResultMsg, 16),
		triggerCh:     make(chan struct{}, 16),
		stopCh:        make(chan struct{}),
		seenTrending:  make(map[string]bool),
	}
}

// Start launches the refresh goroutine and returns a command that waits
// for the first result. Calling Start twice is a no-op.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()

	return r.waitForResult()
}

// Stop halts the refresh goroutine.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	close(r.stopCh)
	r.running = false
}

// Refresh triggers an immediate cycle without waiting for the ticker.
func (r *Refresher) Refresh() tea.Cmd {
	select {
	case r.triggerCh <- struct{}{}:
	default:
		// Channel full; a refresh is already queued.
	}
	return nil
}

// WaitForNextResult returns a command that waits for the next refresh
// result. Call it after processing a ResultMsg to keep listening.
func (r *Refresher) WaitForNextResult() tea.Cmd {
	return r.waitForResult()
}

// loop runs the ticker-driven refresh cycle.
func (r *Refresher) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Initial fetch immediately so the UI has fresh data on startup.
	r.refreshOnce()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.refreshOnce()
		case <-r.triggerCh:
			r.refreshOnce()
		}
	}
}

// refreshOnce performs a single fetch, diffs trending products against
// the previous cycle, and sends a ResultMsg.
func (r *Refresher) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	r.products.FetchProducts(ctx)

	errMsg := r.products.Error()
	if errMsg != "" {
		log.Warn().Str("error", errMsg).Msg("product refresh failed")
		r.sendResult(ResultMsg{Err: errMsg})
		return
	}

	products := r.products.Products()

	newTrending := 0
	r.mu.Lock()
	for _, p := range products {
		if !p.IsTrend {
			delete(r.seenTrending, p.ID)
			continue
		}
		if r.seenTrending[p.ID] {
			continue
		}
		r.seenTrending[p.ID] = true
		newTrending++
		r.notifications.NotifyTrendingProduct(p.Name, p.TrendingPercentage)
	}
	r.mu.Unlock()

	log.Debug().
		Int("products", len(products)).
		Int("new_trending", newTrending).
		Msg("product refresh complete")

	r.sendResult(ResultMsg{
		ProductCount: len(products),
		NewTrending:  newTrending,
	})
}

// sendResult sends a ResultMsg without blocking the refresh goroutine.
func (r *Refresher) sendResult(msg ResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking.
	}
}

// waitForResult returns a command that blocks on the result channel.
func (r *Refresher) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
