// Command funnelsim walks a scripted booking conversation in the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/GautamArjun/packrat-demo/internal/app/bootstrap"
	appconfig "github.com/GautamArjun/packrat-demo/internal/config"
	"github.com/GautamArjun/packrat-demo/internal/conversation"
	"github.com/GautamArjun/packrat-demo/pkg/logging"
)

type step struct {
	name string
	fn   func() (conversation.Result, error)
}

type script struct {
	Origin      string
	Destination string
	Rooms       string
	Inventory   map[string]int
	AddOns      []string
	Name        string
	Email       string
	Phone       string
}

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	s := script{Name: "Jordan Lee", Email: "jordan@example.com", Phone: "555-010-2030"}
	var addOns, items string
	scale := flag.Float64("scale", 0, "typing delay scale (0 = instant, 1 = widget pacing)")
	flag.StringVar(&s.Origin, "origin", "30301", "origin ZIP")
	flag.StringVar(&s.Destination, "dest", "10001", "destination ZIP")
	flag.StringVar(&s.Rooms, "rooms", "2 bedroom apartment", "room description; ignored when -items is set")
	flag.StringVar(&items, "items", "", "inventory counts, e.g. sofa=1,queen-bed=2")
	flag.StringVar(&addOns, "addons", "packing-kit", "comma separated add-on ids")
	flag.Parse()

	var err error
	if s.Inventory, err = parseItems(items); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	s.AddOns = splitList(addOns)
	cfg.TypingDelayScale = *scale

	logger := logging.New(cfg.LogLevel)
	if err := run(context.Background(), os.Stdout, cfg, s, logger); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, cfg *appconfig.Config, s script, logger *logging.Logger) error {
	cat, err := bootstrap.BuildCatalog(cfg)
	if err != nil {
		return err
	}
	registry := bootstrap.BuildRegistry(cfg, cat, nil, nil, logger)
	sess := registry.Create()
	sess.Subscribe(printer(out))

	steps := []step{
		{"start", func() (conversation.Result, error) { return sess.Start(ctx) }},
		{"begin", func() (conversation.Result, error) { return sess.SendText(ctx, "Let's get started") }},
		{"zip", func() (conversation.Result, error) { return sess.SubmitZip(ctx, s.Origin, s.Destination) }},
		{"dates", func() (conversation.Result, error) { return sess.SendText(ctx, "Show me the calendar") }},
		{"date", func() (conversation.Result, error) { return sess.SendText(ctx, pickDate(sess)) }},
	}
	if len(s.Inventory) > 0 {
		est, err := cat.EstimateInventory(s.Inventory)
		if err != nil {
			return err
		}
		steps = append(steps,
			step{"method", func() (conversation.Result, error) { return sess.SendText(ctx, "Use the inventory estimator") }},
			step{"inventory", func() (conversation.Result, error) {
				return sess.CompleteInventory(ctx, est.Recommendation, est.TotalUnits)
			}},
		)
	} else {
		steps = append(steps,
			step{"method", func() (conversation.Result, error) { return sess.SendText(ctx, "Quick estimate is fine") }},
			step{"size", func() (conversation.Result, error) { return sess.SendText(ctx, s.Rooms) }},
		)
	}
	steps = append(steps,
		step{"reveal", func() (conversation.Result, error) { return sess.SendText(ctx, "Show me the quote") }},
		step{"select", func() (conversation.Result, error) {
			snap := sess.Snapshot()
			id := ""
			if snap.Offer != nil {
				id = snap.Offer.ID
			}
			return sess.SelectOffer(ctx, id)
		}},
		step{"addons", func() (conversation.Result, error) { return sess.SendText(ctx, "Sure, show me") }},
		step{"pick", func() (conversation.Result, error) { return sess.CompleteAddOns(ctx, s.AddOns) }},
		step{"confirm", func() (conversation.Result, error) { return sess.SendText(ctx, "Yes, proceed") }},
		step{"contact", func() (conversation.Result, error) { return sess.SubmitContact(ctx, s.Name, s.Email, s.Phone) }},
	)

	for _, st := range steps {
		if _, err := st.fn(); err != nil {
			return fmt.Errorf("funnelsim: step %s: %w", st.name, err)
		}
	}

	snap := sess.Snapshot()
	fmt.Fprintf(out, "\nfinal state %s, quote %s, %d messages\n", snap.State, snap.QuoteID, len(snap.Messages))
	return nil
}

func printer(out io.Writer) conversation.Listener {
	return func(_ context.Context, u conversation.Update) {
		switch u.Kind {
		case conversation.UpdateMessage:
			who := "packrat"
			if u.Message.Role == conversation.RoleUser {
				who = "you"
			}
			fmt.Fprintf(out, "%-8s [%s] %s\n", who, u.Message.Type, u.Message.Content)
		case conversation.UpdateState:
			fmt.Fprintf(out, "         -- %s -> %s\n", u.From, u.State)
		}
	}
}

func pickDate(sess *conversation.Session) string {
	dates := sess.Snapshot().AvailableDates
	if len(dates) == 0 {
		return "as soon as possible"
	}
	d, err := time.Parse(time.DateOnly, dates[0])
	if err != nil {
		return dates[0]
	}
	return d.Format("Monday, January 2, 2006")
}

func parseItems(raw string) (map[string]int, error) {
	items := map[string]int{}
	for _, pair := range splitList(raw) {
		id, count, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("funnelsim: bad item %q, want id=count", pair)
		}
		var n int
		if _, err := fmt.Sscanf(count, "%d", &n); err != nil {
			return nil, fmt.Errorf("funnelsim: bad count for %q: %w", id, err)
		}
		items[strings.TrimSpace(id)] = n
	}
	return items, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
