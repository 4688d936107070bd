package notify

import (
	"context"
	"sync"
)

// FanOutSummary collects per-recipient delivery results. Failures list
// addresses whose send returned an error; they never abort a fan-out.
type FanOutSummary struct {
	Sent   int
	Failed []string
}

// FanOut delivers one message per recipient with at most maxInFlight sends
// running at a time. A non-positive limit serializes deliveries.
func FanOut(ctx context.Context, mailer Mailer, recipients []Recipient, subject, body string, maxInFlight int) FanOutSummary {
	if maxInFlight <= 0 {
		maxInFlight = 1
	}

	type result struct {
		email string
		err   error
	}

	sem := make(chan struct{}, maxInFlight)
	results := make(chan result, len(recipients))
	var wg sync.WaitGroup

	for _, recipient := range recipients {
		wg.Add(1)
		go func(r Recipient) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results <- result{email: r.Email, err: mailer.Send(ctx, r.Email, subject, body)}
		}(recipient)
	}
	wg.Wait()
	close(results)

	var summary FanOutSummary
	for res := range results {
		if res.err != nil {
			summary.Failed = append(summary.Failed, res.email)
			continue
		}
		summary.Sent++
	}
	return summary
}
