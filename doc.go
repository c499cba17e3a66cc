// Package patronage is the subscription and payment-settlement core of
// a content-space platform.
//
// Patronage is designed as a library, not a service. Import it into the
// application hosting your content spaces and it provides:
//
//   - Paid subscription plans published per space, with Daily, Weekly,
//     Quarterly, Yearly, or custom block-count periods
//   - Immediate first-payment settlement on enrollment, with keep-alive
//     semantics (a payer is never drained below the existential deposit)
//   - Deterministic recipient resolution through a wallet fallback
//     chain: plan wallet → space recipient wallet → space owner
//   - Indexed registries (patron, space, period) that a recurring
//     billing scheduler consumes
//   - Settlement receipts for every payment, queryable per patron and
//     per subscription
//   - Lifecycle hooks for audit trails and metrics
//
// # Quick Start
//
// Create a service with your preferred store and external collaborators:
//
//	import (
//	    "github.com/spacefold/patronage"
//	    currencymem "github.com/spacefold/patronage/currency/memory"
//	    "github.com/spacefold/patronage/store/memory"
//	)
//
//	svc := patronage.New(memory.New(), spaceDirectory, chainLedger)
//
//	if err := svc.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Stop()
//
// Space owners publish plans:
//
//	p, err := svc.CreatePlan(ctx, patronage.CreatePlanInput{
//	    SpaceID: 1,
//	    Price:   patronage.NewMoney(100, "sub"),
//	    Period:  plan.Weekly,
//	    Content: content.IPFS(cid),
//	})
//
// Patrons enroll and pay in one step:
//
//	sub, err := svc.Subscribe(ctx, p.ID, nil)
//
// The caller of every operation is resolved through an identity.Guard;
// the default guard reads the authenticated account from the request
// context (identity.WithCaller).
//
// # Atomicity
//
// Every operation validates completely before mutating anything, and
// settlement is sequenced strictly before registry commit: a failed
// transfer never leaves a recorded subscription, and a recorded
// subscription always has a settled first payment behind it.
//
// All monetary amounts use integer arithmetic in the chain token's
// smallest unit. There is no floating point anywhere.
//
// # Identity
//
// Plans and subscriptions use sequential uint64 IDs allocated by the
// store, starting at 1 and never reused. Settlement receipts use
// TypeIDs (pay_01h2xcejqtf2nbrexx3vqjhp41): K-sortable, globally
// unique, URL-safe.
//
// # External collaborators
//
// The space directory, the currency ledger, and content validation are
// injected interfaces. Production deployments bind them to the hosting
// platform; the memory packages provide reference implementations for
// tests and demos.
package patronage
