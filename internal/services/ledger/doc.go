/*
Package ledger implements the wallet ledger and transactional balance engine.

It is the only component allowed to mutate a wallet's balance. Every public
operation runs as a single database transaction in which the rows it is
about to write are re-read under a row lock, so concurrent requests against
the same wallet or operation serialize instead of racing:

  - CreateOperation validates amounts against the limits policy, checks the
    calendar-day cap, and inserts a pending deposit/withdrawal request.
  - ApproveOperation moves a pending operation forward. Deposits credit the
    wallet here; withdrawals only record who approved them.
  - CompleteOperation finishes an approved operation. Withdrawals re-check
    the balance at this moment and debit the wallet; deposits just attach
    the payout proof.
  - RejectOperation closes a pending operation with a reason.
  - AdjustBalance is the direct admin credit/debit path.

All balance changes, from either path, funnel through one internal apply
step that updates the wallet and appends a transaction log entry in the
same database transaction. Replaying the log for a wallet therefore always
reproduces its balance; Reconcile checks exactly that.

Errors are reported as domain errors with stable codes (see the
internal/errors package); concurrency losses surface as the same kinds as
business-rule violations and are safe to retry after re-fetching state.
*/
package ledger
