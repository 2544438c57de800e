package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatOutcomeOrg renders one outcome as an org-mode entry.
func FormatOutcomeOrg(r OutcomeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s: %s %s @ %s (%s)\n", r.Kind, r.Symbol, r.Quantity, r.Price, shortID(r.EntryID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ENTRY_ID: %s\n", r.EntryID)
	fmt.Fprintf(&b, ":SEQ: %d\n", r.Seq)
	fmt.Fprintf(&b, ":ACCOUNT: %s\n", r.AccountID)
	fmt.Fprintf(&b, ":NOTIONAL: %s\n", r.Notional)
	fmt.Fprintf(&b, ":BALANCE: %s\n", r.Balance)
	fmt.Fprintf(&b, ":EXPOSURE: %s\n", r.Exposure)
	if r.StopLoss {
		b.WriteString(":STOP_LOSS: triggered\n")
	}
	if r.Detail != "" {
		fmt.Fprintf(&b, ":DETAIL: %s\n", r.Detail)
	}
	fmt.Fprintf(&b, ":PROCESSED_AT: %s\n", r.ProcessedAt.UTC().Format(time.RFC3339))
	b.WriteString(":END:\n")
	return b.String()
}

// FormatOutcomesOrg renders outcomes separated by blank lines.
func FormatOutcomesOrg(recs []OutcomeRecord) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatOutcomeOrg(r))
	}
	return b.String()
}

// shortID keeps the random tail of a ULID; the leading characters are the
// timestamp and repeat across a run.
func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
