package journal

import (
	"sync/atomic"

	"github.com/rustyeddy/tradegate/processor"
	"go.uber.org/zap"
)

// Recorder adapts a Journal to processor.Observer. Observers cannot fail,
// so write errors are logged and counted instead of returned.
type Recorder struct {
	j      Journal
	log    *zap.Logger
	errors atomic.Int64
}

func NewRecorder(j Journal, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{j: j, log: log}
}

func (r *Recorder) OnOutcome(o processor.Outcome) {
	if err := r.j.RecordOutcome(FromOutcome(o)); err != nil {
		r.errors.Add(1)
		r.log.Error("journal write failed",
			zap.String("entry_id", o.Entry.ID),
			zap.Error(err),
		)
	}
}

// Errors is the number of failed writes so far.
func (r *Recorder) Errors() int { return int(r.errors.Load()) }
