package cleaner

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/s4mli/umbral/common"
	"github.com/s4mli/umbral/logging"
)

type Cleanable interface {
	Stop()
	Name() string
}

var (
	resourcesMu sync.Mutex
	resources   []Cleanable
)

func Register(r ...Cleanable) {
	resourcesMu.Lock()
	defer resourcesMu.Unlock()
	resources = append(resources, r...)
}

// Run blocks until ctx is done or the process is signalled, then stops every
// registered resource, last registered first.
func Run(ctx context.Context, logger logging.Logger) {
	done := make(chan struct{})
	cleanup := func(reason string) {
		defer close(done)
		resourcesMu.Lock()
		stopping := resources
		resources = nil
		resourcesMu.Unlock()
		for i := len(stopping) - 1; i >= 0; i-- {
			logger.Warnf("( %s ) terminated, %s", stopping[i].Name(), reason)
			stopping[i].Stop()
		}
	}

	common.TerminateIf(ctx,
		func() { cleanup("cancel") },
		func(s os.Signal) { cleanup(fmt.Sprintf("signal %+v", s)) })
	<-done
}
