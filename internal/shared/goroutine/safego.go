// Package goroutine launches background work that must not crash the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"boxmas/internal/shared/logger"
)

// Go runs fn in a new goroutine. The returned channel receives fn's error, or
// an error describing a recovered panic, and is closed when fn returns.
func Go(log logger.Interface, name string, fn func() error) <-chan error {
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				errs <- fmt.Errorf("goroutine %s panicked: %v", name, r)
			}
		}()
		if err := fn(); err != nil {
			errs <- err
		}
	}()
	return errs
}
