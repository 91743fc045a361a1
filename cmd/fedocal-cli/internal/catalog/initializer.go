// Package catalog wires the message providers shipped with the CLI and
// formats registry contents for display.
package catalog

import (
	"sync"

	"github.com/fedora-infra/fedocal-messages/internal/fedocal"
	"github.com/fedora-infra/fedocal-messages/internal/topics"
)

var initOnce sync.Once

// Initialize registers every provider the CLI knows about with the default
// registry. It is safe to call more than once.
func Initialize() *topics.Registry {
	initOnce.Do(func() {
		fedocal.MustRegister(topics.Default())
	})
	return topics.Default()
}
