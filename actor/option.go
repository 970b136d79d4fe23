// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package actor

import (
	"github.com/google/uuid"

	"github.com/tochemey/troupe/log"
)

// spawnConfig defines an actor configuration
type spawnConfig struct {
	// capacity is the public mailbox capacity
	capacity int
	// logger is the actor logger
	logger log.Logger
	// name is the actor name
	name string
}

// newSpawnConfig creates an instance of spawnConfig
func newSpawnConfig(opts ...SpawnOption) *spawnConfig {
	config := &spawnConfig{
		capacity: DefaultMailboxCapacity,
		logger:   log.DefaultLogger,
		name:     "actor-" + uuid.NewString(),
	}
	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// SpawnOption is the interface that applies to a newly spawned actor.
type SpawnOption interface {
	// Apply sets the Option value of a config.
	Apply(config *spawnConfig)
}

// enforce compilation error
var _ SpawnOption = spawnOption(nil)

// spawnOption implements the SpawnOption interface.
type spawnOption func(config *spawnConfig)

// Apply implements the SpawnOption interface.
func (f spawnOption) Apply(c *spawnConfig) {
	f(c)
}

// WithCapacity sets the capacity of the actor's public mailbox. Senders
// block once that many messages are queued and unprocessed. Non-positive
// values fall back to DefaultMailboxCapacity.
func WithCapacity(capacity int) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		if capacity > 0 {
			config.capacity = capacity
		}
	})
}

// WithLogger sets the logger used by the actor's hosting goroutine.
func WithLogger(logger log.Logger) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.logger = logger
	})
}

// WithName sets the actor name used in logs and metrics. When not set a
// random name is generated.
func WithName(name string) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.name = name
	})
}
