/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil

import (
	"context"
	"sync"
	"time"

	"github.com/alexliesenfeld/health"
)

type ResponseTimeState struct {
	LastResponseTime    time.Duration
	AverageResponseTime time.Duration
}

// ResponseTimes holds the per-check response times recorded by Interceptor.
type ResponseTimes struct {
	mutex  sync.RWMutex
	states map[string]ResponseTimeState
}

func NewResponseTimes() *ResponseTimes {
	return &ResponseTimes{states: map[string]ResponseTimeState{}}
}

func (rt *ResponseTimes) Get(name string) (ResponseTimeState, bool) {
	if rt == nil {
		return ResponseTimeState{}, false
	}

	rt.mutex.RLock()
	defer rt.mutex.RUnlock()

	s, ok := rt.states[name]

	return s, ok
}

func (rt *ResponseTimes) record(name string, elapsed time.Duration) {
	rt.mutex.Lock()
	defer rt.mutex.Unlock()

	s, ok := rt.states[name]
	if !ok {
		rt.states[name] = ResponseTimeState{LastResponseTime: elapsed, AverageResponseTime: elapsed}

		return
	}

	rt.states[name] = ResponseTimeState{
		LastResponseTime:    elapsed,
		AverageResponseTime: (s.AverageResponseTime + elapsed) / 2, //nolint:gomnd
	}
}

// Interceptor times every check run.
func (rt *ResponseTimes) Interceptor() health.Interceptor {
	return func(next health.InterceptorFunc) health.InterceptorFunc {
		return func(ctx context.Context, name string, state health.CheckState) health.CheckState {
			start := time.Now()

			result := next(ctx, name, state)

			rt.record(name, time.Since(start))

			return result
		}
	}
}
