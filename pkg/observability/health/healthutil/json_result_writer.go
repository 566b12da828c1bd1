/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alexliesenfeld/health"
)

type healthStatus struct {
	Status     health.AvailabilityStatus `json:"status"`
	Components map[string]checkResult    `json:"components,omitempty"`
	Storage    map[string]interface{}    `json:"storage,omitempty"`
}

type checkResult struct {
	health.CheckResult
	LastResponseTime    string `json:"last_response_time,omitempty"`
	AverageResponseTime string `json:"avg_response_time,omitempty"`
}

// StorageInfoFunc reports the descriptive state of the identity store.
type StorageInfoFunc func(ctx context.Context) (map[string]interface{}, error)

type JSONResultWriter struct {
	responseTimes *ResponseTimes
	storageInfo   StorageInfoFunc
}

// NewJSONResultWriter returns a writer adding response times and, when storageInfo is set, the
// identity store info to every health response.
func NewJSONResultWriter(responseTimes *ResponseTimes, storageInfo StorageInfoFunc) *JSONResultWriter {
	return &JSONResultWriter{
		responseTimes: responseTimes,
		storageInfo:   storageInfo,
	}
}

func (rw *JSONResultWriter) Write(result *health.CheckerResult, status int, w http.ResponseWriter, r *http.Request) error { //nolint:lll
	res := &healthStatus{Status: result.Status}

	if result.Details != nil {
		res.Components = map[string]checkResult{}

		for name, cr := range result.Details {
			c := checkResult{CheckResult: cr}

			if t, ok := rw.responseTimes.Get(name); ok {
				c.LastResponseTime = t.LastResponseTime.String()
				c.AverageResponseTime = t.AverageResponseTime.String()
			}

			res.Components[name] = c
		}
	}

	if rw.storageInfo != nil {
		ctx := context.Background()
		if r != nil {
			ctx = r.Context()
		}

		info, err := rw.storageInfo(ctx)
		if err != nil {
			info = map[string]interface{}{"error": err.Error()}
		}

		res.Storage = info
	}

	b, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cannot marshal response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(b)

	return err
}
