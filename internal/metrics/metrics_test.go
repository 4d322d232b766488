// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))

	if after != before+1 {
		t.Errorf("counter = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("gauge after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("gauge after dec = %v, want %v", got, before)
	}
}

func TestRecordRebuild(t *testing.T) {
	RecordRebuild(42, 100*time.Millisecond)
	if got := testutil.ToFloat64(RecommendModelItems); got != 42 {
		t.Errorf("model items gauge = %v, want 42", got)
	}
}

func TestRecordImportBatch(t *testing.T) {
	beforeAdded := testutil.ToFloat64(ImportRecordsTotal.WithLabelValues("added"))
	beforeFail := testutil.ToFloat64(ImportBatchesTotal.WithLabelValues("json", "failure"))

	RecordImportBatch("json", false, 3, 1, 2, 4)

	if got := testutil.ToFloat64(ImportRecordsTotal.WithLabelValues("added")); got != beforeAdded+3 {
		t.Errorf("added counter = %v, want %v", got, beforeAdded+3)
	}
	if got := testutil.ToFloat64(ImportBatchesTotal.WithLabelValues("json", "failure")); got != beforeFail+1 {
		t.Errorf("failure counter = %v, want %v", got, beforeFail+1)
	}
}
