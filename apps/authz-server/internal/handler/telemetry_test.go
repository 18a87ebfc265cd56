package handler

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/anomaly"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/config"
	"github.com/oyaguma3/fleetguard/apps/authz-server/internal/dto"
	"github.com/oyaguma3/fleetguard/pkg/apperr"
	"github.com/oyaguma3/fleetguard/pkg/model"
)

func TestHandleTelemetry(t *testing.T) {
	payload := []byte(`{"device_id":"aa:bb:cc:dd:ee:01","protocol":"wifi"}`)
	sig := []byte("signature-bytes")
	signed := map[string]string{
		HeaderNodeID:    "node-a",
		HeaderSignature: base64.StdEncoding.EncodeToString(sig),
	}

	finding := &model.AnomalyFinding{ID: "f-1", DeviceID: "aa:bb:cc:dd:ee:01", Severity: model.SeverityHigh}

	tests := []struct {
		name          string
		header        map[string]string
		body          []byte
		ingestor      *mockIngestor
		wantStatus    int
		wantFindings  int
		wantDiscarded bool
		wantPending   bool
	}{
		{
			name:   "accepted with finding",
			header: signed,
			body:   payload,
			ingestor: &mockIngestor{result: &anomaly.IngestResult{
				Accepted: true,
				Finding:  finding,
				Escalation: &model.EscalationOutcome{
					DeviceID: finding.DeviceID, Action: model.EscalationTempBlock,
				},
			}},
			wantStatus:   http.StatusAccepted,
			wantFindings: 1,
		},
		{
			name:   "accepted with escalation pending",
			header: signed,
			body:   payload,
			ingestor: &mockIngestor{result: &anomaly.IngestResult{
				Accepted: true, Finding: finding, EscalationPending: true,
			}},
			wantStatus:   http.StatusAccepted,
			wantFindings: 1,
			wantPending:  true,
		},
		{
			name:          "discarded as false positive",
			header:        signed,
			body:          payload,
			ingestor:      &mockIngestor{result: &anomaly.IngestResult{Accepted: true, Discarded: true}},
			wantStatus:    http.StatusAccepted,
			wantDiscarded: true,
		},
		{
			name:       "missing node header",
			header:     map[string]string{HeaderSignature: signed[HeaderSignature]},
			body:       payload,
			ingestor:   &mockIngestor{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "signature not base64",
			header:     map[string]string{HeaderNodeID: "node-a", HeaderSignature: "%%%"},
			body:       payload,
			ingestor:   &mockIngestor{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "identity reject",
			header:     signed,
			body:       payload,
			ingestor:   &mockIngestor{err: &anomaly.RejectError{Class: anomaly.RejectIdentity, Reason: "signature_invalid"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "capability reject",
			header:     signed,
			body:       payload,
			ingestor:   &mockIngestor{err: &anomaly.RejectError{Class: anomaly.RejectCapability, Reason: "protocol_not_allowed"}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "node rate limited",
			header:     signed,
			body:       payload,
			ingestor:   &mockIngestor{err: &anomaly.RejectError{Class: anomaly.RejectRateLimited, Reason: "node_rate_limited"}},
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name:       "malformed payload",
			header:     signed,
			body:       payload,
			ingestor:   &mockIngestor{err: &anomaly.RejectError{Class: anomaly.RejectMalformed, Reason: "invalid_payload"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "store unavailable",
			header:     signed,
			body:       payload,
			ingestor:   &mockIngestor{err: apperr.ErrStoreUnavailable},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "payload too large",
			header:     signed,
			body:       bytes.Repeat([]byte("a"), config.MaxTelemetryBytes+1),
			ingestor:   &mockIngestor{},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(Deps{Ingestor: tt.ingestor})
			w := serve(http.MethodPost, "/api/v1/telemetry", "/api/v1/telemetry", tt.body, tt.header, h.HandleTelemetry)

			if w.Code != tt.wantStatus {
				t.Fatalf("Status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if w.Code != http.StatusAccepted {
				return
			}
			var resp dto.TelemetryResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("json.Unmarshal() error = %v", err)
			}
			if len(resp.Findings) != tt.wantFindings {
				t.Errorf("len(Findings) = %d, want %d", len(resp.Findings), tt.wantFindings)
			}
			if resp.Discarded != tt.wantDiscarded {
				t.Errorf("Discarded = %v, want %v", resp.Discarded, tt.wantDiscarded)
			}
			if resp.EscalationPending != tt.wantPending {
				t.Errorf("EscalationPending = %v, want %v", resp.EscalationPending, tt.wantPending)
			}
			if tt.ingestor.nodeID != "node-a" || !bytes.Equal(tt.ingestor.sig, sig) || !bytes.Equal(tt.ingestor.payload, payload) {
				t.Errorf("予期しない入力: node=%q sig=%q", tt.ingestor.nodeID, tt.ingestor.sig)
			}
		})
	}
}
