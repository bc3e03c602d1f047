package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"FundingIntel/backend/go/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func newEntry() *logrus.Entry {
	e := logrus.NewEntry(logrus.New())
	e.Level = logrus.WarnLevel
	e.Message = "responder failed"
	e.Time = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	e.Data = logrus.Fields{
		"service_name": "funding_service",
		"session_id":   "s-1",
		"trace_id":     "t-1",
		"error":        models.ErrorInfo{Message: "boom"},
		"request_info": models.RequestInfo{Method: "POST", Path: "/api/v1/chat/messages"},
		"payload":      map[string]interface{}{"matches": 2},
		"file":         "a.pdf",
	}
	return e
}

func TestToLogEntry(t *testing.T) {
	got := ToLogEntry(newEntry())
	if got.ServiceName != "funding_service" || got.SessionID != "s-1" || got.TraceID != "t-1" {
		t.Errorf("identity fields = %+v", got)
	}
	if got.Level != "warning" || got.Message != "responder failed" {
		t.Errorf("level/message = %q/%q", got.Level, got.Message)
	}
	if got.Error == nil || got.Error.Message != "boom" {
		t.Errorf("Error = %+v", got.Error)
	}
	if got.RequestInfo == nil || got.RequestInfo.Path != "/api/v1/chat/messages" {
		t.Errorf("RequestInfo = %+v", got.RequestInfo)
	}
	if got.Payload["matches"] != 2 || got.Payload["file"] != "a.pdf" {
		t.Errorf("Payload = %+v", got.Payload)
	}
}

func TestLogPublisher_Fire(t *testing.T) {
	w := &fakeWriter{}
	p := newLogPublisher(w, logrus.InfoLevel)

	if err := p.Fire(newEntry()); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "s-1" {
		t.Errorf("key = %q, want session id", w.msgs[0].Key)
	}
	var decoded models.LogEntry
	if err := json.Unmarshal(w.msgs[0].Value, &decoded); err != nil {
		t.Fatalf("message is not a LogEntry: %v", err)
	}
	if decoded.SessionID != "s-1" || decoded.Error.Message != "boom" {
		t.Errorf("decoded = %+v", decoded)
	}

	w.err = errors.New("broker down")
	if err := p.Fire(newEntry()); err == nil {
		t.Error("expected write error to surface to logrus")
	}
}

func TestLogPublisher_Levels(t *testing.T) {
	p := newLogPublisher(&fakeWriter{}, logrus.WarnLevel)
	for _, l := range p.Levels() {
		if l > logrus.WarnLevel {
			t.Errorf("level %v should not be published", l)
		}
	}
	if len(p.Levels()) != 4 {
		t.Errorf("Levels() = %v, want panic..warn", p.Levels())
	}
}
