package observability

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "flag off", cfg: config.Config{UptraceEnabled: false, ServiceName: "league-standings"}},
		{name: "empty dsn", cfg: config.Config{UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "league-standings"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdown, err := InitUptrace(tt.cfg, logging.NewNop())
			if err != nil {
				t.Fatalf("init uptrace: %v", err)
			}
			if err := shutdown(context.Background()); err != nil {
				t.Fatalf("shutdown uptrace: %v", err)
			}
		})
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil || srv != nil {
		t.Fatalf("expected no pprof server, got %v err=%v", srv, err)
	}
	if err := StopPprofServer(nil, logging.NewNop(), 0); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}

func TestStartPprofServer_BindsAndStops(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv == nil || srv.Addr == "127.0.0.1:0" {
		t.Fatalf("expected resolved listen addr, got %+v", srv)
	}
	if err := StopPprofServer(srv, logging.NewNop(), time.Second); err != nil {
		t.Fatalf("stop pprof: %v", err)
	}
}
