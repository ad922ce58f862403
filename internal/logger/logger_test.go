package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/textmode-tools/gosauce/internal/config"
	"github.com/textmode-tools/gosauce/internal/logger"
)

func TestLogger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Suite")
}

var _ = Describe("Setup", func() {
	It("discards everything when quiet", func() {
		cfg := &config.Config{Loggers: []config.LoggerConfig{{Stdout: true, Level: "debug"}}}
		l := logger.Setup(cfg, true)
		Expect(l).NotTo(BeNil())
	})

	It("falls back to a stdout handler when no sinks are configured", func() {
		l := logger.Setup(nil, false)
		Expect(l).NotTo(BeNil())
	})

	It("forces every sink to debug level when cfg.Debug is set", func() {
		cfg := &config.Config{
			Debug:   true,
			Loggers: []config.LoggerConfig{{Stdout: true, Level: "error"}},
		}
		l := logger.Setup(cfg, false)
		Expect(l.Enabled(nil, slog.LevelDebug)).To(BeTrue())
	})
})

var _ = Describe("Fanout", func() {
	It("dispatches a record to every handler that accepts its level", func() {
		var lowBuf, highBuf bytes.Buffer
		low := slog.NewTextHandler(&lowBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
		high := slog.NewTextHandler(&highBuf, &slog.HandlerOptions{Level: slog.LevelError})

		l := slog.New(logger.NewFanout(low, high))
		l.Debug("only for the low sink")

		Expect(lowBuf.String()).To(ContainSubstring("only for the low sink"))
		Expect(highBuf.String()).To(BeEmpty())
	})

	It("reports enabled if any handler would accept the level", func() {
		var buf bytes.Buffer
		errOnly := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError})
		f := logger.NewFanout(errOnly)

		Expect(f.Enabled(nil, slog.LevelError)).To(BeTrue())
		Expect(f.Enabled(nil, slog.LevelDebug)).To(BeFalse())
	})
})
