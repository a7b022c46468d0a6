package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/edge-worker/pkg/logger"
)

var _ = Describe("Logger", func() {
	ctx := context.Background()

	Describe("New", func() {
		It("should create a dev logger", func() {
			Expect(logger.New("info", false, "dev")).NotTo(BeNil())
		})

		It("should create a prod logger with source", func() {
			Expect(logger.New("info", true, "prod")).NotTo(BeNil())
		})
	})

	DescribeTable("level filtering",
		func(level string, enabled, disabled slog.Level) {
			log := logger.NewWithWriter(&bytes.Buffer{}, level, false, "dev")
			Expect(log.Enabled(ctx, enabled)).To(BeTrue())
			Expect(log.Enabled(ctx, disabled)).To(BeFalse())
		},
		Entry("info", "info", slog.LevelInfo, slog.LevelDebug),
		Entry("debug", "debug", slog.LevelDebug, slog.Level(-8)),
		Entry("warn", "WARN", slog.LevelWarn, slog.LevelInfo),
		Entry("error", "error", slog.LevelError, slog.LevelWarn),
		Entry("unknown falls back to info", "verbose", slog.LevelInfo, slog.LevelDebug),
	)

	Describe("NewWithWriter", func() {
		It("should write JSON records tagged with the environment in prod", func() {
			var buf bytes.Buffer
			log := logger.NewWithWriter(&buf, "info", false, "prod")

			log.Info("hello", slog.String("route", "/message"))

			var record map[string]any
			Expect(json.Unmarshal(buf.Bytes(), &record)).To(Succeed())
			Expect(record).To(HaveKeyWithValue("msg", "hello"))
			Expect(record).To(HaveKeyWithValue("environment", "prod"))
			Expect(record).To(HaveKeyWithValue("route", "/message"))
		})

		It("should write text records outside prod", func() {
			var buf bytes.Buffer
			log := logger.NewWithWriter(&buf, "info", false, "staging")

			log.Info("hello")

			Expect(buf.String()).To(ContainSubstring("msg=hello"))
			Expect(buf.String()).To(ContainSubstring("environment=staging"))
		})
	})

	Describe("Discard", func() {
		It("should report every level as disabled", func() {
			log := logger.Discard()
			Expect(log.Enabled(ctx, slog.LevelError)).To(BeFalse())
		})
	})
})
