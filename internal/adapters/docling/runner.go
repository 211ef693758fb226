package docling

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"reportsmith/internal/platform/logger"
)

// Runner lets tests stub the external command
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	log := logger.Named("exec")
	if err != nil {
		log.Error().
			Str("cmd", name).
			Str("args", strings.Join(args, " ")).
			Dur("elapsed", time.Since(start)).
			Err(err).
			Str("stderr", truncate(errb.String(), 8<<10)).
			Msg("exec failed")
	} else {
		log.Debug().
			Str("cmd", name).
			Dur("elapsed", time.Since(start)).
			Int("stdout_bytes", out.Len()).
			Msg("exec ok")
	}

	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
