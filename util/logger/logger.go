/*
 * gtu312 - Wrapper for slog
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogHandler writes every record to the run's log file (if any) and
// selectively echoes it to stderr. Echoing is gated by the simulator's
// own 0-3 debug-level dial rather than a generic on/off switch:
//
//	0  only records above Debug (Info/Warn/Error) reach stderr
//	1  per-instruction trace lines (logged at slog.LevelDebug by
//	   machine.CPU.Step) are echoed too
//	2  same as 1; the run loop additionally pauses for a line of input
//	   between steps (machine.CPU.Run's StepHook, not this handler)
//	3  same as 2; a thread-table dump is printed to stdout after every
//	   USER/SYSCALL instruction (machine.CPU.Step, not this handler)
//
// Levels 2 and 3 change what the CPU logs and how the run loop paces
// itself; this handler only ever needs to know whether level >= 1.
type LogHandler struct {
	out   io.Writer
	h     slog.Handler
	mu    *sync.Mutex
	level int
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{out: h.out, h: h.h.WithAttrs(attrs), mu: h.mu, level: h.level}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{out: h.out, h: h.h.WithGroup(name), mu: h.mu, level: h.level}
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	formattedTime := r.Time.Format("2006/01/02 15:04:05")

	strs := []string{formattedTime, level, r.Message}

	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			strs = append(strs, a.Value.String())
			return true
		})
	}
	result := strings.Join(strs, " ") + "\n"
	b := []byte(result)

	h.mu.Lock()
	defer h.mu.Unlock()

	var err error
	if h.out != nil {
		_, err = h.out.Write(b)
	}

	// Debug-level records are the per-instruction trace; they only earn a
	// stderr echo once the debug dial has been turned past 0. Anything
	// louder than Debug (Warn on a recoverable parse error, Error on a
	// fault that's about to halt the run) always reaches stderr.
	if (h.level >= 1 && r.Level == slog.LevelDebug) || r.Level > slog.LevelDebug {
		_, err = os.Stderr.Write(b)
	}
	return err
}

// SetLevel adjusts the stderr echo threshold to the simulator's current
// debug level (0-3). The value *level is copied when SetLevel is called;
// later changes to the int are not seen until SetLevel is called again.
func (h *LogHandler) SetLevel(level *int) {
	h.level = *level
}

func NewHandler(file io.Writer, opts *slog.HandlerOptions, level *int) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &LogHandler{
		out: file,
		h: slog.NewTextHandler(file, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: nil,
		}),
		mu:    &sync.Mutex{},
		level: *level,
	}
}
