package decode

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// pipeDecoder runs a subprocess that writes a YUV4MPEG2 stream to its
// stdout and parses that stream. The child is killed on Close so an
// early stop (scoring window, first error) does not deadlock on a full
// pipe.
type pipeDecoder struct {
	cmd *exec.Cmd
	y4m *Y4M
}

func newPipeDecoder(frameCount int, name string, args ...string) (*pipeDecoder, error) {
	cmd := exec.Command(name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoderInit, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting %s: %w", ErrDecoderInit, name, err)
	}

	y4m, err := NewY4M(stdout, 0)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrDecoderInit, name, msg)
		}
		return nil, err
	}
	y4m.details.FrameCount = frameCount

	return &pipeDecoder{cmd: cmd, y4m: y4m}, nil
}

// NewFFmpegPipe decodes any ffmpeg-readable input by piping it through
// `ffmpeg -f yuv4mpegpipe`. The frame count comes from ffprobe and is
// best effort; scoring works without it.
func NewFFmpegPipe(path string) (*pipeDecoder, error) {
	count, err := ProbeFrameCount(path)
	if err != nil {
		count = 0
	}
	return newPipeDecoder(count,
		"ffmpeg", "-loglevel", "error", "-i", path,
		"-f", "yuv4mpegpipe", "-strict", "-1", "-")
}

func (d *pipeDecoder) Details() VideoDetails { return d.y4m.details }

func (d *pipeDecoder) ReadFrame(dst *Frame) (bool, error) {
	return d.y4m.ReadFrame(dst)
}

func (d *pipeDecoder) Close() error {
	if d.cmd.Process != nil {
		d.cmd.Process.Kill()
	}
	d.cmd.Wait()
	return nil
}
