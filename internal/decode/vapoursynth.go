package decode

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// NewVSPipe renders a VapourSynth script through `vspipe -c y4m`. The
// frame count comes from `vspipe --info` and is best effort.
func NewVSPipe(script string) (*pipeDecoder, error) {
	count, err := probeVSPipeFrames(script)
	if err != nil {
		count = 0
	}
	return newPipeDecoder(count, "vspipe", "-c", "y4m", script, "-")
}

func probeVSPipeFrames(script string) (int, error) {
	out, err := exec.Command("vspipe", "--info", script, "-").Output()
	if err != nil {
		return 0, fmt.Errorf("vspipe --info: %w", err)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if v, ok := strings.CutPrefix(line, "Frames:"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return 0, fmt.Errorf("vspipe --info frame count %q: %w",
					strings.TrimSpace(v), err)
			}
			return n, nil
		}
	}
	return 0, fmt.Errorf("vspipe --info reported no frame count for %s", script)
}
