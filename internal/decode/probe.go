package decode

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ProbeFrameCount asks ffprobe for the packet count of the first video
// stream. Packet counting reads the whole container but stays far
// cheaper than decoding. Callers treat an error as an unknown count.
func ProbeFrameCount(path string) (int, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-count_packets",
		"-show_entries", "stream=nb_read_packets",
		"-of", "csv=p=0",
		path).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0, fmt.Errorf("ffprobe output %q: %w",
			strings.TrimSpace(string(out)), err)
	}
	return n, nil
}
