package layout

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"starsort/internal/frame"
	"starsort/internal/thermal"
)

// Namer produces destination filenames that are unique within one run and
// one destination directory. Millisecond capture timestamps make collisions
// rare; when two frames still resolve to the same name (burst captures
// sharing a millisecond, or headers with truncated timestamps), the later
// frame gets a deterministic _dup<n> suffix carrying its 1-based
// chronological sequence number.
type Namer struct {
	seen map[string]struct{}
}

func NewNamer() *Namer {
	return &Namer{seen: make(map[string]struct{})}
}

// timestampToken renders the adjusted capture time as yyyymmdd_hhmmss_mmm.
func timestampToken(adjusted time.Time) string {
	return fmt.Sprintf("%s_%03d", adjusted.Format("20060102_150405"), adjusted.Nanosecond()/1e6)
}

// FileName names one frame's destination file inside dir. With renaming
// enabled the name is rebuilt from the classification fields that survived
// for the category; otherwise the sanitized original stem keeps a timestamp
// suffix. The original extension is preserved either way.
func (n *Namer) FileName(cls frame.Classification, dir string, adjusted time.Time, originSeq int, rename bool, originPath string) string {
	ext := strings.ToLower(filepath.Ext(originPath))
	ts := timestampToken(adjusted)

	var stem string
	if rename {
		tokens := []string{cls.Type.String(), ts}
		switch cls.Type {
		case frame.Light:
			tokens = append(tokens, cls.Target)
			if cls.Filter != "" {
				tokens = append(tokens, cls.Filter)
			}
			tokens = append(tokens, GainToken(cls.Gain), ExposureToken(cls.ExposureSec), tempToken(cls.TempC))
		case frame.Dark:
			tokens = append(tokens, GainToken(cls.Gain), ExposureToken(cls.ExposureSec), tempToken(cls.TempC))
		case frame.Flat:
			if cls.Filter != "" {
				tokens = append(tokens, cls.Filter)
			}
			tokens = append(tokens, GainToken(cls.Gain))
		case frame.Bias:
			tokens = append(tokens, GainToken(cls.Gain))
		}
		stem = strings.Join(tokens, "_")
	} else {
		base := filepath.Base(originPath)
		stem = frame.Sanitize(strings.TrimSuffix(base, filepath.Ext(base))) + "_" + ts
	}

	name := stem + ext
	if _, taken := n.seen[dir+"\x00"+name]; taken {
		name = fmt.Sprintf("%s_dup%d%s", stem, originSeq, ext)
	}
	n.seen[dir+"\x00"+name] = struct{}{}
	return name
}

func tempToken(tempC float64) string {
	return thermal.RoundedBucket(tempC).Label()
}
