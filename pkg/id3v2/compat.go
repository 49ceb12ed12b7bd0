package id3v2

import (
	"fmt"
	"strconv"
	"strings"
)

// Frames with no analogue in the other version are dropped on migration.
var (
	dropOnUpgrade = []string{"EQUA", "RVAD", "TSIZ", "TRDA"}

	dropOnDowngrade = []string{
		"ASPI", "EQU2", "RVA2", "SEEK", "SIGN",
		"TDEN", "TDRL", "TDTG", "TMOO", "TPRO",
		"TSOA", "TSOP", "TSOT", "TSST",
	}
)

// UpgradeFrames migrates an ID3v2.3 frame set to its ID3v2.4 representation
// in place: the TYER/TDAT/TIME triple fuses into TDRC timestamps, TORY
// becomes TDOR, legacy IPLS becomes TIPL, and v2.3-only frames are dropped.
// Chapter and table-of-contents frames migrate recursively.
func UpgradeFrames(c *FrameCollection) {
	recurseEmbedded(c, UpgradeFrames)

	years, enc := takeTextValues(c, "TYER")
	dates, _ := takeTextValues(c, "TDAT")
	times, _ := takeTextValues(c, "TIME")
	if len(years) > 0 {
		var stamps []string
		for i, year := range years {
			stamp, ok := fuseTimestamp(year, pick(dates, i), pick(times, i))
			if ok {
				stamps = append(stamps, stamp)
			}
		}
		if len(stamps) > 0 {
			c.Add(&TextFrame{FrameID: mustFrameID("TDRC"), Encoding: enc, Text: stamps})
		}
	}

	if orig, enc := takeTextValues(c, "TORY"); len(orig) > 0 {
		var out []string
		for _, year := range orig {
			if y, err := strconv.Atoi(year); err == nil {
				out = append(out, fmt.Sprintf("%04d", y))
			}
		}
		if len(out) > 0 {
			c.Add(&TextFrame{FrameID: mustFrameID("TDOR"), Encoding: enc, Text: out})
		}
	}

	// IPLS keys collapse onto TIPL already; only the ID needs renaming.
	if credits, ok := c.Get("TIPL").(*CreditsFrame); ok {
		credits.FrameID = mustFrameID("TIPL")
	}

	for _, id := range dropOnUpgrade {
		c.RemoveAll(mustFrameID(id))
	}
}

// DowngradeFrames migrates an ID3v2.4 frame set to its ID3v2.3
// representation in place: TDRC timestamps split back into TYER/TDAT/TIME,
// TDOR becomes TORY, TIPL and TMCL merge into legacy IPLS, and v2.4-only
// frames are dropped. Chapter and table-of-contents frames migrate
// recursively.
func DowngradeFrames(c *FrameCollection) {
	recurseEmbedded(c, DowngradeFrames)

	if stamps, enc := takeTextValues(c, "TDRC"); len(stamps) > 0 {
		var years, dates, times []string
		for _, stamp := range stamps {
			year, date, time, ok := splitTimestamp(stamp)
			if !ok {
				continue
			}
			years = append(years, year)
			if date != "" {
				dates = append(dates, date)
			}
			if time != "" {
				times = append(times, time)
			}
		}
		addTextValues(c, "TYER", enc, years)
		addTextValues(c, "TDAT", enc, dates)
		addTextValues(c, "TIME", enc, times)
	}

	if stamps, enc := takeTextValues(c, "TDOR"); len(stamps) > 0 {
		var years []string
		for _, stamp := range stamps {
			if year, _, _, ok := splitTimestamp(stamp); ok {
				years = append(years, year)
			}
		}
		addTextValues(c, "TORY", enc, years)
	}

	mergeCredits(c)

	for _, id := range dropOnDowngrade {
		c.RemoveAll(mustFrameID(id))
	}
}

func recurseEmbedded(c *FrameCollection, migrate func(*FrameCollection)) {
	for _, f := range c.Frames() {
		switch f := f.(type) {
		case *ChapterFrame:
			migrate(f.Frames)
		case *TableOfContentsFrame:
			migrate(f.Frames)
		}
	}
}

// takeTextValues removes the text frame stored under id and returns its
// values and encoding.
func takeTextValues(c *FrameCollection, id string) ([]string, Encoding) {
	f, ok := c.Get(id).(*TextFrame)
	if !ok {
		return nil, EncodingLatin1
	}
	c.Remove(id)
	return f.Text, f.Encoding
}

func addTextValues(c *FrameCollection, id string, enc Encoding, values []string) {
	if len(values) == 0 {
		return
	}
	c.Add(&TextFrame{FrameID: mustFrameID(id), Encoding: enc, Text: values})
}

func pick(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// fuseTimestamp builds one TDRC value from a v2.3 year, DDMM date and HHMM
// time. The year alone is enough; the date and time extend the stamp only
// when present and well-formed, and the time needs the date before it.
func fuseTimestamp(year, date, time string) (string, bool) {
	y, err := strconv.Atoi(year)
	if err != nil || y < 0 {
		return "", false
	}
	stamp := fmt.Sprintf("%04d", y)

	if len(date) != 4 || !allDigits(date) {
		return stamp, true
	}
	stamp += "-" + date[2:4] + "-" + date[0:2]

	if len(time) != 4 || !allDigits(time) {
		return stamp, true
	}
	return stamp + "T" + time[0:2] + ":" + time[2:4], true
}

// splitTimestamp is the inverse scan: digits accumulate into segments split
// on the -, T and : separators. A 4-digit year is required; the date and
// time come back only when their segments are complete. Any other character
// voids the whole entry.
func splitTimestamp(stamp string) (year, date, time string, ok bool) {
	var segs []string
	var seg strings.Builder
	for _, r := range stamp {
		switch {
		case r >= '0' && r <= '9':
			seg.WriteRune(r)
		case r == '-' || r == 'T' || r == ':':
			segs = append(segs, seg.String())
			seg.Reset()
		default:
			return "", "", "", false
		}
	}
	segs = append(segs, seg.String())

	if len(segs[0]) != 4 {
		return "", "", "", false
	}
	year = segs[0]
	if len(segs) >= 3 && len(segs[1]) == 2 && len(segs[2]) == 2 {
		date = segs[2] + segs[1]
	}
	if len(segs) >= 5 && len(segs[3]) == 2 && len(segs[4]) == 2 {
		time = segs[3] + segs[4]
	}
	return year, date, time, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// mergeCredits folds TIPL and TMCL into the single legacy IPLS frame. Role
// collisions resolve in favor of the frame merged last.
func mergeCredits(c *FrameCollection) {
	tipl, _ := c.Get("TIPL").(*CreditsFrame)
	tmcl, _ := c.Get("TMCL").(*CreditsFrame)
	if tipl == nil && tmcl == nil {
		return
	}

	merged := &CreditsFrame{FrameID: mustFrameID("IPLS")}
	if tipl != nil {
		merged.Encoding = tipl.Encoding
		merged.Credits = append(merged.Credits, tipl.Credits...)
		c.Remove("TIPL")
	}
	if tmcl != nil {
		if tipl == nil {
			merged.Encoding = tmcl.Encoding
		}
		for _, credit := range tmcl.Credits {
			merged.setRole(credit.Role, credit.People)
		}
		c.Remove("TMCL")
	}
	c.Add(merged)
}
