// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package share

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/tariff-watch/models"
)

// DefaultSite is advertised when no site URL is configured
const DefaultSite = "economicalwar.com"

// Text formats the clipboard message for a voting rumor
func Text(r models.VoteRumor, site string) string {
	if site == "" {
		site = DefaultSite
	}
	site = strings.TrimPrefix(strings.TrimPrefix(site, "https://"), "http://")
	return fmt.Sprintf("Check out this tariff rumor: %s - Expected: %s - Vote now at %s",
		r.Title, r.ExpectedDate, strings.TrimRight(site, "/"))
}

// VoteSummary renders "Yes: 1,204 votes (60%) · No: 803 votes (40%)"
func VoteSummary(yes, no, yesPct, noPct int) string {
	return fmt.Sprintf("Yes: %s %s (%d%%) · No: %s %s (%d%%)",
		humanize.Comma(int64(yes)), plural(yes), yesPct,
		humanize.Comma(int64(no)), plural(no), noPct)
}

func plural(n int) string {
	if n == 1 {
		return "vote"
	}
	return "votes"
}
