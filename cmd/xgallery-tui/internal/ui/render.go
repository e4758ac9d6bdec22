package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/iconidentify/xgallery/internal/domain"
)

// userLabel is the main text of a user list entry.
func userLabel(u domain.UserSummary) string {
	return fmt.Sprintf("%s (@%s)", tview.Escape(u.Name), tview.Escape(u.ScreenName))
}

// userDetail is the secondary text of a user list entry.
func userDetail(u domain.UserSummary) string {
	if u.TweetCount == 1 {
		return "1 tweet"
	}
	return fmt.Sprintf("%d tweets", u.TweetCount)
}

// renderTweet formats one timeline entry with tview color tags.
func renderTweet(v domain.TweetView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[yellow]%s[white]  [gray]#%s[white]\n", tview.Escape(v.FormattedTime), tview.Escape(v.ID.String()))
	b.WriteString(tview.Escape(v.FullText))
	b.WriteString("\n")
	fmt.Fprintf(&b, "[cyan]replies[white] %d  [green]retweets[white] %d  [red]likes[white] %d\n",
		v.ReplyCount, v.RetweetCount, v.FavoriteCount)
	for _, u := range v.MediaURLs {
		fmt.Fprintf(&b, "[blue]%s[white]\n", tview.Escape(u))
	}

	return b.String()
}

// renderTimeline formats a whole timeline, newest first as given.
func renderTimeline(views []domain.TweetView) string {
	if len(views) == 0 {
		return "[gray]No tweets for this user.[white]"
	}

	parts := make([]string, 0, len(views))
	for _, v := range views {
		parts = append(parts, renderTweet(v))
	}
	return strings.Join(parts, "[gray]────────────────────────────────[white]\n")
}
