// Package main provides the feedctl CLI: a terminal front end for the feed
// service, driving the same view models the dashboard uses.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ushadow-io/feed-service/internal/activity"
	"github.com/ushadow-io/feed-service/internal/apiclient"
	"github.com/ushadow-io/feed-service/internal/models"
	"github.com/ushadow-io/feed-service/internal/viewmodel"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// getServerURL returns the feed service base URL.
func getServerURL() string {
	if url := os.Getenv("USHADOW_FEED_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

// newRootCmd creates the root command for the feedctl CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "feedctl",
		Short:   "Browse the ushadow aggregated feed from the terminal",
		Version: version,
	}

	rootCmd.SetVersionTemplate("feedctl version {{.Version}}\n")

	rootCmd.AddCommand(newFeedCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newSourcesCmd())
	rootCmd.AddCommand(newActivityCmd())
	return rootCmd
}

func newFeedCmd() *cobra.Command {
	var (
		platform string
		page     int
		pageSize int
		interest string
		showSeen bool
	)
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Show one page of the aggregated feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			vm := viewmodel.NewFeedViewModel(
				apiclient.New(getServerURL()),
				viewmodel.WithInitialTab(models.PlatformType(platform)),
				viewmodel.WithPageSize(pageSize),
			)
			if err := vm.SetShowSeen(ctx, showSeen); err != nil {
				return err
			}
			if interest != "" {
				if err := vm.SetInterestFilter(ctx, interest); err != nil {
					return err
				}
			}
			if err := vm.SetPage(ctx, page); err != nil {
				return err
			}

			printFeed(cmd, vm.State())
			return nil
		},
	}
	cmd.Flags().StringVar(&platform, "platform", string(models.PlatformMastodon), "platform tab (mastodon|bluesky|bluesky_timeline|youtube)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", viewmodel.DefaultPageSize, "posts per page")
	cmd.Flags().StringVar(&interest, "interest", "", "filter by interest tag")
	cmd.Flags().BoolVar(&showSeen, "show-seen", false, "include already-seen posts")
	return cmd
}

func printFeed(cmd *cobra.Command, state viewmodel.FeedState) {
	now := time.Now()
	for _, post := range state.Posts {
		marker := " "
		if post.Bookmarked {
			marker = "*"
		}
		title := post.Title
		if title == "" {
			title = firstLine(post.Content)
		}
		cmd.Printf("%s [%s] %s — %s (%s)\n", marker, post.PlatformType, title, post.Author,
			activity.FormatTimestamp(post.Timestamp, now))
		if len(post.InterestTags) > 0 {
			cmd.Printf("    tags: %s\n", strings.Join(post.InterestTags, ", "))
		}
	}
	cmd.Printf("\npage %d/%d (%d posts)\n", state.Page, state.TotalPages, state.TotalItems)
}

func newRefreshCmd() *cobra.Command {
	var platform string
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Pull fresh posts for one platform's sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			vm := viewmodel.NewFeedViewModel(
				apiclient.New(getServerURL()),
				viewmodel.WithInitialTab(models.PlatformType(platform)),
			)
			if err := vm.LoadSources(ctx); err != nil {
				return err
			}
			stats, err := vm.Refresh(ctx)
			if errors.Is(err, viewmodel.ErrNoSources) {
				cmd.Printf("no sources configured for %s — add one with 'feedctl sources add'\n", platform)
				return nil
			}
			if err != nil {
				return err
			}
			cmd.Printf("fetched %d posts, %d new, %d interests\n",
				stats.PostsFetched, stats.PostsNew, stats.InterestsCount)
			return nil
		},
	}
	cmd.Flags().StringVar(&platform, "platform", string(models.PlatformMastodon), "platform to refresh")
	return cmd
}

func newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage feed sources",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			client := apiclient.New(getServerURL())
			sources, err := client.ListSources(ctx)
			if err != nil {
				return err
			}
			for _, s := range sources {
				cmd.Printf("%s  %-16s %s (%s)\n", s.SourceID, s.PlatformType, s.Name, s.FeedURL)
			}
			return nil
		},
	}

	var (
		platform string
		name     string
		feedURL  string
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a source subscription",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			vm := viewmodel.NewFeedViewModel(apiclient.New(getServerURL()))
			source, err := vm.AddSource(ctx, models.CreateSourceRequest{
				PlatformType: platform,
				Name:         name,
				FeedURL:      feedURL,
			})
			if err != nil {
				return err
			}
			cmd.Printf("added source %s\n", source.SourceID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&platform, "platform", "", "platform type")
	addCmd.Flags().StringVar(&name, "name", "", "source display name")
	addCmd.Flags().StringVar(&feedURL, "url", "", "feed or channel URL")
	_ = addCmd.MarkFlagRequired("platform")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("url")

	removeCmd := &cobra.Command{
		Use:   "remove <source-id>",
		Short: "Remove a source subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			vm := viewmodel.NewFeedViewModel(apiclient.New(getServerURL()))
			if err := vm.RemoveSource(ctx, args[0]); err != nil {
				return err
			}
			cmd.Println("source removed")
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd)
	return cmd
}

func newActivityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Show the merged conversation/memory timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			opts := []apiclient.Option{}
			if conv, mem := os.Getenv("CONVERSATIONS_URL"), os.Getenv("MEMORIES_URL"); conv != "" && mem != "" {
				opts = append(opts, apiclient.WithActivityURLs(conv, mem))
			}
			client := apiclient.New(getServerURL(), opts...)
			vm := viewmodel.NewDashboardViewModel(client)
			err := vm.Load(ctx)

			now := time.Now()
			for _, a := range vm.Activities() {
				cmd.Printf("[%s] %-12s %s (%s)\n",
					activity.FormatTimestamp(a.Timestamp, now), a.Type, a.Title, a.Source)
			}
			if err != nil {
				return fmt.Errorf("timeline partially loaded: %w", err)
			}
			return nil
		},
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 80 {
		return s[:77] + "..."
	}
	return s
}
