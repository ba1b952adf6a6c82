package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"reportctl/internal/model"
)

func (c *cli) reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reports",
		Aliases: []string{"report"},
		Short:   "List, request and download reports",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.setup(cmd); err != nil {
				return err
			}
			return c.restore(cmd.Context())
		},
	}
	cmd.AddCommand(c.reportsListCmd(), c.reportsRequestCmd(), c.reportsDownloadCmd())
	return cmd
}

func (c *cli) reportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your reports, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := c.app.ListReports(cmd.Context())
			if err != nil {
				return err
			}
			printReports(c.out, reports)
			return nil
		},
	}
}

func (c *cli) reportsRequestCmd() *cobra.Command {
	var form model.ReportForm

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request a new report for a repository and date range",
		Example: `  reportctl reports request --repo https://github.com/acme/widgets \
    --email dev@acme.io --start 2024-01-01 --end 2024-01-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if form.Email == "" {
				if u := c.app.Session().User; u != nil {
					form.Email = u.Email
				}
			}
			rec, err := c.app.RequestReport(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Report requested for %s (%s).\n", rec.RepoName(), rec.ID)
			fmt.Fprintln(c.out, "Its status shows up in the next 'reportctl reports list' or in 'reportctl watch'.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&form.GithubURL, "repo", "r", "", "GitHub repository URL")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "author email to analyze (defaults to your account email)")
	cmd.Flags().StringVar(&form.StartDate, "start", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&form.EndDate, "end", "", "last day, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("repo")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (c *cli) reportsDownloadCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "download ID",
		Short: "Download the PDF of a completed report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if name == "" {
				if reports, err := c.app.ListReports(cmd.Context()); err == nil {
					name = displayNameFor(reports, id)
				}
			}
			out, err := c.app.DownloadReport(cmd.Context(), id, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Saved %s (%d bytes) to %s\n", out.FileName, out.Size, out.Path)
			if out.MirrorLocation != "" {
				fmt.Fprintf(c.out, "Mirrored to %s\n", out.MirrorLocation)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "repository name or URL used for the file name")

	return cmd
}

// displayNameFor picks the repository URL of id from the known list.
func displayNameFor(reports []model.Report, id string) string {
	for _, r := range reports {
		if r.ID == id {
			return r.GithubURL
		}
	}
	return ""
}

func printReports(w io.Writer, reports []model.Report) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No reports yet. Request one with: reportctl reports request")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREPOSITORY\tDATE RANGE\tSTATUS\tCREATED\tDOWNLOAD")
	for _, r := range reports {
		status := r.StatusText()
		if r.Pending {
			status += " (submitting)"
		}
		dl := "yes"
		if hint := r.DownloadHint(); hint != "" {
			dl = hint
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.RepoName(), r.DateRange, status,
			r.CreatedAt.Local().Format("2006-01-02 15:04"), dl)
	}
	_ = tw.Flush()
}
