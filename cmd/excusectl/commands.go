package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/andreicionca/motivare-absente/internal/auth"
	"github.com/andreicionca/motivare-absente/internal/client"
	"github.com/andreicionca/motivare-absente/internal/domain"

	"github.com/spf13/cobra"
)

var errTeacherOnly = errors.New("this command is for homeroom teachers")

func newLoginCmd(opts *options) *cobra.Command {
	var (
		role  string
		creds auth.Credentials
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			c := opts.client()
			res, err := c.Authenticate(ctx, auth.AuthenticateRequest{Role: role, Credentials: creds})
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s %s (%s, %s)\n", res.User.FirstName, res.User.LastName, res.User.Role, res.User.Class)
			fmt.Fprintf(cmd.OutOrStdout(), "export EXCUSE_TOKEN=%s\n", res.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "student", "student, parent or teacher")
	cmd.Flags().StringVar(&creds.Email, "email", "", "teacher email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "teacher password")
	cmd.Flags().StringVar(&creds.Name, "name", "", "student name")
	cmd.Flags().StringVar(&creds.PersonalCode, "personal-code", "", "student or parent personal code")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var filter client.Filter
	var kind, stage string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requests visible to the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			st, err := opts.session(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			filter.Kind = domain.RequestKind(kind)
			filter.Stage = domain.Stage(stage)

			var items []client.Item
			if st.Teacher != nil {
				st.Teacher.SetFilter(filter)
				items = st.Teacher.Visible()
			} else {
				st.Student.SetFilter(filter)
				items = st.Student.Visible()
				q := st.Student.Quota()
				fmt.Fprintf(cmd.OutOrStdout(), "quota: %d/%d hours used, %d remaining\n", q.Used, q.Ceiling, q.Remaining)
			}
			printItems(cmd, items)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "excuse or short_leave")
	cmd.Flags().StringVar(&stage, "stage", "", "submitted, awaiting_guardian, awaiting_teacher, approved, rejected or finalized")
	cmd.Flags().StringVar(&filter.Query, "query", "", "match student name or reason")
	return cmd
}

func printItems(cmd *cobra.Command, items []client.Item) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tID\tSTUDENT\tCATEGORY\tSTAGE\tFROM\tTO\tHOURS\tREASON")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			it.Kind, it.ID, it.StudentName, it.Category, it.Stage, it.Start, it.End, it.Hours, it.Reason)
	}
	_ = w.Flush()
}

func newSubmitExcuseCmd(opts *options) *cobra.Command {
	var (
		form  client.ExcuseForm
		path  string
		turns int
	)
	cmd := &cobra.Command{
		Use:   "submit-excuse",
		Short: "Upload evidence and submit an excuse",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			st, err := opts.session(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			if st.Student == nil {
				return errors.New("only students and parents submit excuses")
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if err := st.Student.Upload.Select(client.File{
				Name:        filepath.Base(path),
				ContentType: http.DetectContentType(data),
				Data:        data,
			}); err != nil {
				return err
			}
			for i := 0; i < turns; i++ {
				if err := st.Student.Upload.Rotate(); err != nil {
					return err
				}
			}

			res, err := st.Student.SubmitExcuse(ctx, form)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "excuse %s submitted (%s)\n", res.ID, res.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "evidence image")
	cmd.Flags().IntVar(&turns, "rotate", 0, "quarter turns clockwise applied to the image")
	cmd.Flags().StringVar(&form.Category, "category", "medical", "medical, long_leave or other")
	cmd.Flags().StringVar(&form.PeriodStart, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&form.PeriodEnd, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&form.Reason, "reason", "", "optional reason")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("from")
	return cmd
}

func newSubmitShortLeaveCmd(opts *options) *cobra.Command {
	var form client.ShortLeaveForm
	cmd := &cobra.Command{
		Use:   "submit-short-leave",
		Short: "Request leave for part of a school day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			st, err := opts.session(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			if st.Student == nil {
				return errors.New("only students and parents submit short leaves")
			}

			res, err := st.Student.SubmitShortLeave(ctx, form)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "short leave %s submitted (%s, %d hours)\n", res.ID, res.Stage, res.RequestedHours)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Category, "category", "personal", "personal or medical_urgent")
	cmd.Flags().StringVar(&form.Date, "date", "", "YYYY-MM-DD")
	cmd.Flags().StringVar(&form.StartTime, "start", "", "HH:MM")
	cmd.Flags().StringVar(&form.EndTime, "end", "", "HH:MM")
	cmd.Flags().StringVar(&form.Reason, "reason", "", "reason")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newWithdrawCmd(opts *options) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "withdraw <id>",
		Short: "Withdraw a request that nobody has reviewed yet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			st, err := opts.session(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			if st.Student == nil {
				return errors.New("only students and parents withdraw requests")
			}
			if err := st.Student.Withdraw(ctx, client.ItemKey{Kind: domain.RequestKind(kind), ID: args[0]}); err != nil {
				return printErrorDetails(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s withdrawn\n", kind, args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(domain.KindExcuse), "excuse or short_leave")
	return cmd
}

func newReviewCmd(opts *options) *cobra.Command {
	var (
		kind   string
		reject bool
		note   string
	)
	cmd := &cobra.Command{
		Use:   "review <id>",
		Short: "Approve or reject a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			st, err := opts.session(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}

			key := client.ItemKey{Kind: domain.RequestKind(kind), ID: args[0]}
			switch {
			case st.Teacher != nil && reject:
				err = st.Teacher.Reject(ctx, key, note)
			case st.Teacher != nil:
				err = st.Teacher.Approve(ctx, key, note)
			default:
				err = st.Student.ReviewShortLeave(ctx, key.ID, !reject)
			}
			if err != nil {
				return printErrorDetails(cmd, err)
			}

			verdict := "approved"
			if reject {
				verdict = "rejected"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", kind, args[0], verdict)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(domain.KindExcuse), "excuse or short_leave")
	cmd.Flags().BoolVar(&reject, "reject", false, "reject instead of approve")
	cmd.Flags().StringVar(&note, "note", "", "review note")
	return cmd
}

type selection struct {
	excuses     []string
	shortLeaves []string
	approved    bool
}

func (s *selection) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&s.excuses, "excuse", nil, "excuse ids")
	cmd.Flags().StringSliceVar(&s.shortLeaves, "short-leave", nil, "short leave ids")
	cmd.Flags().BoolVar(&s.approved, "all-approved", false, "select every approved request of the class")
}

func (s *selection) apply(t *client.TeacherController) error {
	if s.approved {
		t.SelectVisible()
	}
	for _, id := range s.excuses {
		if err := t.Toggle(client.ItemKey{Kind: domain.KindExcuse, ID: id}); err != nil {
			return fmt.Errorf("excuse %s: %w", id, err)
		}
	}
	for _, id := range s.shortLeaves {
		if err := t.Toggle(client.ItemKey{Kind: domain.KindShortLeave, ID: id}); err != nil {
			return fmt.Errorf("short leave %s: %w", id, err)
		}
	}
	return nil
}

func newFinalizeCmd(opts *options) *cobra.Command {
	var sel selection
	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Finalize approved requests and deduct their hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			st, err := opts.session(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			if st.Teacher == nil {
				return errTeacherOnly
			}
			if err := sel.apply(st.Teacher); err != nil {
				return err
			}

			res, err := st.Teacher.FinalizeSelected(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "finalized %d excuses and %d short leaves, skipped %d already final\n",
				len(res.Finalized.ExcuseIDs), len(res.Finalized.ShortLeaveIDs),
				len(res.Skipped.ExcuseIDs)+len(res.Skipped.ShortLeaveIDs))
			return nil
		},
	}
	sel.bind(cmd)
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		sel selection
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the records-system script for the selected requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			st, err := opts.session(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			if st.Teacher == nil {
				return errTeacherOnly
			}
			if err := sel.apply(st.Teacher); err != nil {
				return err
			}

			res, err := st.Teacher.ExportSelected(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Script)
				return nil
			}
			if err := os.WriteFile(out, []byte(res.Script), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries written to %s\n", len(res.Items), out)
			return nil
		},
	}
	sel.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the script to a file")
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	var xlsx string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show class statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			c := opts.client()
			if xlsx != "" {
				body, err := c.ClassStatsWorkbook(ctx)
				if err != nil {
					return printErrorDetails(cmd, err)
				}
				return os.WriteFile(xlsx, body, 0o644)
			}

			stats, err := c.ClassStats(ctx)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STUDENT\tREQUESTS\tFINALIZED\tHOURS\tREMAINING")
			for _, s := range stats.Students {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", s.StudentName, s.TotalRequests, s.Finalized, s.FinalizedHours, s.Quota.Remaining)
			}
			fmt.Fprintf(w, "Total %s\t%d\t%d\t%d\t\n", stats.Class, stats.TotalRequests, stats.Finalized, stats.FinalizedHours)
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "save the workbook to this path")
	return cmd
}

func newHolidaysCmd(opts *options) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List days without school",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			days, err := opts.client().Holidays(ctx, from, to)
			if err != nil {
				return printErrorDetails(cmd, err)
			}
			for _, d := range days {
				end := d.StartDate
				if d.EndDate != nil {
					end = *d.EndDate
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", d.StartDate, end, d.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "YYYY-MM-DD")
	return cmd
}
