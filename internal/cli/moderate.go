package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"blackpiston/internal/client"
)

var moderateCmd = &cobra.Command{
	Use:   "moderate",
	Short: "Select every listing on a filtered page and apply a bulk action",
	Long: `Moderate signs in to a running API, loads one page of listings with
the given filter, selects the whole page and applies --action to it.

Example:
  blackpiston moderate --status pending --search harley --action approve
  blackpiston moderate --status flagged --action archive --reason "stale"`,
	RunE: runModerate,
}

func init() {
	f := moderateCmd.Flags()
	f.String("api", "http://localhost:8080", "API base URL")
	f.String("email", "", "admin email (ADMIN_EMAIL when empty)")
	f.String("password", "", "admin password (ADMIN_PASSWORD when empty)")
	f.String("code", "", "2FA code (TWO_FACTOR_CODE when empty)")
	f.String("status", "pending", "listing status filter")
	f.String("type", "", "listing type filter")
	f.String("search", "", "free-text search")
	f.Int("page", 0, "zero-based page")
	f.Int("page-size", 0, "page size (PAGE_SIZE when 0)")
	f.String("action", "", "approve, reject or archive")
	f.String("reason", "", "reason recorded in the audit log")
	f.Bool("dry-run", false, "only print the ids that would be changed")
	_ = moderateCmd.MarkFlagRequired("action")
}

func runModerate(cmd *cobra.Command, args []string) error {
	env, err := loadEnv(cmd, map[string]string{
		"ADMIN_EMAIL":     "email",
		"ADMIN_PASSWORD":  "password",
		"TWO_FACTOR_CODE": "code",
		"PAGE_SIZE":       "page-size",
	})
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	str := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	page, _ := flags.GetInt("page")
	dryRun, _ := flags.GetBool("dry-run")

	ctx := cmd.Context()
	c := client.New(str("api"))
	if err := c.SignIn(ctx, env.AdminEmail, env.AdminPassword, env.TwoFactorCode); err != nil {
		return err
	}

	view := client.NewListingsView(c)
	if _, err := view.Load(ctx, client.ListingQuery{
		Status:   str("status"),
		Type:     str("type"),
		Search:   str("search"),
		Page:     page,
		PageSize: env.PageSize,
	}); err != nil {
		return err
	}
	view.ToggleAllOnPage()
	ids := view.Selected()
	out := cmd.OutOrStdout()
	if len(ids) == 0 {
		fmt.Fprintln(out, "no listings match")
		return nil
	}
	if dryRun {
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	res, err := view.Apply(ctx, str("action"), str("reason"))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d of %d listings changed\n", str("action"), res.Affected, len(ids))
	for _, id := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s (no longer exists)\n", id)
	}
	return nil
}
